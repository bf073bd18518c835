package pgf

import (
	"strconv"
	"strings"
)

// defaultBracketDepth is the depth bound get_parse_output's bracketed
// projection used in original_source/src/lib.rs's parse() convenience
// wrapper (Some(4)); Parse keeps the same default.
const defaultBracketDepth = 4

// Item is one chart-parser record: the owning category instance (Fid),
// which concrete function realizes it (FunID) and the resolved fids of
// its arguments (ArgFids, one per PArg, used to satisfy SymCat(d, _)
// slots), the sequence being scanned (SeqID) and the current position
// within it (Dot), the accumulated child (fid, tree) pairs (Args), and
// the built tree once the item is passive (Tree, nil while active).
//
// spec.md §4F states the item shape as the quadruple (fid, seqid, dot,
// args, tree); FunID and ArgFids are this package's bookkeeping for
// resolving "cncfuns[fid]" and "SymCat(d, child_fid)" against the actual
// production that created the item, since a category's fid and its
// realizing concrete function's index are distinct numbers.
type Item struct {
	Fid     int32
	FunID   int32
	ArgFids []int32
	SeqID   int32
	Dot     int
	Args    []ItemArg
	Tree    Expr
}

// ItemArg is one accumulated (child category instance, child tree) pair.
type ItemArg struct {
	Fid  int32
	Tree Expr
}

// ParseState is one in-progress parse: immutable references to the
// grammar, language and goal type, plus the mutable active/passive item
// tables that NextState advances one token at a time (spec.md §4F).
type ParseState struct {
	g       *Pgf
	lang    Language
	cnc     *Concrete
	goal    Type
	goalFid int32
	active  map[int32][]Item
	passive map[int32][]Item
	tokens  []string
}

// InitState builds a parse state for goal type t in language lang. It
// resolves the goal category's fid range via CncCats, seeds one active
// item per Apply production of that fid, and immediately promotes any
// that are already complete (an empty linearization sequence) to passive.
func InitState(g *Pgf, lang Language, t Type) (*ParseState, error) {
	cnc, err := lookupConcrete(g, lang)
	if err != nil {
		return nil, err
	}
	rng, ok := cnc.CncCats[t.Cat]
	if !ok {
		return nil, parseErr("Category not found: %s", t.Cat)
	}

	st := &ParseState{
		g:       g,
		lang:    lang,
		cnc:     cnc,
		goal:    t,
		goalFid: rng.Start,
		active:  make(map[int32][]Item),
		passive: make(map[int32][]Item),
	}

	for _, p := range cnc.Productions[rng.Start] {
		ap, ok := p.(Apply)
		if !ok {
			continue
		}
		cf := cnc.CncFuns[ap.Fid]
		if len(cf.Lins) == 0 {
			continue
		}
		argFids := make([]int32, len(ap.Args))
		for i, a := range ap.Args {
			argFids[i] = a.Fid
		}
		item := Item{Fid: rng.Start, FunID: ap.Fid, ArgFids: argFids, SeqID: cf.Lins[0]}
		st.emit(rng.Start, item, st.active, st.passive)
	}

	return st, nil
}

// NextState advances the parse by one input token (spec.md §4F
// next_state). Active and passive tables are entirely replaced each step:
// a position's items are only ever consulted while producing the next
// position's items, never revisited afterward.
func (st *ParseState) NextState(token string) {
	st.tokens = append(st.tokens, token)

	newActive := make(map[int32][]Item)
	newPassive := make(map[int32][]Item)

	for fid, items := range st.active {
		for _, item := range items {
			seq := st.cnc.Sequences[item.SeqID]
			if item.Dot >= len(seq) {
				continue
			}
			switch sym := seq[item.Dot].(type) {
			case SymKS:
				if sym.Token != token {
					continue
				}
				next := item
				next.Dot++
				st.emit(fid, next, newActive, newPassive)
			case SymCat:
				if int(sym.D) >= len(item.ArgFids) {
					continue
				}
				childFid := item.ArgFids[sym.D]
				for _, child := range newPassive[childFid] {
					if child.Tree == nil {
						continue
					}
					next := item
					next.Dot++
					next.Args = append(append([]ItemArg{}, item.Args...), ItemArg{Fid: childFid, Tree: child.Tree})
					st.emit(fid, next, newActive, newPassive)
				}
			default:
				// SymLit, SymVar, SymKP, SymNE: documented extension
				// points (spec.md §9), no-op in this baseline.
			}
		}
	}

	st.propagateCoercions(newPassive, newActive)

	st.active = newActive
	st.passive = newPassive
}

// propagateCoercions closes newPassive under every Coerce(arg) production:
// a fid coerced from arg is the same category instance, so it inherits
// arg's tree unchanged rather than being wrapped in a further
// application. Coerce edges form a DAG (validated at load time), so this
// runs to a fixed point rather than a single linear sweep, since a single
// unordered pass over a Go map cannot otherwise guarantee it visits a
// multi-step chain in dependency order.
func (st *ParseState) propagateCoercions(newPassive, newActive map[int32][]Item) {
	for {
		changed := false
		for fid, prods := range st.cnc.Productions {
			for _, p := range prods {
				c, ok := p.(Coerce)
				if !ok {
					continue
				}
				for _, child := range newPassive[c.Arg] {
					if child.Tree == nil || coercionSeen(newPassive[fid], child) {
						continue
					}
					newPassive[fid] = append(newPassive[fid], Item{
						Fid:     fid,
						FunID:   child.FunID,
						ArgFids: child.ArgFids,
						SeqID:   child.SeqID,
						Dot:     child.Dot,
						Args:    child.Args,
						Tree:    child.Tree,
					})
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func coercionSeen(existing []Item, child Item) bool {
	for _, e := range existing {
		if e.Tree != nil && exprKey(e.Tree) == exprKey(child.Tree) {
			return true
		}
	}
	return false
}

// emit completes item if its dot has reached the end of its sequence
// (building its tree via the realizing concrete function), otherwise
// keeps it active.
func (st *ParseState) emit(fid int32, item Item, activeDst, passiveDst map[int32][]Item) {
	seq := st.cnc.Sequences[item.SeqID]
	invariant(item.Dot <= len(seq), "item dot %d exceeds sequence %d length %d", item.Dot, item.SeqID, len(seq))
	if item.Dot >= len(seq) {
		item.Tree = st.buildTree(item)
		passiveDst[fid] = append(passiveDst[fid], item)
		return
	}
	activeDst[fid] = append(activeDst[fid], item)
}

func (st *ParseState) buildTree(item Item) Expr {
	cf := st.cnc.CncFuns[item.FunID]
	var tree Expr = ExprFun{Name: cf.Name}
	for _, a := range item.Args {
		tree = ExprApp{Fn: tree, Arg: a.Tree}
	}
	return tree
}

// ParseResult is get_parse_output's return value: the deduplicated goal
// trees (nil on failure) and a bracketed-string debugging projection.
type ParseResult struct {
	Trees   []Expr
	Bracket BracketNode
}

// GetParseOutput collects every complete passive item for the goal
// category, deduplicated by tree structure. maxDepth bounds only the
// bracketed projection (spec.md §4F).
func (st *ParseState) GetParseOutput(maxDepth int) ParseResult {
	var trees []Expr
	seen := make(map[string]bool)
	for _, item := range st.passive[st.goalFid] {
		seq := st.cnc.Sequences[item.SeqID]
		if item.Dot != len(seq) || item.Tree == nil {
			continue
		}
		key := exprKey(item.Tree)
		if seen[key] {
			continue
		}
		seen[key] = true
		trees = append(trees, item.Tree)
	}

	if len(trees) == 0 {
		return ParseResult{Bracket: Leaf{}}
	}
	return ParseResult{Trees: trees, Bracket: ExprToBracketed(trees[0], maxDepth)}
}

// Parse is the convenience wrapper over InitState/NextState/
// GetParseOutput: it tokenizes input on ASCII whitespace and drives the
// state machine to completion (spec.md §6 public operation `parse`).
func Parse(g *Pgf, lang Language, t Type, input string) (ParseResult, error) {
	st, err := InitState(g, lang, t)
	if err != nil {
		return ParseResult{}, err
	}
	isASCIISpace := func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
	}
	for _, tok := range strings.FieldsFunc(input, isASCIISpace) {
		st.NextState(tok)
	}
	result := st.GetParseOutput(defaultBracketDepth)
	if len(result.Trees) == 0 {
		return result, parseErr("parsing failed")
	}
	return result, nil
}

// exprKey renders e as a structural key for deduplication; it is not a
// serialization format and carries no stability guarantee across
// versions of this package.
func exprKey(e Expr) string {
	var sb strings.Builder
	writeExprKey(&sb, e)
	return sb.String()
}

func writeExprKey(sb *strings.Builder, e Expr) {
	switch ex := e.(type) {
	case ExprAbs:
		sb.WriteString("Abs(")
		sb.WriteString(string(ex.Var))
		sb.WriteByte(',')
		writeExprKey(sb, ex.Body)
		sb.WriteByte(')')
	case ExprApp:
		sb.WriteString("App(")
		writeExprKey(sb, ex.Fn)
		sb.WriteByte(',')
		writeExprKey(sb, ex.Arg)
		sb.WriteByte(')')
	case ExprFun:
		sb.WriteString("Fun(")
		sb.WriteString(string(ex.Name))
		sb.WriteByte(')')
	case ExprStr:
		sb.WriteString("Str(")
		sb.WriteString(ex.Value)
		sb.WriteByte(')')
	case ExprInt:
		sb.WriteString("Int(")
		sb.WriteString(strconv.FormatInt(int64(ex.Value), 10))
		sb.WriteByte(')')
	case ExprFloat:
		sb.WriteString("Float(")
		sb.WriteString(strconv.FormatFloat(float64(ex.Value), 'g', -1, 32))
		sb.WriteByte(')')
	case ExprDouble:
		sb.WriteString("Double(")
		sb.WriteString(strconv.FormatFloat(ex.Value, 'g', -1, 64))
		sb.WriteByte(')')
	case ExprMeta:
		sb.WriteString("Meta")
	case ExprTyped:
		sb.WriteString("Typed(")
		writeExprKey(sb, ex.Expr)
		sb.WriteByte(')')
	case ExprImplArg:
		sb.WriteString("ImplArg(")
		writeExprKey(sb, ex.Expr)
		sb.WriteByte(')')
	}
}
