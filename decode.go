package pgf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"
)

// supportedMajorVersion is the PGF wire-format major version this decoder
// understands (spec.md §4C: "u16 version; must equal the supported
// major... documented constant"). The original toolchain's format 2 is the
// one this package targets.
const supportedMajorVersion uint16 = 2

// supportedGrammarCount is the only grammar_count this decoder accepts
// (spec.md §4C).
const supportedGrammarCount uint16 = 1

// maxDecodeDepth bounds recursion through the mutually-recursive
// Expr/Type/Hypo/Symbol grammar (spec.md §9: "bound recursion depth and
// surface overflow as DeserializeError" is the permitted alternative to an
// explicit work-stack).
const maxDecodeDepth = 1000

// ReadPGF loads a grammar from a file path (spec.md §6: "the loader accepts
// a filesystem path or an in-memory byte buffer").
func ReadPGF(path string) (*Pgf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr(err, "read %s", path)
	}
	return DecodePGF(data)
}

// DecodePGF decodes a grammar from an in-memory byte buffer. The decoder
// reads strictly sequentially and never seeks; trailing bytes after the
// final concrete syntax are an error (spec.md §4C).
func DecodePGF(data []byte) (*Pgf, error) {
	d := &decoder{r: bytes.NewReader(data), total: int64(len(data))}

	version, err := d.readU16()
	if err != nil {
		return nil, deserializeErrf(err, "version")
	}
	if version != supportedMajorVersion {
		return nil, deserializeErr("unsupported PGF version: %d (expected %d) at offset %d", version, supportedMajorVersion, d.offset())
	}

	grammarCount, err := d.readU16()
	if err != nil {
		return nil, deserializeErrf(err, "grammar_count")
	}
	if grammarCount != supportedGrammarCount {
		return nil, deserializeErr("expected %d grammar, got %d at offset %d", supportedGrammarCount, grammarCount, d.offset())
	}

	absName, err := d.readCIDLong()
	if err != nil {
		return nil, deserializeErrf(err, "absname")
	}

	flags, flagOrder, err := d.readFlags()
	if err != nil {
		return nil, deserializeErrf(err, "flags")
	}

	abstract, err := d.readAbstract()
	if err != nil {
		return nil, deserializeErrf(err, "abstract")
	}

	concretes, langOrder, err := d.readConcretes()
	if err != nil {
		return nil, deserializeErrf(err, "concretes")
	}

	if d.r.Len() != 0 {
		return nil, deserializeErr("%d trailing bytes after final concrete at offset %d", d.r.Len(), d.offset())
	}

	startCat, ok := flagString(flags, CID("startcat"))
	if !ok {
		// First category inserted into the abstract record, deterministic
		// by file order (spec.md §4C start-category resolution).
		if len(abstract.CatOrder) == 0 {
			return nil, deserializeErr("grammar has no categories and no startcat flag")
		}
		startCat = string(abstract.CatOrder[0])
	}

	g := &Pgf{
		AbsName:   absName,
		StartCat:  CID(startCat),
		Flags:     flags,
		FlagOrder: flagOrder,
		Abstract:  *abstract,
		Concretes: concretes,
		LangOrder: langOrder,
	}
	if err := validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// decoder is a one-shot, forward-only cursor over a byte buffer.
type decoder struct {
	r     *bytes.Reader
	total int64
}

func (d *decoder) offset() int64 {
	return d.total - int64(d.r.Len())
}

func (d *decoder) readU8() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("short read at offset %d: %w", d.offset(), err)
	}
	return b, nil
}

func (d *decoder) readU16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, fmt.Errorf("short read at offset %d: %w", d.offset(), err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (d *decoder) readU32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, fmt.Errorf("short read at offset %d: %w", d.offset(), err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func (d *decoder) readI32() (int32, error) {
	u, err := d.readU32()
	return int32(u), err
}

func (d *decoder) readF32() (float32, error) {
	u, err := d.readU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func (d *decoder) readF64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, fmt.Errorf("short read at offset %d: %w", d.offset(), err)
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf[:])), nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, fmt.Errorf("short read at offset %d: %w", d.offset(), err)
	}
	return buf, nil
}

// readStringShort reads the "string-short" encoding: u8 len then len UTF-8
// bytes. Used for every identifier and token except the abstract name
// (spec.md §9 Open Question (a): width is locked per field; this package
// locks it exactly as original_source/src/lib.rs does).
func (d *decoder) readStringShort() (string, error) {
	n, err := d.readU8()
	if err != nil {
		return "", err
	}
	buf, err := d.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8Valid(buf) {
		return "", fmt.Errorf("invalid UTF-8 at offset %d", d.offset())
	}
	return string(buf), nil
}

// readStringLong reads the "string-long" encoding: u16 len then len UTF-8
// bytes. Used only for the abstract name.
func (d *decoder) readStringLong() (string, error) {
	n, err := d.readU16()
	if err != nil {
		return "", err
	}
	buf, err := d.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8Valid(buf) {
		return "", fmt.Errorf("invalid UTF-8 at offset %d", d.offset())
	}
	return string(buf), nil
}

func (d *decoder) readCIDShort() (CID, error) {
	s, err := d.readStringShort()
	if err != nil {
		return "", err
	}
	return CID(s), nil
}

func (d *decoder) readCIDLong() (CID, error) {
	s, err := d.readStringLong()
	if err != nil {
		return "", err
	}
	return CID(s), nil
}

func (d *decoder) readLiteral() (Literal, error) {
	tag, err := d.readU8()
	if err != nil {
		return Literal{}, err
	}
	switch tag {
	case 0:
		s, err := d.readStringShort()
		if err != nil {
			return Literal{}, err
		}
		return StrLiteral(s), nil
	case 1:
		n, err := d.readI32()
		if err != nil {
			return Literal{}, err
		}
		return IntLiteral(n), nil
	case 2:
		f, err := d.readF64()
		if err != nil {
			return Literal{}, err
		}
		return FloatLiteral(f), nil
	default:
		return Literal{}, fmt.Errorf("unknown literal tag %d at offset %d", tag, d.offset())
	}
}

// readFlags reads a flag table: u16 count then count (key, value) pairs
// (spec.md §4C: small tables use a u16 count).
func (d *decoder) readFlags() (map[CID]Literal, []CID, error) {
	count, err := d.readU16()
	if err != nil {
		return nil, nil, err
	}
	flags := make(map[CID]Literal, count)
	order := make([]CID, 0, count)
	for i := uint16(0); i < count; i++ {
		key, err := d.readCIDShort()
		if err != nil {
			return nil, nil, fmt.Errorf("flag %d key: %w", i, err)
		}
		val, err := d.readLiteral()
		if err != nil {
			return nil, nil, fmt.Errorf("flag %d value: %w", i, err)
		}
		if _, dup := flags[key]; !dup {
			order = append(order, key)
		}
		flags[key] = val
	}
	return flags, order, nil
}

func (d *decoder) readBinding() (Binding, error) {
	tag, err := d.readU8()
	if err != nil {
		return Binding{}, err
	}
	name, err := d.readCIDShort()
	if err != nil {
		return Binding{}, err
	}
	switch tag {
	case 0:
		return Binding{Kind: BindExplicit, Var: name}, nil
	case 1:
		return Binding{Kind: BindImplicit, Var: name}, nil
	default:
		return Binding{}, fmt.Errorf("unknown binding tag %d at offset %d", tag, d.offset())
	}
}

func (d *decoder) readType(depth int) (Type, error) {
	if depth > maxDecodeDepth {
		return Type{}, fmt.Errorf("max recursion depth exceeded at offset %d", d.offset())
	}
	hyposCount, err := d.readU32()
	if err != nil {
		return Type{}, fmt.Errorf("hypos count: %w", err)
	}
	hypos := make([]Hypo, 0, hyposCount)
	for i := uint32(0); i < hyposCount; i++ {
		h, err := d.readHypo(depth + 1)
		if err != nil {
			return Type{}, fmt.Errorf("hypo %d: %w", i, err)
		}
		hypos = append(hypos, h)
	}
	cat, err := d.readCIDShort()
	if err != nil {
		return Type{}, fmt.Errorf("category: %w", err)
	}
	exprsCount, err := d.readU32()
	if err != nil {
		return Type{}, fmt.Errorf("exprs count: %w", err)
	}
	exprs := make([]Expr, 0, exprsCount)
	for i := uint32(0); i < exprsCount; i++ {
		e, err := d.readExpr(depth + 1)
		if err != nil {
			return Type{}, fmt.Errorf("expr %d: %w", i, err)
		}
		exprs = append(exprs, e)
	}
	return Type{Hypos: hypos, Cat: cat, Exprs: exprs}, nil
}

func (d *decoder) readHypo(depth int) (Hypo, error) {
	if depth > maxDecodeDepth {
		return Hypo{}, fmt.Errorf("max recursion depth exceeded at offset %d", d.offset())
	}
	binding, err := d.readBinding()
	if err != nil {
		return Hypo{}, fmt.Errorf("binding: %w", err)
	}
	ty, err := d.readType(depth + 1)
	if err != nil {
		return Hypo{}, fmt.Errorf("type: %w", err)
	}
	return Hypo{Binding: binding, Type: ty}, nil
}

func (d *decoder) readExpr(depth int) (Expr, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("max recursion depth exceeded at offset %d", d.offset())
	}
	tag, err := d.readU8()
	if err != nil {
		return nil, fmt.Errorf("expr tag: %w", err)
	}
	switch tag {
	case 0: // Abs
		binding, err := d.readBinding()
		if err != nil {
			return nil, fmt.Errorf("abs binding: %w", err)
		}
		v, err := d.readCIDShort()
		if err != nil {
			return nil, fmt.Errorf("abs var: %w", err)
		}
		body, err := d.readExpr(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("abs body: %w", err)
		}
		return ExprAbs{Binding: binding, Var: v, Body: body}, nil
	case 1: // App
		fn, err := d.readExpr(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("app fn: %w", err)
		}
		arg, err := d.readExpr(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("app arg: %w", err)
		}
		return ExprApp{Fn: fn, Arg: arg}, nil
	case 2: // Fun
		name, err := d.readCIDShort()
		if err != nil {
			return nil, fmt.Errorf("fun name: %w", err)
		}
		return ExprFun{Name: name}, nil
	case 3: // Str
		s, err := d.readStringShort()
		if err != nil {
			return nil, fmt.Errorf("str: %w", err)
		}
		return ExprStr{Value: s}, nil
	case 4: // Int
		n, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("int: %w", err)
		}
		return ExprInt{Value: n}, nil
	case 5: // Float
		f, err := d.readF32()
		if err != nil {
			return nil, fmt.Errorf("float: %w", err)
		}
		return ExprFloat{Value: f}, nil
	case 6: // Double
		f, err := d.readF64()
		if err != nil {
			return nil, fmt.Errorf("double: %w", err)
		}
		return ExprDouble{Value: f}, nil
	case 7: // Meta
		return ExprMeta{}, nil
	case 8: // Typed
		e, err := d.readExpr(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("typed expr: %w", err)
		}
		ty, err := d.readType(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("typed type: %w", err)
		}
		return ExprTyped{Expr: e, Type: ty}, nil
	case 9: // ImplArg
		e, err := d.readExpr(depth + 1)
		if err != nil {
			return nil, fmt.Errorf("implarg: %w", err)
		}
		return ExprImplArg{Expr: e}, nil
	default:
		return nil, fmt.Errorf("unknown expr tag %d at offset %d", tag, d.offset())
	}
}

func (d *decoder) readPattern(depth int) (Pattern, error) {
	if depth > maxDecodeDepth {
		return Pattern{}, fmt.Errorf("max recursion depth exceeded at offset %d", d.offset())
	}
	tag, err := d.readU8()
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern tag: %w", err)
	}
	switch tag {
	case 0: // PVar
		v, err := d.readCIDShort()
		if err != nil {
			return Pattern{}, fmt.Errorf("pvar: %w", err)
		}
		return Pattern{Kind: PatVar, Var: v}, nil
	case 1: // PApp
		fun, err := d.readCIDShort()
		if err != nil {
			return Pattern{}, fmt.Errorf("papp fun: %w", err)
		}
		count, err := d.readU32()
		if err != nil {
			return Pattern{}, fmt.Errorf("papp arg count: %w", err)
		}
		args := make([]Pattern, 0, count)
		for i := uint32(0); i < count; i++ {
			p, err := d.readPattern(depth + 1)
			if err != nil {
				return Pattern{}, fmt.Errorf("papp arg %d: %w", i, err)
			}
			args = append(args, p)
		}
		return Pattern{Kind: PatApp, Fun: fun, Args: args}, nil
	default:
		return Pattern{}, fmt.Errorf("unknown pattern tag %d at offset %d", tag, d.offset())
	}
}

func (d *decoder) readEquationSet() (*EquationSet, error) {
	has, err := d.readU8()
	if err != nil {
		return nil, fmt.Errorf("has_equations: %w", err)
	}
	if has == 0 {
		return nil, nil
	}

	eqCount, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("equation count: %w", err)
	}
	equations := make([]Equation, 0, eqCount)
	for i := uint32(0); i < eqCount; i++ {
		patCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("equation %d pattern count: %w", i, err)
		}
		patterns := make([]Pattern, 0, patCount)
		for j := uint32(0); j < patCount; j++ {
			p, err := d.readPattern(0)
			if err != nil {
				return nil, fmt.Errorf("equation %d pattern %d: %w", i, j, err)
			}
			patterns = append(patterns, p)
		}
		result, err := d.readExpr(0)
		if err != nil {
			return nil, fmt.Errorf("equation %d result: %w", i, err)
		}
		equations = append(equations, Equation{Patterns: patterns, Result: result})
	}

	instrListCount, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("instruction list count: %w", err)
	}
	instructions := make([][]Instr, 0, instrListCount)
	for i := uint32(0); i < instrListCount; i++ {
		instrCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("instruction list %d count: %w", i, err)
		}
		instrs := make([]Instr, 0, instrCount)
		for j := uint32(0); j < instrCount; j++ {
			n, err := d.readU32()
			if err != nil {
				return nil, fmt.Errorf("instruction %d/%d length: %w", i, j, err)
			}
			payload, err := d.readBytes(int(n))
			if err != nil {
				return nil, fmt.Errorf("instruction %d/%d payload: %w", i, j, err)
			}
			instrs = append(instrs, Instr{Opaque: payload})
		}
		instructions = append(instructions, instrs)
	}

	return &EquationSet{Equations: equations, Instructions: instructions}, nil
}

// readAbstract reads the abstract syntax: the function table, then derives
// the category table from the functions' result categories in file order
// (spec.md §4C ordering: "abstract (funs then derived cats)").
func (d *decoder) readAbstract() (*Abstract, error) {
	funCount, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("fun count: %w", err)
	}

	funs := make(map[CID]*AbstractFun, funCount)
	funOrder := make([]CID, 0, funCount)
	cats := make(map[CID]*AbstractCat)
	catOrder := make([]CID, 0)

	for i := uint32(0); i < funCount; i++ {
		name, err := d.readCIDShort()
		if err != nil {
			return nil, fmt.Errorf("fun %d name: %w", i, err)
		}
		ty, err := d.readType(0)
		if err != nil {
			return nil, fmt.Errorf("fun %d type: %w", i, err)
		}
		weight, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("fun %d weight: %w", i, err)
		}
		prob, err := d.readF64()
		if err != nil {
			return nil, fmt.Errorf("fun %d prob: %w", i, err)
		}
		eqs, err := d.readEquationSet()
		if err != nil {
			return nil, fmt.Errorf("fun %d equations: %w", i, err)
		}

		if _, dup := funs[name]; dup {
			return nil, fmt.Errorf("duplicate function %q", name)
		}
		funs[name] = &AbstractFun{Name: name, Type: ty, Weight: weight, Prob: prob, Equations: eqs}
		funOrder = append(funOrder, name)

		cat, ok := cats[ty.Cat]
		if !ok {
			cat = &AbstractCat{Name: ty.Cat}
			cats[ty.Cat] = cat
			catOrder = append(catOrder, ty.Cat)
		}
		cat.Funs = append(cat.Funs, FunRef{Index: int32(len(cat.Funs)), Name: name})
	}

	return &Abstract{Funs: funs, FunOrder: funOrder, Cats: cats, CatOrder: catOrder}, nil
}

func (d *decoder) readConcretes() (map[Language]*Concrete, []Language, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, nil, fmt.Errorf("concrete count: %w", err)
	}
	concretes := make(map[Language]*Concrete, count)
	order := make([]Language, 0, count)
	for i := uint32(0); i < count; i++ {
		langName, err := d.readCIDShort()
		if err != nil {
			return nil, nil, fmt.Errorf("concrete %d language: %w", i, err)
		}
		lang := Language(langName)
		cnc, err := d.readConcrete(lang)
		if err != nil {
			return nil, nil, fmt.Errorf("concrete %q: %w", langName, err)
		}
		if _, dup := concretes[lang]; dup {
			return nil, nil, fmt.Errorf("duplicate language %q", langName)
		}
		concretes[lang] = cnc
		order = append(order, lang)
	}
	return concretes, order, nil
}

func (d *decoder) readConcrete(lang Language) (*Concrete, error) {
	cflags, cflagOrder, err := d.readFlags()
	if err != nil {
		return nil, fmt.Errorf("cflags: %w", err)
	}

	productions, err := d.readProductions()
	if err != nil {
		return nil, fmt.Errorf("productions: %w", err)
	}

	cncfuns, err := d.readCncFuns()
	if err != nil {
		return nil, fmt.Errorf("cncfuns: %w", err)
	}

	sequences, err := d.readSequences()
	if err != nil {
		return nil, fmt.Errorf("sequences: %w", err)
	}

	cnccats, cnccatOrder, err := d.readCncCats()
	if err != nil {
		return nil, fmt.Errorf("cnccats: %w", err)
	}

	totalCats, err := d.readI32()
	if err != nil {
		return nil, fmt.Errorf("total_cats: %w", err)
	}

	return &Concrete{
		Name:        lang,
		Flags:       cflags,
		FlagOrder:   cflagOrder,
		Productions: productions,
		CncFuns:     cncfuns,
		Sequences:   sequences,
		CncCats:     cnccats,
		CncCatOrder: cnccatOrder,
		TotalCats:   totalCats,
	}, nil
}

func (d *decoder) readProductions() (map[int32][]Production, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	productions := make(map[int32][]Production, count)
	for i := uint32(0); i < count; i++ {
		catID, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("entry %d fid: %w", i, err)
		}
		setCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("entry %d set count: %w", i, err)
		}
		set := make([]Production, 0, setCount)
		for j := uint32(0); j < setCount; j++ {
			p, err := d.readProduction()
			if err != nil {
				return nil, fmt.Errorf("entry %d production %d: %w", i, j, err)
			}
			set = append(set, p)
		}
		productions[catID] = set
	}
	return productions, nil
}

func (d *decoder) readProduction() (Production, error) {
	tag, err := d.readU8()
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	switch tag {
	case 0: // Apply
		fid, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("apply fid: %w", err)
		}
		argCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("apply arg count: %w", err)
		}
		args := make([]PArg, 0, argCount)
		for i := uint32(0); i < argCount; i++ {
			a, err := d.readPArg()
			if err != nil {
				return nil, fmt.Errorf("apply arg %d: %w", i, err)
			}
			args = append(args, a)
		}
		return Apply{Fid: fid, Args: args}, nil
	case 1: // Coerce
		arg, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("coerce arg: %w", err)
		}
		return Coerce{Arg: arg}, nil
	default:
		return nil, fmt.Errorf("unknown production tag %d at offset %d", tag, d.offset())
	}
}

func (d *decoder) readPArg() (PArg, error) {
	hypoCount, err := d.readU32()
	if err != nil {
		return PArg{}, fmt.Errorf("hypo count: %w", err)
	}
	hypos := make([]int32, 0, hypoCount)
	for i := uint32(0); i < hypoCount; i++ {
		h, err := d.readI32()
		if err != nil {
			return PArg{}, fmt.Errorf("hypo %d: %w", i, err)
		}
		hypos = append(hypos, h)
	}
	fid, err := d.readI32()
	if err != nil {
		return PArg{}, fmt.Errorf("fid: %w", err)
	}
	return PArg{Hypos: hypos, Fid: fid}, nil
}

func (d *decoder) readCncFuns() ([]CncFun, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	cncfuns := make([]CncFun, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := d.readCIDShort()
		if err != nil {
			return nil, fmt.Errorf("fun %d name: %w", i, err)
		}
		linCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("fun %d lin count: %w", i, err)
		}
		lins := make([]int32, 0, linCount)
		for j := uint32(0); j < linCount; j++ {
			lin, err := d.readI32()
			if err != nil {
				return nil, fmt.Errorf("fun %d lin %d: %w", i, j, err)
			}
			lins = append(lins, lin)
		}
		cncfuns = append(cncfuns, CncFun{Name: name, Lins: lins})
	}
	return cncfuns, nil
}

func (d *decoder) readSequences() ([][]Symbol, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	sequences := make([][]Symbol, 0, count)
	for i := uint32(0); i < count; i++ {
		symCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("sequence %d symbol count: %w", i, err)
		}
		symbols := make([]Symbol, 0, symCount)
		for j := uint32(0); j < symCount; j++ {
			s, err := d.readSymbol(0)
			if err != nil {
				return nil, fmt.Errorf("sequence %d symbol %d: %w", i, j, err)
			}
			symbols = append(symbols, s)
		}
		sequences = append(sequences, symbols)
	}
	return sequences, nil
}

func (d *decoder) readSymbol(depth int) (Symbol, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("max recursion depth exceeded at offset %d", d.offset())
	}
	tag, err := d.readU8()
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	switch tag {
	case 0:
		dd, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symcat d: %w", err)
		}
		r, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symcat r: %w", err)
		}
		return SymCat{D: dd, R: r}, nil
	case 1:
		dd, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symlit d: %w", err)
		}
		r, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symlit r: %w", err)
		}
		return SymLit{D: dd, R: r}, nil
	case 2:
		dd, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symvar d: %w", err)
		}
		r, err := d.readI32()
		if err != nil {
			return nil, fmt.Errorf("symvar r: %w", err)
		}
		return SymVar{D: dd, R: r}, nil
	case 3:
		tok, err := d.readStringShort()
		if err != nil {
			return nil, fmt.Errorf("symks token: %w", err)
		}
		return SymKS{Token: tok}, nil
	case 4:
		defCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("symkp default count: %w", err)
		}
		def := make([]Symbol, 0, defCount)
		for i := uint32(0); i < defCount; i++ {
			s, err := d.readSymbol(depth + 1)
			if err != nil {
				return nil, fmt.Errorf("symkp default %d: %w", i, err)
			}
			def = append(def, s)
		}
		altCount, err := d.readU32()
		if err != nil {
			return nil, fmt.Errorf("symkp alt count: %w", err)
		}
		alts := make([]Alt, 0, altCount)
		for i := uint32(0); i < altCount; i++ {
			a, err := d.readAlt(depth + 1)
			if err != nil {
				return nil, fmt.Errorf("symkp alt %d: %w", i, err)
			}
			alts = append(alts, a)
		}
		return SymKP{Default: def, Alts: alts}, nil
	case 5:
		return SymNE{}, nil
	default:
		return nil, fmt.Errorf("unknown symbol tag %d at offset %d", tag, d.offset())
	}
}

func (d *decoder) readAlt(depth int) (Alt, error) {
	symCount, err := d.readU32()
	if err != nil {
		return Alt{}, fmt.Errorf("symbol count: %w", err)
	}
	symbols := make([]Symbol, 0, symCount)
	for i := uint32(0); i < symCount; i++ {
		s, err := d.readSymbol(depth + 1)
		if err != nil {
			return Alt{}, fmt.Errorf("symbol %d: %w", i, err)
		}
		symbols = append(symbols, s)
	}
	tokCount, err := d.readU32()
	if err != nil {
		return Alt{}, fmt.Errorf("token count: %w", err)
	}
	tokens := make([]string, 0, tokCount)
	for i := uint32(0); i < tokCount; i++ {
		t, err := d.readStringShort()
		if err != nil {
			return Alt{}, fmt.Errorf("token %d: %w", i, err)
		}
		tokens = append(tokens, t)
	}
	return Alt{Symbols: symbols, Tokens: tokens}, nil
}

func (d *decoder) readCncCats() (map[CID]CncCat, []CID, error) {
	count, err := d.readU32()
	if err != nil {
		return nil, nil, fmt.Errorf("count: %w", err)
	}
	cnccats := make(map[CID]CncCat, count)
	order := make([]CID, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := d.readCIDShort()
		if err != nil {
			return nil, nil, fmt.Errorf("cat %d name: %w", i, err)
		}
		start, err := d.readI32()
		if err != nil {
			return nil, nil, fmt.Errorf("cat %d start: %w", i, err)
		}
		end, err := d.readI32()
		if err != nil {
			return nil, nil, fmt.Errorf("cat %d end: %w", i, err)
		}
		if _, dup := cnccats[name]; !dup {
			order = append(order, name)
		}
		cnccats[name] = CncCat{Start: start, End: end}
	}
	return cnccats, order, nil
}

func utf8Valid(b []byte) bool {
	return utf8.Valid(b)
}
