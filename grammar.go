package pgf

// AbstractFun is a named typed constant of the abstract syntax: its type,
// an integer weight and 64-bit probability (both opaque to this package —
// future ranking extension points per spec.md §3), and an optional
// equational definition.
type AbstractFun struct {
	Name      CID
	Type      Type
	Weight    int32
	Prob      float64
	Equations *EquationSet // nil when the function has no equations
}

// FunRef names one function producing a category, with its informational
// index in the source file (identity is by Name, not Index — spec.md §3).
type FunRef struct {
	Index int32
	Name  CID
}

// AbstractCat is an abstract category: its parameter hypotheses and the
// functions that produce it.
type AbstractCat struct {
	Name  CID
	Hypos []Hypo
	Funs  []FunRef
}

// Symbol is one element of a linearization sequence (spec.md §3).
type Symbol interface {
	isSymbol()
}

// SymCat is a recursive slot: the R-th field of the D-th argument of the
// owning concrete function.
type SymCat struct {
	D, R int32
}

// SymLit is a literal slot, analogous to SymCat but for literal arguments.
type SymLit struct {
	D, R int32
}

// SymVar is a bound-variable slot.
type SymVar struct {
	D, R int32
}

// SymKS is a literal terminal token.
type SymKS struct {
	Token string
}

// SymKP is a pre-/post-processed token with context-dependent variants.
type SymKP struct {
	Default []Symbol
	Alts    []Alt
}

// SymNE marks a non-existent linearization (a gap).
type SymNE struct{}

func (SymCat) isSymbol() {}
func (SymLit) isSymbol() {}
func (SymVar) isSymbol() {}
func (SymKS) isSymbol()  {}
func (SymKP) isSymbol()  {}
func (SymNE) isSymbol()  {}

// Alt is one pre/post variant of a SymKP: the symbols to emit and the
// trigger tokens that select it.
type Alt struct {
	Symbols []Symbol
	Tokens  []string
}

// CncFun is a function's concrete realization: its name and the sequence
// indices providing the linearization of each output field.
type CncFun struct {
	Name CID
	Lins []int32
}

// PArg is a production argument: the bound-hypothesis fids plus the single
// target fid.
type PArg struct {
	Hypos []int32
	Fid   int32
}

// Production is a grammar rule associating a category fid with either an
// Apply or a Coerce (spec.md §3).
type Production interface {
	isProduction()
}

// Apply builds a category instance via concrete function Fid applied to Args.
type Apply struct {
	Fid  int32
	Args []PArg
}

// Coerce states that the owning fid is the same category instance as Arg.
type Coerce struct {
	Arg int32
}

func (Apply) isProduction()  {}
func (Coerce) isProduction() {}

// CncCat is a dense integer range of fids realizing a category.
type CncCat struct {
	Start, End int32
}

// Abstract is the abstract syntax: named functions and categories, each
// kept with an insertion-order index so query surface iteration is stable
// (spec.md §4D).
type Abstract struct {
	Funs     map[CID]*AbstractFun
	FunOrder []CID
	Cats     map[CID]*AbstractCat
	CatOrder []CID
}

// Concrete is one concrete syntax: its flags, PMCFG productions keyed by
// owning fid, the concrete-function and sequence tables addressed by fid
// and sequence index, the category-fid ranges, and the total fid count.
type Concrete struct {
	Name        Language
	Flags       map[CID]Literal
	FlagOrder   []CID
	Productions map[int32][]Production
	CncFuns     []CncFun
	Sequences   [][]Symbol
	CncCats     map[CID]CncCat
	CncCatOrder []CID
	TotalCats   int32
}

// Pgf is the fully decoded grammar: abstract name, start category, global
// flags, the abstract record, and one Concrete per language (spec.md §3).
// A Pgf is built once by DecodePGF, is immutable thereafter, and is safe to
// share read-only across goroutines (spec.md §5).
type Pgf struct {
	AbsName   CID
	StartCat  CID
	Flags     map[CID]Literal
	FlagOrder []CID
	Abstract  Abstract
	Concretes map[Language]*Concrete
	LangOrder []Language
}

// flagString returns the string value of flag key, or ("", false) if the
// flag is absent or not string-tagged.
func flagString(flags map[CID]Literal, key CID) (string, bool) {
	lit, ok := flags[key]
	if !ok || lit.Kind != LiteralStr {
		return "", false
	}
	return lit.Str, true
}
