package pgf

// BindKind tags whether a Binding is explicit or implicit (spec.md §3).
type BindKind int

const (
	BindExplicit BindKind = iota
	BindImplicit
)

// Binding names a dependent-function argument, explicit or implicit.
type Binding struct {
	Kind BindKind
	Var  CID
}

// Hypo is the type of one dependent-function argument: a binding paired
// with the argument's type.
type Hypo struct {
	Binding Binding
	Type    Type
}

// Type is the triple (hypotheses, category, expression arguments) from
// spec.md §3. Arity() is the number of hypotheses; a type with none denotes
// a ground category.
type Type struct {
	Hypos []Hypo
	Cat   CID
	Exprs []Expr
}

// Arity returns the number of hypotheses (dependent-argument slots) in t.
func (t Type) Arity() int {
	return len(t.Hypos)
}

// GroundType builds a Type with no hypotheses and no expression arguments —
// the shape used for a parse/linearize goal category (spec.md §4D StartCat).
func GroundType(cat CID) Type {
	return Type{Cat: cat}
}

// Expr is the abstract-syntax expression grammar from spec.md §3: a tagged
// variant over abstraction, application, function reference, the three
// literal kinds, metavariable, type annotation and implicit-argument
// marker. Each constructor below is a distinct Go type implementing this
// sealed interface, the same shape core/ast.Node takes in the teacher
// codebase for its own expression trees.
type Expr interface {
	isExpr()
}

// ExprAbs is a lambda abstraction: \binding var -> body.
type ExprAbs struct {
	Binding Binding
	Var     CID
	Body    Expr
}

// ExprApp is function application: fn arg.
type ExprApp struct {
	Fn  Expr
	Arg Expr
}

// ExprFun references an abstract function constant by name.
type ExprFun struct {
	Name CID
}

// ExprStr is a string literal expression.
type ExprStr struct {
	Value string
}

// ExprInt is a 32-bit integer literal expression.
type ExprInt struct {
	Value int32
}

// ExprFloat is a single-precision float literal expression (wire tag 5,
// distinct from the double-precision ExprDouble at tag 6 — the PGF format
// keeps both, though GF itself only ever emits Double).
type ExprFloat struct {
	Value float32
}

// ExprDouble is a double-precision float literal expression.
type ExprDouble struct {
	Value float64
}

// ExprMeta is a metavariable placeholder.
type ExprMeta struct{}

// ExprTyped annotates an expression with its type.
type ExprTyped struct {
	Expr Expr
	Type Type
}

// ExprImplArg marks an expression as an implicit argument.
type ExprImplArg struct {
	Expr Expr
}

func (ExprAbs) isExpr()     {}
func (ExprApp) isExpr()     {}
func (ExprFun) isExpr()     {}
func (ExprStr) isExpr()     {}
func (ExprInt) isExpr()     {}
func (ExprFloat) isExpr()   {}
func (ExprDouble) isExpr()  {}
func (ExprMeta) isExpr()    {}
func (ExprTyped) isExpr()   {}
func (ExprImplArg) isExpr() {}

// PatternKind tags an equation pattern: a bound variable or an applied
// constructor.
type PatternKind int

const (
	PatVar PatternKind = iota
	PatApp
)

// Pattern is one argument pattern of an abstract function's equation.
type Pattern struct {
	Kind PatternKind
	Var  CID       // set when Kind == PatVar
	Fun  CID       // set when Kind == PatApp
	Args []Pattern // set when Kind == PatApp
}

// Equation is one (patterns -> result) clause of an abstract function's
// optional equational definition.
type Equation struct {
	Patterns []Pattern
	Result   Expr
}

// Instr is a single opaque evaluation instruction. Spec.md §3 reserves this
// for future rule evaluation and explicitly treats it as opaque; this
// package never interprets one, only counts and preserves it byte-for-byte
// (EncodePGF writes back exactly what DecodePGF read).
type Instr struct {
	Opaque []byte
}

// EquationSet is an abstract function's optional equational definition: the
// pattern-matching clauses plus a list of opaque instruction lists, whose
// length is stored separately and is not tied to the number of equations.
type EquationSet struct {
	Equations    []Equation
	Instructions [][]Instr
}
