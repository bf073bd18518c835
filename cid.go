package pgf

// CID is an opaque, non-empty identifier: a category name, a function
// name, a language name, or a bound variable name. Equality is byte-exact.
type CID string

// wildCID is the distinguished anonymous identifier used by the bracketed
// projection (§4F) for synthetic parent nodes. It is reserved and is never
// produced by MkCID from ordinary input.
const wildCID CID = "*"

// MkCID constructs a CID from a name. It fails if the name is empty — a
// CID must be a non-empty byte sequence (spec.md §4A).
func MkCID(s string) (CID, bool) {
	if s == "" {
		return "", false
	}
	return CID(s), true
}

// ShowCID renders a CID as its underlying bytes.
func ShowCID(c CID) string {
	return string(c)
}

// Language names a concrete syntax within a grammar. It shares CID's
// identity rules; it is kept as a distinct type so call sites cannot
// confuse a category identifier with a language identifier.
type Language CID

// ShowLanguage renders a Language as its underlying bytes.
func ShowLanguage(l Language) string {
	return string(l)
}

// ReadLanguage parses a Language from a name, failing on the empty string.
func ReadLanguage(s string) (Language, bool) {
	c, ok := MkCID(s)
	return Language(c), ok
}

// LiteralKind tags the concrete representation held by a Literal.
type LiteralKind int

const (
	LiteralStr LiteralKind = iota
	LiteralInt
	LiteralFloat
)

// Literal is a tagged scalar value: a string, a 32-bit signed integer, or
// an IEEE-754 64-bit float (spec.md §3).
type Literal struct {
	Kind  LiteralKind
	Str   string
	Int   int32
	Float float64
}

// StrLiteral builds a string-tagged Literal.
func StrLiteral(s string) Literal { return Literal{Kind: LiteralStr, Str: s} }

// IntLiteral builds an int-tagged Literal.
func IntLiteral(n int32) Literal { return Literal{Kind: LiteralInt, Int: n} }

// FloatLiteral builds a float-tagged Literal.
func FloatLiteral(f float64) Literal { return Literal{Kind: LiteralFloat, Float: f} }

// Equal reports whether two literals carry the same tag and value.
func (l Literal) Equal(other Literal) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LiteralStr:
		return l.Str == other.Str
	case LiteralInt:
		return l.Int == other.Int
	case LiteralFloat:
		return l.Float == other.Float
	default:
		return false
	}
}
