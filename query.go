package pgf

import "strings"

// This file is the query surface over an already-decoded *Pgf: every
// function here is a pure read, grounded on the same handful of top-level
// functions original_source/src/lib.rs exposes (categories, functions,
// functions_by_cat, function_type, category_context), re-expressed with
// Go's (value, ok) and (value, error) idioms in place of Rust's Option/
// Result. Iteration order everywhere is file order, carried by the
// *Order slices built at decode time (spec.md §4D).

// AbstractName returns the grammar's abstract-syntax name.
func AbstractName(g *Pgf) CID {
	return g.AbsName
}

// StartCatType returns the grammar's start category as a ground type
// Type([], startcat, []) (spec.md §4D start_cat).
func StartCatType(g *Pgf) Type {
	return GroundType(g.StartCat)
}

// Languages returns every concrete syntax's language identifier, in file
// order.
func Languages(g *Pgf) []Language {
	out := make([]Language, len(g.LangOrder))
	copy(out, g.LangOrder)
	return out
}

// LanguageCode returns the concrete syntax's "language" flag with every
// underscore replaced by a hyphen (spec.md §8 Invariant 6), or ("", false)
// if the flag is absent, non-string, or lang itself is unknown.
func LanguageCode(g *Pgf, lang Language) (string, bool) {
	cnc, ok := g.Concretes[lang]
	if !ok {
		return "", false
	}
	code, ok := flagString(cnc.Flags, CID("language"))
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(code, "_", "-"), true
}

// Categories returns every abstract category, in file order.
func Categories(g *Pgf) []CID {
	out := make([]CID, len(g.Abstract.CatOrder))
	copy(out, g.Abstract.CatOrder)
	return out
}

// CategoryContext returns a category's parameter hypotheses. Categories
// are derived purely from function result types at decode time (spec.md
// §4C), so every known category has an empty hypothesis list; the second
// return value is false only when cat is not a category of g at all.
func CategoryContext(g *Pgf, cat CID) ([]Hypo, bool) {
	c, ok := g.Abstract.Cats[cat]
	if !ok {
		return nil, false
	}
	out := make([]Hypo, len(c.Hypos))
	copy(out, c.Hypos)
	return out, true
}

// Functions returns every abstract function, in file order.
func Functions(g *Pgf) []CID {
	out := make([]CID, len(g.Abstract.FunOrder))
	copy(out, g.Abstract.FunOrder)
	return out
}

// FunctionsByCat returns the functions producing cat, in file order.
func FunctionsByCat(g *Pgf, cat CID) ([]CID, bool) {
	c, ok := g.Abstract.Cats[cat]
	if !ok {
		return nil, false
	}
	out := make([]CID, len(c.Funs))
	for i, fr := range c.Funs {
		out[i] = fr.Name
	}
	return out, true
}

// FunctionType returns a function's declared type.
func FunctionType(g *Pgf, fun CID) (Type, bool) {
	f, ok := g.Abstract.Funs[fun]
	if !ok {
		return Type{}, false
	}
	return f.Type, true
}

// lookupConcrete resolves lang to its Concrete, or a *PgfError tagged
// KindUnknownLanguage.
func lookupConcrete(g *Pgf, lang Language) (*Concrete, error) {
	cnc, ok := g.Concretes[lang]
	if !ok {
		return nil, unknownLanguageErr(string(lang))
	}
	return cnc, nil
}
