package pgf

import (
	"sort"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// CanonicalHash returns a content hash of g that depends only on the
// grammar's meaning, not on map iteration order or any other incidental
// encoding detail. It is grounded on the same two-step pattern
// core/planfmt/canonical.go uses for plan hashing: first flatten the
// structure into canonical, deterministically-ordered intermediate
// structs, then hash a canonical encoding of those structs. This package
// uses CBOR (github.com/fxamacker/cbor/v2) for the encode step, as the
// teacher does, and BLAKE2b-256 for the digest, as writer.go/reader.go do.
func CanonicalHash(g *Pgf) ([32]byte, error) {
	canon := canonicalizeGrammar(g)
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		return [32]byte{}, serializeErr("build canonical CBOR mode: %v", err)
	}
	data, err := mode.Marshal(canon)
	if err != nil {
		return [32]byte{}, serializeErr("canonical encode: %v", err)
	}
	return blake2b.Sum256(data), nil
}

// canonicalGrammar, canonicalFlag, canonicalFun, canonicalCat,
// canonicalConcrete and friends mirror CanonicalPlan/CanonicalStep/
// CanonicalNode: every map in Pgf/Abstract/Concrete becomes a sorted slice
// here so two grammars with the same content but differently built maps
// hash identically.
type canonicalGrammar struct {
	AbsName   string
	StartCat  string
	Flags     []canonicalFlag
	Funs      []canonicalFun
	Cats      []canonicalCat
	Concretes []canonicalConcrete
}

type canonicalFlag struct {
	Key   string
	Value Literal
}

type canonicalFun struct {
	Name   string
	Type   Type
	Weight int32
	Prob   float64
	// Equations are deliberately excluded from content identity: they are
	// an optional rewriting annex of a function, not part of what
	// the query functions/Linearize/Parse observe.
}

type canonicalCat struct {
	Name  string
	Hypos []Hypo
	Funs  []string
}

type canonicalConcrete struct {
	Name        string
	Flags       []canonicalFlag
	Productions []canonicalProdEntry
	CncFuns     []CncFun
	Sequences   [][]Symbol
	CncCats     []canonicalCncCat
	TotalCats   int32
}

type canonicalProdEntry struct {
	Fid         int32
	Productions []Production
}

type canonicalCncCat struct {
	Name  string
	Start int32
	End   int32
}

// canonicalizeFlags sorts by key rather than following order (insertion
// order), so two grammars whose flag tables were built in different
// map-insertion orders still canonicalize identically (spec.md §4I: "two
// grammars that are structurally equal modulo map-ordering produce the
// same hash").
func canonicalizeFlags(flags map[CID]Literal, order []CID) []canonicalFlag {
	out := make([]canonicalFlag, 0, len(order))
	for _, key := range order {
		out = append(out, canonicalFlag{Key: string(key), Value: flags[key]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func canonicalizeGrammar(g *Pgf) canonicalGrammar {
	funs := make([]canonicalFun, 0, len(g.Abstract.FunOrder))
	for _, name := range g.Abstract.FunOrder {
		fn := g.Abstract.Funs[name]
		funs = append(funs, canonicalFun{Name: string(fn.Name), Type: fn.Type, Weight: fn.Weight, Prob: fn.Prob})
	}
	sort.Slice(funs, func(i, j int) bool { return funs[i].Name < funs[j].Name })

	cats := make([]canonicalCat, 0, len(g.Abstract.CatOrder))
	for _, name := range g.Abstract.CatOrder {
		cat := g.Abstract.Cats[name]
		funRefs := make([]string, 0, len(cat.Funs))
		for _, fr := range cat.Funs {
			funRefs = append(funRefs, string(fr.Name))
		}
		cats = append(cats, canonicalCat{Name: string(cat.Name), Hypos: cat.Hypos, Funs: funRefs})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })

	concretes := make([]canonicalConcrete, 0, len(g.LangOrder))
	for _, lang := range g.LangOrder {
		concretes = append(concretes, canonicalizeConcrete(g.Concretes[lang]))
	}
	sort.Slice(concretes, func(i, j int) bool { return concretes[i].Name < concretes[j].Name })

	return canonicalGrammar{
		AbsName:   string(g.AbsName),
		StartCat:  string(g.StartCat),
		Flags:     canonicalizeFlags(g.Flags, g.FlagOrder),
		Funs:      funs,
		Cats:      cats,
		Concretes: concretes,
	}
}

func canonicalizeConcrete(cnc *Concrete) canonicalConcrete {
	fids := sortedFids(cnc.Productions)
	prods := make([]canonicalProdEntry, 0, len(fids))
	for _, fid := range fids {
		prods = append(prods, canonicalProdEntry{Fid: fid, Productions: cnc.Productions[fid]})
	}

	cnccats := make([]canonicalCncCat, 0, len(cnc.CncCatOrder))
	for _, name := range cnc.CncCatOrder {
		rng := cnc.CncCats[name]
		cnccats = append(cnccats, canonicalCncCat{Name: string(name), Start: rng.Start, End: rng.End})
	}
	sort.Slice(cnccats, func(i, j int) bool { return cnccats[i].Name < cnccats[j].Name })

	return canonicalConcrete{
		Name:        string(cnc.Name),
		Flags:       canonicalizeFlags(cnc.Flags, cnc.FlagOrder),
		Productions: prods,
		CncFuns:     cnc.CncFuns,
		Sequences:   cnc.Sequences,
		CncCats:     cnccats,
		TotalCats:   cnc.TotalCats,
	}
}
