package pgf

import "fmt"

// validate checks the six load-time invariants from spec.md §3. It is run
// once, at the end of DecodePGF, so that no caller ever observes a grammar
// that violates them; EncodePGF also calls it before writing, so hand-built
// grammars are checked the same way.
func validate(g *Pgf) error {
	if _, ok := g.Abstract.Cats[g.StartCat]; !ok {
		if _, ok := flagString(g.Flags, CID("startcat")); !ok {
			return deserializeErr("start category %q not found in abstract record or flags", g.StartCat)
		}
	}

	for _, lang := range g.LangOrder {
		cnc := g.Concretes[lang]
		if err := validateConcrete(g, cnc); err != nil {
			return err
		}
	}
	return nil
}

func validateConcrete(g *Pgf, cnc *Concrete) error {
	// Invariant 2: every function identifier mentioned by any concrete
	// function appears in the abstract record.
	for _, cf := range cnc.CncFuns {
		if _, ok := g.Abstract.Funs[cf.Name]; !ok {
			return deserializeErr("concrete function %q has no abstract definition in language %q", cf.Name, cnc.Name)
		}
	}

	// Invariant 4: every sequence index stored in a CncFun.Lins is within
	// [0, len(sequences)).
	for _, cf := range cnc.CncFuns {
		for _, seqID := range cf.Lins {
			if seqID < 0 || int(seqID) >= len(cnc.Sequences) {
				return deserializeErr("cncfun %q references out-of-range sequence %d in language %q", cf.Name, seqID, cnc.Name)
			}
		}
	}

	// Invariant 3: every SymCat/SymLit/SymVar(d,_) satisfies d < arity of
	// the owning concrete function. The owning function for a sequence is
	// whichever CncFun lists it; a sequence may be shared across fields of
	// the same function, so we check against every CncFun referencing it.
	seqOwnerArity := make(map[int32]int)
	for _, cf := range cnc.CncFuns {
		arity := g.Abstract.Funs[cf.Name].Type.Arity()
		for _, seqID := range cf.Lins {
			if a, ok := seqOwnerArity[seqID]; !ok || arity < a {
				seqOwnerArity[seqID] = arity
			}
		}
	}
	for seqID, seq := range cnc.Sequences {
		arity, known := seqOwnerArity[int32(seqID)]
		if !known {
			continue // unreferenced sequence: nothing to check it against
		}
		if err := validateSequenceSymbols(seq, arity, cnc.Name, seqID); err != nil {
			return err
		}
	}

	// Invariant 5: every fid appearing in CncCat ranges and in productions'
	// keys/args is within [0, total_cats).
	for cat, rng := range cnc.CncCats {
		if rng.Start < 0 || rng.End > cnc.TotalCats || rng.Start > rng.End {
			return deserializeErr("category %q range [%d,%d) out of bounds [0,%d) in language %q", cat, rng.Start, rng.End, cnc.TotalCats, cnc.Name)
		}
	}
	for fid, prods := range cnc.Productions {
		if fid < 0 || fid >= cnc.TotalCats {
			return deserializeErr("production key fid %d out of bounds [0,%d) in language %q", fid, cnc.TotalCats, cnc.Name)
		}
		for _, p := range prods {
			if err := validateProductionFids(p, cnc); err != nil {
				return err
			}
		}
	}

	// Invariant 6: coerce chains are acyclic.
	return checkCoerceAcyclic(cnc)
}

func validateSequenceSymbols(seq []Symbol, arity int, lang Language, seqID int) error {
	for _, sym := range seq {
		var d int32
		switch s := sym.(type) {
		case SymCat:
			d = s.D
		case SymLit:
			d = s.D
		case SymVar:
			d = s.D
		default:
			continue
		}
		if int(d) >= arity {
			return deserializeErr("sequence %d in language %q references argument %d but owning function has arity %d", seqID, lang, d, arity)
		}
	}
	return nil
}

func validateProductionFids(p Production, cnc *Concrete) error {
	switch prod := p.(type) {
	case Apply:
		if prod.Fid < 0 || int(prod.Fid) >= len(cnc.CncFuns) {
			return deserializeErr("apply production references out-of-range cncfun %d in language %q", prod.Fid, cnc.Name)
		}
		for _, arg := range prod.Args {
			if arg.Fid < 0 || arg.Fid >= cnc.TotalCats {
				return deserializeErr("parg target fid %d out of bounds [0,%d) in language %q", arg.Fid, cnc.TotalCats, cnc.Name)
			}
			for _, h := range arg.Hypos {
				if h < 0 || h >= cnc.TotalCats {
					return deserializeErr("parg hypo fid %d out of bounds [0,%d) in language %q", h, cnc.TotalCats, cnc.Name)
				}
			}
		}
	case Coerce:
		if prod.Arg < 0 || prod.Arg >= cnc.TotalCats {
			return deserializeErr("coerce target fid %d out of bounds [0,%d) in language %q", prod.Arg, cnc.TotalCats, cnc.Name)
		}
	default:
		return fmt.Errorf("unreachable: unknown production type %T", p)
	}
	return nil
}

// checkCoerceAcyclic walks the Coerce(fid -> arg) edges and rejects any
// cycle, via plain DFS with a recursion-stack marker (spec.md §9: "Coerce
// edges form a DAG — detect cycles at load time and reject").
func checkCoerceAcyclic(cnc *Concrete) error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[int32]int)

	var visit func(fid int32) error
	visit = func(fid int32) error {
		switch state[fid] {
		case done:
			return nil
		case visiting:
			return deserializeErr("coerce cycle detected at fid %d in language %q", fid, cnc.Name)
		}
		state[fid] = visiting
		for _, p := range cnc.Productions[fid] {
			if c, ok := p.(Coerce); ok {
				if err := visit(c.Arg); err != nil {
					return err
				}
			}
		}
		state[fid] = done
		return nil
	}

	for fid := range cnc.Productions {
		if err := visit(fid); err != nil {
			return err
		}
	}
	return nil
}
