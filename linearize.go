package pgf

import "strings"

// Linearize renders an abstract tree to a token string in a given concrete
// syntax. It covers ground-term linearization, the baseline spec.md §4E
// requires: walk e as an applicative spine App(App(...Fun(f), a1), a2)...,
// resolve f's first linearization field, and emit its SymKS tokens.
// SymCat/SymLit/SymVar/SymKP/SymNE projection (recursively linearizing an
// argument's own concrete representation) is the documented extension
// point this baseline does not implement, mirroring the original
// implementation's own ground-term-only linearize().
func Linearize(g *Pgf, lang Language, e Expr) (string, error) {
	cnc, err := lookupConcrete(g, lang)
	if err != nil {
		return "", err
	}
	var toks []string
	if err := linearizeInto(cnc, e, &toks); err != nil {
		return "", err
	}
	return strings.Join(toks, " "), nil
}

func linearizeInto(cnc *Concrete, e Expr, toks *[]string) error {
	switch ex := e.(type) {
	case ExprFun:
		return linearizeFun(cnc, ex.Name, toks)
	case ExprApp:
		if err := linearizeInto(cnc, ex.Fn, toks); err != nil {
			return err
		}
		return linearizeInto(cnc, ex.Arg, toks)
	default:
		return parseErr("linearize: unsupported expression %T", e)
	}
}

func linearizeFun(cnc *Concrete, name CID, toks *[]string) error {
	for _, cf := range cnc.CncFuns {
		if cf.Name != name {
			continue
		}
		if len(cf.Lins) == 0 {
			return nil
		}
		seq := cnc.Sequences[cf.Lins[0]]
		for _, sym := range seq {
			if ks, ok := sym.(SymKS); ok {
				*toks = append(*toks, ks.Token)
			}
		}
		return nil
	}
	return parseErr("linearize: function %q not found in language %q", name, cnc.Name)
}
