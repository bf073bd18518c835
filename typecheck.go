package pgf

// CheckExpr is the structural companion type checker from spec.md §4F: a
// compatibility shim, not a full dependent type checker. Fun(f) must carry
// the same result category as expected; App(h, a) checks h against
// expected, takes the first hypothesis category of h's resulting type as
// the expected type for a, and requires h's result category to match
// expected too. Anything else is a TypeCheckError.
func CheckExpr(g *Pgf, e Expr, expected Type) (Type, error) {
	switch ex := e.(type) {
	case ExprFun:
		fn, ok := g.Abstract.Funs[ex.Name]
		if !ok {
			return Type{}, typeCheckErr("unknown function: %s", ex.Name)
		}
		if fn.Type.Cat != expected.Cat {
			return Type{}, typeCheckErr("type mismatch: expected %s, got %s", expected.Cat, fn.Type.Cat)
		}
		return fn.Type, nil
	case ExprApp:
		fnType, err := CheckExpr(g, ex.Fn, expected)
		if err != nil {
			return Type{}, err
		}
		if len(fnType.Hypos) == 0 || fnType.Cat != expected.Cat {
			return Type{}, typeCheckErr("invalid application")
		}
		argCat := fnType.Hypos[0].Type.Cat
		if _, err := CheckExpr(g, ex.Arg, GroundType(argCat)); err != nil {
			return Type{}, err
		}
		return expected, nil
	default:
		return Type{}, typeCheckErr("unsupported expression for type checking")
	}
}
