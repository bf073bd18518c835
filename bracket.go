package pgf

// BracketNode is the debugging tree projection the chart parser returns
// alongside its real output trees (spec.md §4F "Bracketed projection").
// It is never consulted by Parse itself — purely a human-readable view.
type BracketNode interface {
	isBracketNode()
}

// Leaf is a bracketed-projection leaf: a function name, or "" for any
// expression kind the projection does not know how to render.
type Leaf struct {
	Label string
}

// Branch is a bracketed-projection interior node: a label (wildCID for the
// synthetic parents App produces) and its children in order.
type Branch struct {
	Label    CID
	Children []BracketNode
}

func (Leaf) isBracketNode()   {}
func (Branch) isBracketNode() {}

// ExprToBracketed renders e as a bracketed-string projection: Fun(cid) is
// a Leaf, App(e1, e2) is a Branch under the wildcard label with the two
// sub-projections as children, and anything else is Leaf(""). maxDepth
// bounds how deep the recursion descends before truncating to Leaf("") —
// it affects only this projection, never the trees Parse returns (spec.md
// §4F: "The optional depth parameter bounds tree depth during bracketed
// projection only; output trees are returned unabridged").
func ExprToBracketed(e Expr, maxDepth int) BracketNode {
	return exprToBracketed(e, maxDepth)
}

func exprToBracketed(e Expr, depth int) BracketNode {
	if depth <= 0 {
		return Leaf{}
	}
	switch ex := e.(type) {
	case ExprFun:
		return Leaf{Label: string(ex.Name)}
	case ExprApp:
		return Branch{
			Label: wildCID,
			Children: []BracketNode{
				exprToBracketed(ex.Fn, depth-1),
				exprToBracketed(ex.Arg, depth-1),
			},
		}
	default:
		return Leaf{}
	}
}
