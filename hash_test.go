package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFoodGrammarReordered returns a grammar that is structurally equal to
// buildFoodGrammar's but was built with every map populated in the opposite
// insertion order (funs, cats, and a flag table added to both grammars; the
// fixture's single concrete is left as it is) — the scenario spec.md §8 Invariant 8 (SPEC_FULL.md) asks
// CanonicalHash to be blind to.
func buildFoodGrammarReordered() *Pgf {
	g := buildFoodGrammar()

	pred := g.Abstract.Funs["Pred"]
	this := g.Abstract.Funs["This"]
	g.Abstract.Funs = map[CID]*AbstractFun{"This": this, "Pred": pred}
	g.Abstract.FunOrder = []CID{"This", "Pred"}

	comment := g.Abstract.Cats["Comment"]
	item := g.Abstract.Cats["Item"]
	g.Abstract.Cats = map[CID]*AbstractCat{"Item": item, "Comment": comment}
	g.Abstract.CatOrder = []CID{"Item", "Comment"}

	g.Flags = map[CID]Literal{"b": StrLiteral("2"), "a": StrLiteral("1")}
	g.FlagOrder = []CID{"b", "a"}

	return g
}

func TestCanonicalHashInsertionOrderIndependent(t *testing.T) {
	a := buildFoodGrammar()
	a.Flags = map[CID]Literal{"a": StrLiteral("1"), "b": StrLiteral("2")}
	a.FlagOrder = []CID{"a", "b"}

	b := buildFoodGrammarReordered()

	hashA, err := CanonicalHash(a)
	require.NoError(t, err)
	hashB, err := CanonicalHash(b)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB, "CanonicalHash must not depend on map-insertion order")
}

func TestCanonicalHashStableAcrossCalls(t *testing.T) {
	g := buildFoodGrammar()
	first, err := CanonicalHash(g)
	require.NoError(t, err)
	second, err := CanonicalHash(g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCanonicalHashDiffersOnContentChange(t *testing.T) {
	a := buildFoodGrammar()
	b := buildFoodGrammar()
	b.Concretes["FoodEng"].Sequences[0] = []Symbol{SymKS{Token: "was"}}

	hashA, err := CanonicalHash(a)
	require.NoError(t, err)
	hashB, err := CanonicalHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestCanonicalHashIgnoresEquations(t *testing.T) {
	a := buildFoodGrammar()
	b := buildFoodGrammar()
	b.Abstract.Funs["Pred"].Equations = &EquationSet{
		Equations: []Equation{{Patterns: nil, Result: ExprFun{Name: "Pred"}}},
	}

	hashA, err := CanonicalHash(a)
	require.NoError(t, err)
	hashB, err := CanonicalHash(b)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB, "equations are excluded from content identity")
}
