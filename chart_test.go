package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsFun(trees []Expr, name CID) bool {
	for _, tree := range trees {
		if spineFun(tree) == name {
			return true
		}
	}
	return false
}

// spineFun returns the function name at the head of e's applicative spine
// (App(App(...Fun(f), a1)...) -> f), or "" if e has no Fun head.
func spineFun(e Expr) CID {
	for {
		switch ex := e.(type) {
		case ExprFun:
			return ex.Name
		case ExprApp:
			e = ex.Fn
		default:
			return ""
		}
	}
}

// spec.md §8 Scenario 4: unknown category -> ParseError("Category not
// found: NonExistentCat").
func TestInitStateUnknownCategory(t *testing.T) {
	g := buildFoodGrammar()
	_, err := InitState(g, "FoodEng", GroundType("NonExistentCat"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
	assert.Equal(t, "ParseError: Category not found: NonExistentCat", err.Error())
}

// spec.md §8 Scenario 3: unknown language -> UnknownLanguage("NonExistentLang").
func TestInitStateUnknownLanguage(t *testing.T) {
	g := buildFoodGrammar()
	_, err := InitState(g, "NonExistentLang", GroundType("Comment"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnknownLanguage))
	assert.Equal(t, "UnknownLanguage: NonExistentLang", err.Error())
}

func TestParseCommentFindsPred(t *testing.T) {
	g := buildFoodGrammar()
	result, err := Parse(g, "FoodEng", StartCatType(g), "is")
	require.NoError(t, err)
	assert.True(t, containsFun(result.Trees, "Pred"))
}

func TestParseItemFindsThis(t *testing.T) {
	g := buildFoodGrammar()
	result, err := Parse(g, "FoodEng", GroundType("Item"), "this")
	require.NoError(t, err)
	assert.True(t, containsFun(result.Trees, "This"))
}

func TestParseNoMatchFails(t *testing.T) {
	g := buildFoodGrammar()
	_, err := Parse(g, "FoodEng", StartCatType(g), "nonsense")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
}

func TestGetParseOutputFailureProjection(t *testing.T) {
	g := buildFoodGrammar()
	st, err := InitState(g, "FoodEng", StartCatType(g))
	require.NoError(t, err)
	st.NextState("nonsense")
	result := st.GetParseOutput(defaultBracketDepth)
	assert.Nil(t, result.Trees)
	assert.Equal(t, Leaf{}, result.Bracket)
}

// spec.md §8 Invariant 2: for every concrete function whose first
// linearization is non-empty and pure SymKS, parsing the linearized output
// against that function's own category recovers a tree containing the
// function. (buildFoodGrammar's "This" produces category Item, not the
// grammar's start category Comment, so the goal type used here is the
// function's own result category rather than literally start_cat(g); see
// TestParseCommentFindsPred above for the literal start_cat(g) case, which
// holds here because "Pred" is exactly the start-category function.)
func TestInvariant2LinearizeThenParseRoundTrips(t *testing.T) {
	g := buildFoodGrammar()
	for _, fn := range Functions(g) {
		ty, ok := FunctionType(g, fn)
		require.True(t, ok)

		text, err := Linearize(g, "FoodEng", ExprFun{Name: fn})
		require.NoError(t, err)
		require.NotEmpty(t, text)

		result, err := Parse(g, "FoodEng", GroundType(ty.Cat), text)
		require.NoError(t, err)
		assert.True(t, containsFun(result.Trees, fn), "parsing linearized %q for %q did not recover Fun(%q)", text, fn, fn)
	}
}

func TestBracketedProjectionOfSimpleFun(t *testing.T) {
	b := ExprToBracketed(ExprFun{Name: "Pred"}, defaultBracketDepth)
	assert.Equal(t, Leaf{Label: "Pred"}, b)
}

func TestBracketedProjectionOfApp(t *testing.T) {
	b := ExprToBracketed(ExprApp{Fn: ExprFun{Name: "Pred"}, Arg: ExprFun{Name: "This"}}, defaultBracketDepth)
	branch, ok := b.(Branch)
	require.True(t, ok)
	assert.Equal(t, wildCID, branch.Label)
	assert.Len(t, branch.Children, 2)
}

func TestBracketedProjectionDepthLimit(t *testing.T) {
	b := ExprToBracketed(ExprApp{Fn: ExprFun{Name: "Pred"}, Arg: ExprFun{Name: "This"}}, 0)
	assert.Equal(t, Leaf{}, b)
}
