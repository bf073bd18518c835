package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spec.md §8 Scenario 2.
func TestLinearizeScenario2(t *testing.T) {
	g := buildFoodGrammar()

	pred, err := Linearize(g, "FoodEng", ExprFun{Name: "Pred"})
	require.NoError(t, err)
	assert.Equal(t, "is", pred)

	this, err := Linearize(g, "FoodEng", ExprFun{Name: "This"})
	require.NoError(t, err)
	assert.Equal(t, "this", this)
}

func TestLinearizeUnknownLanguage(t *testing.T) {
	g := buildFoodGrammar()
	_, err := Linearize(g, "NonExistentLang", ExprFun{Name: "Pred"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnknownLanguage))
}

func TestLinearizeUnknownFunction(t *testing.T) {
	g := buildFoodGrammar()
	_, err := Linearize(g, "FoodEng", ExprFun{Name: "NoSuchFun"})
	require.Error(t, err)
}

func TestLinearizeUnsupportedExpression(t *testing.T) {
	g := buildFoodGrammar()
	_, err := Linearize(g, "FoodEng", ExprMeta{})
	require.Error(t, err)
}

func TestLinearizeApp(t *testing.T) {
	g := buildFoodGrammar()
	// "Pred" doesn't take arguments in the fixture, but linearize walks the
	// applicative spine unconditionally: App(Fun("Pred"), Fun("This")) should
	// linearize to the concatenation of both functions' first fields.
	out, err := Linearize(g, "FoodEng", ExprApp{Fn: ExprFun{Name: "Pred"}, Arg: ExprFun{Name: "This"}})
	require.NoError(t, err)
	assert.Equal(t, "is this", out)
}
