package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExprFunMatchesCategory(t *testing.T) {
	g := buildFoodGrammar()
	ty, err := CheckExpr(g, ExprFun{Name: "Pred"}, GroundType("Comment"))
	require.NoError(t, err)
	assert.Equal(t, CID("Comment"), ty.Cat)
}

func TestCheckExprFunWrongCategory(t *testing.T) {
	g := buildFoodGrammar()
	_, err := CheckExpr(g, ExprFun{Name: "Pred"}, GroundType("Item"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeCheck))
}

func TestCheckExprUnknownFunction(t *testing.T) {
	g := buildFoodGrammar()
	_, err := CheckExpr(g, ExprFun{Name: "NoSuchFun"}, GroundType("Comment"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeCheck))
}

func TestCheckExprUnsupportedExpression(t *testing.T) {
	g := buildFoodGrammar()
	_, err := CheckExpr(g, ExprMeta{}, GroundType("Comment"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeCheck))
}

func TestCheckExprAppRejectedWhenHeadHasNoHypos(t *testing.T) {
	g := buildFoodGrammar()
	// "Pred" has arity 0, so applying it to anything is never well typed.
	_, err := CheckExpr(g, ExprApp{Fn: ExprFun{Name: "Pred"}, Arg: ExprFun{Name: "This"}}, GroundType("Comment"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTypeCheck))
}
