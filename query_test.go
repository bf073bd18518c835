package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbstractNameAndStartCat(t *testing.T) {
	g := buildFoodGrammar()
	assert.Equal(t, CID("Food"), AbstractName(g))
	assert.Equal(t, GroundType("Comment"), StartCatType(g))
}

func TestLanguagesOrder(t *testing.T) {
	g := buildFoodGrammar()
	assert.Equal(t, []Language{"FoodEng"}, Languages(g))
}

func TestCategoriesOrder(t *testing.T) {
	g := buildFoodGrammar()
	assert.Equal(t, []CID{"Comment", "Item"}, Categories(g))
}

func TestFunctionsOrder(t *testing.T) {
	g := buildFoodGrammar()
	assert.Equal(t, []CID{"Pred", "This"}, Functions(g))
}

func TestFunctionsByCat(t *testing.T) {
	g := buildFoodGrammar()
	funs, ok := FunctionsByCat(g, "Comment")
	require.True(t, ok)
	assert.Equal(t, []CID{"Pred"}, funs)

	_, ok = FunctionsByCat(g, "NoSuchCat")
	assert.False(t, ok)
}

func TestFunctionType(t *testing.T) {
	g := buildFoodGrammar()
	ty, ok := FunctionType(g, "Pred")
	require.True(t, ok)
	assert.Equal(t, CID("Comment"), ty.Cat)
	assert.Equal(t, 0, ty.Arity())

	_, ok = FunctionType(g, "NoSuchFun")
	assert.False(t, ok)
}

func TestCategoryContext(t *testing.T) {
	g := buildFoodGrammar()
	hypos, ok := CategoryContext(g, "Comment")
	require.True(t, ok)
	assert.Empty(t, hypos)

	_, ok = CategoryContext(g, "NoSuchCat")
	assert.False(t, ok)
}

// spec.md §8 Invariant 6: language_code replaces every "_" with "-", or is
// absent when the "language" cflag is missing or non-string.
func TestLanguageCode(t *testing.T) {
	g := buildFoodGrammar()

	_, ok := LanguageCode(g, "FoodEng")
	assert.False(t, ok, "fixture has no language cflag set")

	cnc := g.Concretes["FoodEng"]
	cnc.Flags = map[CID]Literal{"language": StrLiteral("en_GB_food")}
	code, ok := LanguageCode(g, "FoodEng")
	require.True(t, ok)
	assert.Equal(t, "en-GB-food", code)

	cnc.Flags["language"] = IntLiteral(7)
	_, ok = LanguageCode(g, "FoodEng")
	assert.False(t, ok, "a non-string language flag must not be returned")

	_, ok = LanguageCode(g, "NonExistentLang")
	assert.False(t, ok)
}
