package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsFixture(t *testing.T) {
	assert.NoError(t, validate(buildFoodGrammar()))
}

func TestValidateMissingStartCat(t *testing.T) {
	g := buildFoodGrammar()
	g.StartCat = "Nonexistent"
	err := validate(g)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDeserialize))
}

func TestValidateSequenceArityViolation(t *testing.T) {
	g := buildFoodGrammar()
	// Pred has arity 0 (no args), but its sequence now references argument 0.
	g.Concretes["FoodEng"].Sequences[0] = []Symbol{SymCat{D: 0, R: 0}}
	err := validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arity")
}

func TestValidateCoerceCycleRejected(t *testing.T) {
	g := buildFoodGrammar()
	cnc := g.Concretes["FoodEng"]
	cnc.Productions[0] = []Production{Coerce{Arg: 1}}
	cnc.Productions[1] = []Production{Coerce{Arg: 0}}
	err := validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateOutOfRangeFid(t *testing.T) {
	g := buildFoodGrammar()
	cnc := g.Concretes["FoodEng"]
	cnc.CncCats["Comment"] = CncCat{Start: 0, End: 5}
	err := validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}
