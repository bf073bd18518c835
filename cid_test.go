package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMkCID(t *testing.T) {
	cid, ok := MkCID("Comment")
	require.True(t, ok)
	assert.Equal(t, "Comment", ShowCID(cid))

	_, ok = MkCID("")
	assert.False(t, ok, "empty name must fail construction")
}

func TestReadLanguage(t *testing.T) {
	lang, ok := ReadLanguage("FoodEng")
	require.True(t, ok)
	assert.Equal(t, "FoodEng", ShowLanguage(lang))

	_, ok = ReadLanguage("")
	assert.False(t, ok)
}

func TestLiteralEqual(t *testing.T) {
	assert.True(t, StrLiteral("is").Equal(StrLiteral("is")))
	assert.False(t, StrLiteral("is").Equal(StrLiteral("this")))
	assert.True(t, IntLiteral(3).Equal(IntLiteral(3)))
	assert.False(t, IntLiteral(3).Equal(IntLiteral(4)))
	assert.True(t, FloatLiteral(1.5).Equal(FloatLiteral(1.5)))
	assert.False(t, StrLiteral("x").Equal(IntLiteral(0)), "different kinds never compare equal")
}
