package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsDeterministic(t *testing.T) {
	g := buildFoodGrammar()
	first, err := EncodePGF(g)
	require.NoError(t, err)
	second, err := EncodePGF(g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeRejectsOverlongStringShort(t *testing.T) {
	g := buildFoodGrammar()
	g.Abstract.Funs["Pred"].Type.Cat = CID(make([]byte, 256))
	_, err := EncodePGF(g)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindSerialize))
}
