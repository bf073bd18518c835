package pgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeArity(t *testing.T) {
	ground := GroundType("Comment")
	assert.Equal(t, 0, ground.Arity())

	withArg := Type{Hypos: []Hypo{{Binding: Binding{Kind: BindExplicit, Var: "x"}, Type: GroundType("Item")}}, Cat: "Comment"}
	assert.Equal(t, 1, withArg.Arity())
}

func TestFlagString(t *testing.T) {
	flags := map[CID]Literal{"startcat": StrLiteral("Comment"), "count": IntLiteral(1)}
	s, ok := flagString(flags, "startcat")
	assert.True(t, ok)
	assert.Equal(t, "Comment", s)

	_, ok = flagString(flags, "count")
	assert.False(t, ok, "a non-string literal must not be returned as a flag string")

	_, ok = flagString(flags, "missing")
	assert.False(t, ok)
}
