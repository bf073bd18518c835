package pgf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spec.md §8 Scenario 1.
func TestPgfToJSONScenario1(t *testing.T) {
	g := buildFoodGrammar()

	data, err := PgfToJSON(g)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	abstract, ok := out["abstract"].(map[string]interface{})
	require.True(t, ok, "abstract must be a JSON object")
	assert.Equal(t, "Food", abstract["name"])
	assert.Equal(t, "Comment", abstract["startcat"])

	funs, ok := abstract["funs"].(map[string]interface{})
	require.True(t, ok, "abstract.funs must be a JSON object")
	assert.Contains(t, funs, "Pred")
	assert.Contains(t, funs, "This")

	concretes, ok := out["concretes"].(map[string]interface{})
	require.True(t, ok, "concretes must be a JSON object")
	assert.Contains(t, concretes, "FoodEng")
}

// spec.md §8 Invariant 3: pgf_to_json is valid JSON with both top-level
// fields, and (this package's addition) self-validates against the
// documented shape.
func TestPgfToJSONIsValidAndSelfValidates(t *testing.T) {
	g := buildFoodGrammar()

	data, err := PgfToJSON(g)
	require.NoError(t, err)
	require.NoError(t, validateProjectionShape(data))

	var v interface{}
	require.NoError(t, json.Unmarshal(data, &v))
}

func TestPgfToJSONFunctionShape(t *testing.T) {
	g := buildFoodGrammar()
	data, err := PgfToJSON(g)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	funs := out["abstract"].(map[string]interface{})["funs"].(map[string]interface{})

	pred := funs["Pred"].(map[string]interface{})
	assert.Equal(t, "Comment", pred["cat"])
	assert.Equal(t, []interface{}{}, pred["args"])
}
