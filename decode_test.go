package pgf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := buildFoodGrammar()

	data, err := EncodePGF(original)
	require.NoError(t, err)

	decoded, err := DecodePGF(data)
	require.NoError(t, err)

	// The decoder always allocates a non-nil (possibly empty) slice for
	// every repeated field it reads, while hand-built fixtures like
	// buildFoodGrammar leave zero-length fields nil; nil and empty carry
	// the same meaning everywhere in this package, so the comparison
	// treats them as equal (spec.md §8 Invariant 1 is about structural
	// equality, not Go slice-nilness).
	if diff := cmp.Diff(original, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeInvalidBytesIsDeserializeError(t *testing.T) {
	_, err := DecodePGF([]byte{0x00, 0x01, 0x02, 0x03})
	require.Error(t, err)
	require.True(t, IsKind(err, KindDeserialize))
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	data, err := EncodePGF(buildFoodGrammar())
	require.NoError(t, err)
	// Corrupt the leading u16 version field.
	data[1] = 0x09
	_, err = DecodePGF(data)
	require.Error(t, err)
	require.True(t, IsKind(err, KindDeserialize))
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	data, err := EncodePGF(buildFoodGrammar())
	require.NoError(t, err)
	data = append(data, 0xff)
	_, err = DecodePGF(data)
	require.Error(t, err)
	require.True(t, IsKind(err, KindDeserialize))
}

func TestReadPGFMissingFile(t *testing.T) {
	_, err := ReadPGF("/nonexistent/path/to/grammar.pgf")
	require.Error(t, err)
	require.True(t, IsKind(err, KindIO))
}
