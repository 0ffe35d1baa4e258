package rln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWitnessJSONRoundTrip(t *testing.T) {
	w := buildTestWitness(t, randomElement())

	data, err := MarshalWitnessJSON(w)
	require.NoError(t, err)

	got, err := UnmarshalWitnessJSON(data)
	require.NoError(t, err)
	require.Equal(t, w, got)
}

func TestWitnessJSONEpochIsHex(t *testing.T) {
	w := buildTestWitness(t, randomElement())
	data, err := MarshalWitnessJSON(w)
	require.NoError(t, err)
	require.Contains(t, string(data), `"epoch":"0x`)
}

func TestWitnessJSONRejectsBadDecimal(t *testing.T) {
	_, err := UnmarshalWitnessJSON([]byte(`{"identity_secret":"not-a-number","path_elements":[],"identity_path_index":[],"x":"0","epoch":"0x0","rln_identifier":"0"}`))
	require.ErrorIs(t, err, ErrCodec)
}
