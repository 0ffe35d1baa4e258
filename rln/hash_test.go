package rln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashToFieldDeterministic(t *testing.T) {
	msg := []byte("rate limiting nullifier")
	require.Equal(t, HashToField(msg), HashToField(msg))
}

func TestPoseidon1DeterministicAnd2OrderSensitive(t *testing.T) {
	a := randomElement()
	b := randomElement()

	h1a, err := Poseidon1(&a)
	require.NoError(t, err)
	h1b, err := Poseidon1(&a)
	require.NoError(t, err)
	require.Equal(t, h1a, h1b)

	h2a, err := Poseidon2(&a, &b)
	require.NoError(t, err)
	h2b, err := Poseidon2(&b, &a)
	require.NoError(t, err)
	require.NotEqual(t, h2a, h2b, "Poseidon argument order must matter")
}

func TestHashExternalNullifierSemaphoreClearsFourBytes(t *testing.T) {
	got := HashExternalNullifierSemaphore([]byte("external nullifier"))
	b := EncodeElement(&got)
	// The top four big-endian bytes are the last four in our little-endian
	// encoding.
	require.Equal(t, []byte{0, 0, 0, 0}, b[28:32])
}
