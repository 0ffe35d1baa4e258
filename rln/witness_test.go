package rln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTestWitness(t *testing.T, x Element) RLNWitness {
	t.Helper()
	id := NewIdentity([]byte("share extraction seed"))
	secretHash, err := id.SecretHash()
	require.NoError(t, err)

	return RLNWitness{
		IdentitySecret: DecodeElement(secretHash),
		PathElements:   []Element{randomElement(), randomElement()},
		PathIndex:      []uint8{0, 1},
		X:              x,
		Epoch:          randomElement(),
		RLNIdentifier:  DecodeElement(RLN_IDENTIFIER),
	}
}

func TestComputeProofValuesRootMatchesMerkleRecompute(t *testing.T) {
	w := buildTestWitness(t, randomElement())
	values, err := ComputeProofValues(w)
	require.NoError(t, err)

	wantRoot, err := RecomputeRoot(w.IdentitySecret, w.PathElements, w.PathIndex, true)
	require.NoError(t, err)
	require.Equal(t, wantRoot, values.Root)
}

func TestComputeProofValuesRejectsMalformedWitness(t *testing.T) {
	w := buildTestWitness(t, randomElement())
	w.PathIndex = w.PathIndex[:1]
	_, err := ComputeProofValues(w)
	require.ErrorIs(t, err, ErrWitness)
}

func TestShareExtractionRecoversIdentitySecret(t *testing.T) {
	epoch := randomElement()
	rlnIdentifier := DecodeElement(RLN_IDENTIFIER)

	id := NewIdentity([]byte("share extraction seed"))
	secretHashBytes, err := id.SecretHash()
	require.NoError(t, err)
	secretHash := DecodeElement(secretHashBytes)

	w1 := RLNWitness{
		IdentitySecret: secretHash,
		PathElements:   []Element{randomElement()},
		PathIndex:      []uint8{0},
		X:              HashToField([]byte("signal one")),
		Epoch:          epoch,
		RLNIdentifier:  rlnIdentifier,
	}
	w2 := w1
	w2.X = HashToField([]byte("signal two"))

	v1, err := ComputeProofValues(w1)
	require.NoError(t, err)
	v2, err := ComputeProofValues(w2)
	require.NoError(t, err)

	require.NotEqual(t, v1.X, v2.X)

	recovered, err := RecoverSecret(v1.X, v1.Y, v2.X, v2.Y, epoch, rlnIdentifier)
	require.NoError(t, err)
	require.Equal(t, EncodeElement(&secretHash), recovered)
}

func TestShareExtractionSameXIsRecoveryError(t *testing.T) {
	w := buildTestWitness(t, HashToField([]byte("one signal")))
	v, err := ComputeProofValues(w)
	require.NoError(t, err)

	_, err = RecoverSecret(v.X, v.Y, v.X, v.Y, w.Epoch, w.RLNIdentifier)
	require.ErrorIs(t, err, ErrRecovery)
}

func TestCrossEpochNonRecovery(t *testing.T) {
	id := NewIdentity([]byte("cross epoch seed"))
	secretHashBytes, err := id.SecretHash()
	require.NoError(t, err)
	secretHash := DecodeElement(secretHashBytes)
	rlnIdentifier := DecodeElement(RLN_IDENTIFIER)

	w1 := RLNWitness{
		IdentitySecret: secretHash,
		PathElements:   []Element{randomElement()},
		PathIndex:      []uint8{0},
		X:              HashToField([]byte("signal one")),
		Epoch:          randomElement(),
		RLNIdentifier:  rlnIdentifier,
	}
	w2 := w1
	w2.Epoch = randomElement()
	w2.X = HashToField([]byte("signal two"))

	v1, err := ComputeProofValues(w1)
	require.NoError(t, err)
	v2, err := ComputeProofValues(w2)
	require.NoError(t, err)

	_, err = RecoverSecret(v1.X, v1.Y, v2.X, v2.Y, w1.Epoch, rlnIdentifier)
	require.ErrorIs(t, err, ErrRecovery)
}
