package rln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSemaphoreProofValuesMatchesManualDerivation(t *testing.T) {
	w := SemaphoreWitness{
		IdentityTrapdoor:  randomElement(),
		IdentityNullifier: randomElement(),
		PathElements:      []Element{randomElement(), randomElement()},
		PathIndex:         []uint8{0, 1},
		Signal:            []byte("semaphore signal"),
		ExternalNullifier: []byte("semaphore external nullifier"),
	}

	values, err := ComputeSemaphoreProofValues(w)
	require.NoError(t, err)

	secretHash, err := Poseidon2(&w.IdentityNullifier, &w.IdentityTrapdoor)
	require.NoError(t, err)
	commitment, err := Poseidon1(&secretHash)
	require.NoError(t, err)
	wantRoot, err := RecomputeRoot(commitment, w.PathElements, w.PathIndex, false)
	require.NoError(t, err)
	require.Equal(t, wantRoot, values.Root)

	wantExternalNullifier := HashExternalNullifierSemaphore(w.ExternalNullifier)
	require.Equal(t, wantExternalNullifier, values.ExternalNullifier)

	wantSignalHash := HashSignalSemaphore(w.Signal)
	require.Equal(t, wantSignalHash, values.SignalHash)

	// nullifier_hash per protocol.rs's generate_nullifier_hash:
	// poseidon_hash(&[external_nullifier, identity.nullifier]) — the raw
	// identity_nullifier, not secret_hash, and in that operand order.
	wantNullifierHash, err := Poseidon2(&wantExternalNullifier, &w.IdentityNullifier)
	require.NoError(t, err)
	require.Equal(t, wantNullifierHash, values.NullifierHash)
}

// TestNullifierHashIsIndependentOfTrapdoor pins protocol.rs's
// generate_nullifier_hash ground truth: nullifier_hash is
// Poseidon(external_nullifier, identity_nullifier), which does not depend
// on identity_trapdoor at all. A derivation that mistakenly folds in
// secret_hash (which is Poseidon(identity_nullifier, identity_trapdoor))
// would make nullifier_hash vary with trapdoor; this test would catch
// that regression.
func TestNullifierHashIsIndependentOfTrapdoor(t *testing.T) {
	base := SemaphoreWitness{
		IdentityTrapdoor:  randomElement(),
		IdentityNullifier: randomElement(),
		PathElements:      []Element{randomElement()},
		PathIndex:         []uint8{0},
		Signal:            []byte("signal"),
		ExternalNullifier: []byte("external nullifier"),
	}
	other := base
	other.IdentityTrapdoor = randomElement()
	require.NotEqual(t, base.IdentityTrapdoor, other.IdentityTrapdoor)

	baseValues, err := ComputeSemaphoreProofValues(base)
	require.NoError(t, err)
	otherValues, err := ComputeSemaphoreProofValues(other)
	require.NoError(t, err)

	require.Equal(t, baseValues.NullifierHash, otherValues.NullifierHash)
	require.NotEqual(t, baseValues.Root, otherValues.Root, "commitment, and so root, must still depend on trapdoor")
}

func TestHashSignalSemaphoreDiffersFromHashToField(t *testing.T) {
	signal := []byte("any signal")
	require.NotEqual(t, HashToField(signal), HashSignalSemaphore(signal))
}

func TestSemaphoreWitnessValidateRejectsLengthMismatch(t *testing.T) {
	w := SemaphoreWitness{
		PathElements: []Element{randomElement()},
		PathIndex:    []uint8{0, 1},
	}
	require.ErrorIs(t, w.Validate(), ErrWitness)
}
