package rln

import (
	"testing"

	groth16 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/stretchr/testify/require"
)

func TestPrepareVerifyingKeyRejectsNil(t *testing.T) {
	_, err := PrepareVerifyingKey(nil)
	require.ErrorIs(t, err, ErrCircuitKey)
}

func TestPrepareVerifyingKeyWrapsKey(t *testing.T) {
	var vk groth16.VerifyingKey
	pvk, err := PrepareVerifyingKey(&vk)
	require.NoError(t, err)
	require.NotNil(t, pvk)
}

func TestPublicInputsOrderMatchesSpec(t *testing.T) {
	values := RLNProofValues{
		Y:             randomElement(),
		Root:          randomElement(),
		Nullifier:     randomElement(),
		X:             randomElement(),
		Epoch:         randomElement(),
		RLNIdentifier: randomElement(),
	}
	got := publicInputs(values)
	require.Equal(t, []Element{values.Y, values.Root, values.Nullifier, values.X, values.Epoch, values.RLNIdentifier}, got)
}

func TestSemaphorePublicInputsOrder(t *testing.T) {
	values := SemaphoreProofValues{
		Root:              randomElement(),
		NullifierHash:     randomElement(),
		SignalHash:        randomElement(),
		ExternalNullifier: randomElement(),
	}
	got := semaphorePublicInputs(values)
	require.Equal(t, []Element{values.Root, values.NullifierHash, values.SignalHash, values.ExternalNullifier}, got)
}
