package rln

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/stretchr/testify/require"
)

// genGroth16Proof builds a structurally valid (but not sound) Proof from
// curve generator points, enough to exercise Bytes/ProofFromBytes without
// needing a deployed circuit's proving/verifying keys — those are the
// external collaborators of §6 and are not bundled with this package.
func genGroth16Proof(t *testing.T) *Proof {
	t.Helper()
	_, _, g1Gen, g2Gen := bn254.Generators()

	var inner groth16bn254.Proof
	inner.Ar = g1Gen
	inner.Bs = g2Gen
	inner.Krs = g1Gen
	return &Proof{inner: &inner}
}

func TestProofBytesRoundTrip(t *testing.T) {
	p := genGroth16Proof(t)

	encoded := p.Bytes()
	require.Len(t, encoded, 128)

	got, err := ProofFromBytes(encoded)
	require.NoError(t, err)
	require.Equal(t, p.Bytes(), got.Bytes())
}

func TestProofFromBytesRejectsGarbage(t *testing.T) {
	var garbage ZKSNARK
	for i := range garbage {
		garbage[i] = 0xff
	}
	_, err := ProofFromBytes(garbage)
	require.Error(t, err)
}

func TestNewFullAssignmentDropsConstantWireAndSplitsAtNbPublic(t *testing.T) {
	full := []Element{
		BigIntToElement(big.NewInt(1)),
		BigIntToElement(big.NewInt(10)),
		BigIntToElement(big.NewInt(11)),
		BigIntToElement(big.NewInt(20)),
		BigIntToElement(big.NewInt(21)),
	}

	assignment, err := newFullAssignment(full, 2)
	require.NoError(t, err)
	require.Len(t, assignment.Public, 2)
	require.Len(t, assignment.Secret, 2)
	require.Equal(t, elementToVariable(full[1]), assignment.Public[0])
	require.Equal(t, elementToVariable(full[2]), assignment.Public[1])
	require.Equal(t, elementToVariable(full[3]), assignment.Secret[0])
	require.Equal(t, elementToVariable(full[4]), assignment.Secret[1])
}

func TestNewFullAssignmentRejectsTooFewWires(t *testing.T) {
	full := []Element{BigIntToElement(big.NewInt(1)), BigIntToElement(big.NewInt(10))}
	_, err := newFullAssignment(full, 6)
	require.ErrorIs(t, err, ErrWitness)
}
