package rln

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
)

// VerifyingKey is the Groth16 verifying key for a deployed circuit,
// loaded once and shared read-only across verification calls (§5).
type VerifyingKey = groth16.VerifyingKey

// PreparedVerifyingKey wraps a VerifyingKey for reuse across Verify
// calls. This wrapper exists so callers have a single long-lived handle
// to pass around instead of threading VerifyingKey everywhere, matching
// §4.5's "MAY precompute... from the verifying key".
type PreparedVerifyingKey struct {
	vk VerifyingKey
}

// PrepareVerifyingKey wraps vk for repeated verification.
func PrepareVerifyingKey(vk VerifyingKey) (*PreparedVerifyingKey, error) {
	if vk == nil {
		return nil, fmt.Errorf("%w: nil verifying key", ErrCircuitKey)
	}
	return &PreparedVerifyingKey{vk: vk}, nil
}

// publicInputs lays out RLNProofValues in the exact order the circuit's
// public wires expect, per §4.5: [y, root, nullifier, x, epoch,
// rln_identifier]. This order is independent of RLNProofValues' own
// field order and of the wire encoding used by SerializeProofValues —
// neither of those is the circuit's public-input order.
func publicInputs(values RLNProofValues) []Element {
	return []Element{
		values.Y,
		values.Root,
		values.Nullifier,
		values.X,
		values.Epoch,
		values.RLNIdentifier,
	}
}

// Verify implements §4.5: check proof against the six RLN-native public
// inputs under pvk. A clean pairing-check failure returns (false, nil).
// A public-input count that does not match the verifying key, or a public
// witness that cannot be built, returns a non-nil error instead (§7). A
// malformed proof or key that groth16.Verify itself rejects is not told
// apart from a failed check: it also returns (false, nil).
func Verify(pvk *PreparedVerifyingKey, proof *Proof, values RLNProofValues) (bool, error) {
	return verifyElements(pvk, proof, publicInputs(values))
}

// verifyElements runs Groth16 verification against an already-ordered
// public-input vector, building the public-only witness the same way
// frontend.NewWitness(&assignment, ecc.BN254.ScalarField(),
// frontend.PublicOnly()) is used elsewhere in the pack. Shared by Verify
// and VerifySemaphore, which differ only in how many public inputs there
// are and their circuit, not in how a pairing-check failure is
// distinguished from a structural error.
//
// gnark's groth16.Verify exposes no exported sentinel a rejected-but-
// well-formed proof returns: the curve-specific backend's pairing-check
// and subgroup-check failures are both unexported errors, and the only
// exported one (witness.ErrInvalidWitness) fires on an internal
// vector-type mismatch that can't happen once frontend.NewWitness has
// already built the witness for this curve. So the structural/malformed
// split of §7 is drawn before the verification call: a public-input
// count that differs from the key's, or a failure to build the public
// witness, is ErrSynthesis, and any error groth16.Verify itself returns —
// on an already well-formed witness — is the proof cleanly failing to
// check out, i.e. (false, nil).
func verifyElements(pvk *PreparedVerifyingKey, proof *Proof, inputs []Element) (bool, error) {
	if n := pvk.vk.NbPublicWitness(); n != len(inputs) {
		return false, fmt.Errorf("%w: verifying key expects %d public inputs, got %d", ErrSynthesis, n, len(inputs))
	}

	public := make([]frontend.Variable, len(inputs))
	for i, in := range inputs {
		public[i] = elementToVariable(in)
	}
	assignment := &fullAssignment{Public: public}

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	if err := groth16.Verify(proof.inner, pvk.vk, w); err != nil {
		return false, nil
	}
	return true, nil
}
