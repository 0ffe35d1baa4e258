package rln

import "fmt"

// RLNWitness is the per-message witness record of §3: the identity
// secret, the Merkle path to its commitment leaf, the signal-derived x,
// and the epoch/rln_identifier that scope the share. It is created per
// message, fed to the prover, and discarded — identity_secret is
// sensitive and must not outlive the proving call.
type RLNWitness struct {
	IdentitySecret Element
	PathElements   []Element
	PathIndex      []uint8
	X              Element
	Epoch          Element
	RLNIdentifier  Element
}

// Validate checks the shape invariants of §3: equal-length path vectors
// and index bits restricted to {0,1}.
func (w RLNWitness) Validate() error {
	if len(w.PathElements) != len(w.PathIndex) {
		return fmt.Errorf("%w: path_elements has %d entries, path_index has %d", ErrWitness, len(w.PathElements), len(w.PathIndex))
	}
	for i, bit := range w.PathIndex {
		if bit != 0 && bit != 1 {
			return fmt.Errorf("%w: path_index[%d] = %d, must be 0 or 1", ErrWitness, i, bit)
		}
	}
	return nil
}

// RLNProofValues is the tuple of public outputs a proof is bound to: the
// Shamir share (x, y), the published nullifier, the recomputed Merkle
// root, and the epoch/rln_identifier the share was computed under.
type RLNProofValues struct {
	Y             Element
	Nullifier     Element
	Root          Element
	X             Element
	Epoch         Element
	RLNIdentifier Element
}

// ComputeProofValues implements §4.3: derive (y, nullifier, root) from a
// witness and re-expose (x, epoch, rln_identifier). This is the Shamir
// share construction — each message publishes (x, y) on the line
// (a0, a1), with the slope a1 pinned to the epoch via the external
// nullifier.
func ComputeProofValues(w RLNWitness) (RLNProofValues, error) {
	if err := w.Validate(); err != nil {
		return RLNProofValues{}, err
	}

	externalNullifier, err := Poseidon2(&w.Epoch, &w.RLNIdentifier)
	if err != nil {
		return RLNProofValues{}, err
	}

	a0 := w.IdentitySecret
	a1, err := Poseidon2(&a0, &externalNullifier)
	if err != nil {
		return RLNProofValues{}, err
	}

	// y = a0 + x * a1, field arithmetic.
	var xa1, y Element
	xa1.Mul(&w.X, &a1)
	y.Add(&a0, &xa1)

	nullifier, err := Poseidon1(&a1)
	if err != nil {
		return RLNProofValues{}, err
	}

	root, err := RecomputeRoot(w.IdentitySecret, w.PathElements, w.PathIndex, true)
	if err != nil {
		return RLNProofValues{}, err
	}

	return RLNProofValues{
		Y:             y,
		Nullifier:     nullifier,
		Root:          root,
		X:             w.X,
		Epoch:         w.Epoch,
		RLNIdentifier: w.RLNIdentifier,
	}, nil
}

// ExternalNullifier recomputes Poseidon(epoch, rln_identifier), the
// line-slope binder used both by proof-values derivation (§4.3) and
// secret recovery (§4.6).
func ExternalNullifier(epoch, rlnIdentifier Element) (Element, error) {
	return Poseidon2(&epoch, &rlnIdentifier)
}
