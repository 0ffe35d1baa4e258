package rln

import (
	"fmt"
	"math/big"
)

// SemaphoreWitness is the witness record for the Semaphore-compatible
// surface of §9: four public inputs (root, nullifier_hash, signal_hash,
// external_nullifier) instead of RLN-native's six. It is a genuinely
// separate circuit from RLNWitness and must never share a prover with
// it — see §9's "two partially overlapping protocol surfaces".
type SemaphoreWitness struct {
	IdentityTrapdoor  Element
	IdentityNullifier Element
	PathElements      []Element
	PathIndex         []uint8
	Signal            []byte
	ExternalNullifier []byte
}

// Validate checks the shape invariants shared with RLNWitness.
func (w SemaphoreWitness) Validate() error {
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

// SemaphoreProofValues is the public-input tuple of the Semaphore-
// compatible surface.
type SemaphoreProofValues struct {
	Root              Element
	NullifierHash     Element
	SignalHash        Element
	ExternalNullifier Element
}

// ComputeSemaphoreProofValues derives (root, nullifier_hash, signal_hash,
// external_nullifier) from a SemaphoreWitness. secret_hash and
// commitment follow the same Poseidon(nullifier, trapdoor) /
// Poseidon(secret_hash) rules as the RLN-native path (§4.1, §9); the
// signal and external-nullifier hashing rules differ (HashSignalSemaphore,
// HashExternalNullifierSemaphore), and nullifier_hash is
// Poseidon(external_nullifier, identity_nullifier) — the raw nullifier,
// not secret_hash — per protocol.rs's generate_nullifier_hash.
func ComputeSemaphoreProofValues(w SemaphoreWitness) (SemaphoreProofValues, error) {
	if err := w.Validate(); err != nil {
		return SemaphoreProofValues{}, err
	}

	secretHash, err := Poseidon2(&w.IdentityNullifier, &w.IdentityTrapdoor)
	if err != nil {
		return SemaphoreProofValues{}, err
	}
	commitment, err := Poseidon1(&secretHash)
	if err != nil {
		return SemaphoreProofValues{}, err
	}

	root, err := RecomputeRoot(commitment, w.PathElements, w.PathIndex, false)
	if err != nil {
		return SemaphoreProofValues{}, err
	}

	externalNullifier := HashExternalNullifierSemaphore(w.ExternalNullifier)
	nullifierHash, err := Poseidon2(&externalNullifier, &w.IdentityNullifier)
	if err != nil {
		return SemaphoreProofValues{}, err
	}

	signalHash := HashSignalSemaphore(w.Signal)

	return SemaphoreProofValues{
		Root:              root,
		NullifierHash:     nullifierHash,
		SignalHash:        signalHash,
		ExternalNullifier: externalNullifier,
	}, nil
}

// semaphorePublicInputs lays out SemaphoreProofValues in the circuit's
// expected public-wire order: root, nullifier_hash, signal_hash,
// external_nullifier (§9).
func semaphorePublicInputs(values SemaphoreProofValues) []Element {
	return []Element{
		values.Root,
		values.NullifierHash,
		values.SignalHash,
		values.ExternalNullifier,
	}
}

// SemaphoreProver mirrors Prover for the four-input Semaphore-compatible
// circuit — a distinct deployment, never sharing a ConstraintSystem or
// ProvingKey with the RLN-native Prover.
type SemaphoreProver struct {
	CS ConstraintSystem
	PK ProvingKey
	WC WitnessCalculator
}

// NewSemaphoreProver constructs a SemaphoreProver over an already-loaded
// constraint system, proving key, and witness calculator for the
// Semaphore-compatible circuit.
func NewSemaphoreProver(csys ConstraintSystem, pk ProvingKey, wc WitnessCalculator) *SemaphoreProver {
	return &SemaphoreProver{CS: csys, PK: pk, WC: wc}
}

// Prove runs the Semaphore-compatible witness calculator and proves over
// its full assignment, returning the derived public values alongside.
func (p *SemaphoreProver) Prove(w SemaphoreWitness) (*Proof, SemaphoreProofValues, error) {
	values, err := ComputeSemaphoreProofValues(w)
	if err != nil {
		return nil, SemaphoreProofValues{}, err
	}

	inputs := map[string][]*big.Int{
		"identity_trapdoor":  {ElementToBigInt(&w.IdentityTrapdoor)},
		"identity_nullifier": {ElementToBigInt(&w.IdentityNullifier)},
		"path_elements":      elementsToBigInts(w.PathElements),
		"path_index":         bitsToBigInts(w.PathIndex),
		"signal_hash":        {ElementToBigInt(&values.SignalHash)},
		"external_nullifier": {ElementToBigInt(&values.ExternalNullifier)},
	}
	assignment, err := p.WC.Calculate(inputs)
	if err != nil {
		return nil, SemaphoreProofValues{}, fmt.Errorf("%w: %v", ErrWitness, err)
	}
	fullWitness := FullAssignmentToField(assignment)

	gproof, err := groth16Prove(p.CS, p.PK, fullWitness, semaphoreNumPublicInputs)
	if err != nil {
		return nil, SemaphoreProofValues{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	return &Proof{inner: gproof}, values, nil
}

// VerifySemaphore checks proof against the Semaphore-compatible public
// inputs under pvk, with the same false-vs-error distinction as Verify.
func VerifySemaphore(pvk *PreparedVerifyingKey, proof *Proof, values SemaphoreProofValues) (bool, error) {
	return verifyElements(pvk, proof, semaphorePublicInputs(values))
}
