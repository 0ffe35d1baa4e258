package rln

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

// rlnNumPublicInputs is the width of RLNProofValues' public-input vector
// (§3, publicInputs in verify.go): y, root, nullifier, x, epoch,
// rln_identifier.
const rlnNumPublicInputs = 6

// semaphoreNumPublicInputs is the same count for the Semaphore-compatible
// surface's four-value public tuple (§9): root, nullifier_hash,
// signal_hash, external_nullifier.
const semaphoreNumPublicInputs = 4

// ConstraintSystem is the compiled R1CS of the deployed circuit — an
// external collaborator (§1, §6) produced by an arithmetic-circuit
// compiler. This package only consumes it, the same generic
// constraint.ConstraintSystem interface frontend.Compile returns in the
// pack's gnark circuits.
type ConstraintSystem = constraint.ConstraintSystem

// ProvingKey is the Groth16 proving key for ConstraintSystem, loaded once
// from circuit artifacts and shared read-only across proving calls (§5).
type ProvingKey = groth16.ProvingKey

// Proof is a Groth16 proof over BN254: three group elements (A in G1, B
// in G2, C in G1), 128 bytes in compressed form. It holds the generic
// groth16.Proof interface value groth16.Prove returns; Bytes and
// ProofFromBytes reach the concrete Ar/Bs/Krs fields through the same
// type assertion to the curve-specific groth16/bn254 representation used
// to export proof points for Solidity elsewhere in the pack.
type Proof struct {
	inner groth16.Proof
}

// Bytes returns the 128-byte compressed encoding of the proof: A (32) ||
// B (64) || C (32), matching ZKSNARK's wire width (§3).
func (p *Proof) Bytes() ZKSNARK {
	bn254Proof := p.inner.(*groth16bn254.Proof)
	var out ZKSNARK
	a := bn254Proof.Ar.Bytes()
	b := bn254Proof.Bs.Bytes()
	c := bn254Proof.Krs.Bytes()
	copy(out[0:32], a[:])
	copy(out[32:96], b[:])
	copy(out[96:128], c[:])
	return out
}

// ProofFromBytes parses the 128-byte compressed encoding produced by
// Bytes back into a Proof.
func ProofFromBytes(b ZKSNARK) (*Proof, error) {
	var bn254Proof groth16bn254.Proof
	if _, err := bn254Proof.Ar.SetBytes(b[0:32]); err != nil {
		return nil, fmt.Errorf("%w: proof.A: %v", ErrCodec, err)
	}
	if _, err := bn254Proof.Bs.SetBytes(b[32:96]); err != nil {
		return nil, fmt.Errorf("%w: proof.B: %v", ErrCodec, err)
	}
	if _, err := bn254Proof.Krs.SetBytes(b[96:128]); err != nil {
		return nil, fmt.Errorf("%w: proof.C: %v", ErrCodec, err)
	}
	return &Proof{inner: &bn254Proof}, nil
}

// Prover generates Groth16 proofs for one circuit deployment: a loaded
// proving key and constraint system, plus the witness calculator bridging
// RLNWitness values to the circuit's full assignment. None of the three
// are owned or constructed by this package — they are supplied by the
// embedder from circuit artifacts (§1, §6).
type Prover struct {
	CS ConstraintSystem
	PK ProvingKey
	WC WitnessCalculator
}

// NewProver constructs a Prover over an already-loaded constraint system,
// proving key, and witness calculator.
func NewProver(csys ConstraintSystem, pk ProvingKey, wc WitnessCalculator) *Prover {
	return &Prover{CS: csys, PK: pk, WC: wc}
}

// Prove implements the witness-calculator-bridge-then-Groth16 pipeline of
// §4.4: run the witness calculator to get the full assignment, convert it
// to field elements per §9, and invoke Groth16 proving with fresh
// blinders. It also returns the RLNProofValues derived from w so callers
// do not need to recompute them separately (§4.3's derivation is applied
// to the same witness being proved).
//
// The operation is CPU-bound; callers that want to keep a UI thread free
// should run it on a worker goroutine (§5) — nothing here blocks or
// suspends intrinsically.
func (p *Prover) Prove(w RLNWitness) (*Proof, RLNProofValues, error) {
	values, err := ComputeProofValues(w)
	if err != nil {
		return nil, RLNProofValues{}, err
	}

	assignment, err := CalculateWitness(p.WC, w)
	if err != nil {
		return nil, RLNProofValues{}, err
	}
	fullWitness := FullAssignmentToField(assignment)

	gproof, err := groth16Prove(p.CS, p.PK, fullWitness, rlnNumPublicInputs)
	if err != nil {
		return nil, RLNProofValues{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	return &Proof{inner: gproof}, values, nil
}

// fullAssignment bridges a witness calculator's flat full assignment
// (§4.4) into the struct-of-tagged-variables shape frontend.NewWitness
// expects: the same frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
// call the pack's gnark circuits use, with Public/Secret standing in for
// the circuit-specific field names a caller's own frontend.Circuit would
// otherwise declare. The compiled circuit (ConstraintSystem) is an
// external collaborator whose own Go struct this package never sees
// (§1, §6), so Public/Secret simply carry the already-solved wires of the
// full assignment in their original order, split at nbPublic.
type fullAssignment struct {
	Public []frontend.Variable `gnark:",public"`
	Secret []frontend.Variable `gnark:",secret"`
}

// Define satisfies frontend.Circuit, which frontend.NewWitness requires
// of its assignment argument purely so it can schema.Walk the struct's
// tagged fields — Define itself is never invoked on this path, since the
// constraints were already fixed when ConstraintSystem was compiled by
// the external collaborator that produced it (§1, §6).
func (a *fullAssignment) Define(api frontend.API) error {
	return nil
}

// newFullAssignment splits a full R1CS assignment into the public/secret
// halves fullAssignment carries. Per WitnessCalculator.Calculate's
// [1, public..., private...] convention, wire 0 is the fixed constant 1 that frontend.NewWitness
// supplies implicitly and is not part of the assignment a caller fills in,
// so it is dropped here.
func newFullAssignment(fullWitness []Element, nbPublic int) (*fullAssignment, error) {
	if len(fullWitness) < 1+nbPublic {
		return nil, fmt.Errorf("%w: full assignment has %d wires, need at least %d for %d public inputs", ErrWitness, len(fullWitness), 1+nbPublic, nbPublic)
	}
	wires := fullWitness[1:]

	public := make([]frontend.Variable, nbPublic)
	for i := range public {
		public[i] = elementToVariable(wires[i])
	}
	secret := make([]frontend.Variable, len(wires)-nbPublic)
	for i := range secret {
		secret[i] = elementToVariable(wires[nbPublic+i])
	}
	return &fullAssignment{Public: public, Secret: secret}, nil
}

func elementToVariable(e Element) frontend.Variable {
	return new(big.Int).Set(ElementToBigInt(&e))
}

// groth16Prove runs Groth16 proving over a full assignment already solved
// by a witness calculator, the same split responsibility ark-circom's
// create_proof_with_reduction_and_matrices has between the circom witness
// generator and arkworks' Groth16 backend: csys supplies the R1CS
// matrices (A, B, C), fullWitness supplies every wire value. Shared by
// Prover and SemaphoreProver, which differ only in witness shape and
// public-input count, not in how the resulting assignment is proved.
func groth16Prove(csys ConstraintSystem, pk ProvingKey, fullWitness []Element, nbPublic int) (groth16.Proof, error) {
	assignment, err := newFullAssignment(fullWitness, nbPublic)
	if err != nil {
		return nil, err
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	return groth16.Prove(csys, pk, w)
}
