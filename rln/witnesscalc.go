package rln

import (
	"fmt"
	"math/big"
)

// Input names of the named map a witness calculator consumes, per §4.4's
// table. Declared as constants so callers building their own calculator
// adapter can depend on the literal names rather than repeating strings.
const (
	InputIdentitySecret    = "identity_secret"
	InputPathElements      = "path_elements"
	InputIdentityPathIndex = "identity_path_index"
	InputX                 = "x"
	InputEpoch             = "epoch"
	InputRLNIdentifier     = "rln_identifier"
)

// WitnessCalculator is the external collaborator of §4.4 and §6: a
// compiled circuit artifact that accepts the named input map and returns
// the full R1CS assignment as signed big integers. Implementations may
// hold mutable state (e.g. a WASM instance) and are not assumed to be
// reentrant — callers must serialize concurrent calls against the same
// instance (§5).
type WitnessCalculator interface {
	// Calculate returns the full assignment in R1CS variable order:
	// typically [1, public inputs..., private inputs...], as signed
	// big.Int values the circuit compiler may have emitted negative.
	Calculate(inputs map[string][]*big.Int) ([]*big.Int, error)
}

// BuildInputMap converts an RLNWitness into the named input map of §4.4.
// Values are passed as arbitrary-precision non-negative integers in
// [0, p); the witness calculator is responsible for any further field
// reduction on its side.
func BuildInputMap(w RLNWitness) (map[string][]*big.Int, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	pathElements := make([]*big.Int, len(w.PathElements))
	for i := range w.PathElements {
		pathElements[i] = ElementToBigInt(&w.PathElements[i])
	}

	pathIndex := make([]*big.Int, len(w.PathIndex))
	for i, bit := range w.PathIndex {
		pathIndex[i] = big.NewInt(int64(bit))
	}

	identitySecret := w.IdentitySecret
	x := w.X
	epoch := w.Epoch
	rlnIdentifier := w.RLNIdentifier

	return map[string][]*big.Int{
		InputIdentitySecret:    {ElementToBigInt(&identitySecret)},
		InputPathElements:      pathElements,
		InputIdentityPathIndex: pathIndex,
		InputX:                 {ElementToBigInt(&x)},
		InputEpoch:             {ElementToBigInt(&epoch)},
		InputRLNIdentifier:     {ElementToBigInt(&rlnIdentifier)},
	}, nil
}

// CalculateWitness runs the witness calculator on w and returns the full
// assignment. Distinct calculator failures (rejected circuit inputs) are
// reported as ErrWitness, per §4.4 and §7.
func CalculateWitness(calc WitnessCalculator, w RLNWitness) ([]*big.Int, error) {
	inputs, err := BuildInputMap(w)
	if err != nil {
		return nil, err
	}
	assignment, err := calc.Calculate(inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWitness, err)
	}
	return assignment, nil
}

// FullAssignmentToField converts a witness calculator's signed full
// assignment into field elements, applying the §9 convention that -k maps
// to p-(k mod p) without truncation or saturation.
func FullAssignmentToField(assignment []*big.Int) []Element {
	out := make([]Element, len(assignment))
	for i, v := range assignment {
		out[i] = BigIntToElement(v)
	}
	return out
}

// elementsToBigInts and bitsToBigInts build vector entries of a named
// input map. They are used by the Semaphore-compatible prover, which has
// its own input map shape; BuildInputMap builds its own vectors inline.
func elementsToBigInts(elems []Element) []*big.Int {
	out := make([]*big.Int, len(elems))
	for i := range elems {
		out[i] = ElementToBigInt(&elems[i])
	}
	return out
}

func bitsToBigInts(bits []uint8) []*big.Int {
	out := make([]*big.Int, len(bits))
	for i, b := range bits {
		out[i] = big.NewInt(int64(b))
	}
	return out
}
