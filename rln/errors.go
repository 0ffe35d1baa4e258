package rln

import "errors"

// The five error kinds named in §7. Each is a sentinel that concrete
// failures wrap with %w, so callers can errors.Is against the kind while
// still getting a descriptive message — the idiom the teacher already
// uses for its own errors.New/fmt.Errorf calls.
var (
	// ErrCircuitKey reports failure to read or parse circuit artifacts.
	ErrCircuitKey = errors.New("rln: circuit key error")

	// ErrWitness reports that the witness calculator rejected its inputs
	// (out-of-field value, shape mismatch, circuit-internal assertion).
	ErrWitness = errors.New("rln: witness error")

	// ErrSynthesis reports a structural Groth16 proving or verifying
	// failure, distinct from verification cleanly returning false.
	ErrSynthesis = errors.New("rln: synthesis error")

	// ErrRecovery reports that two shares failed the §4.6 Poseidon check
	// and therefore do not reveal an identity secret.
	ErrRecovery = errors.New("rln: recovery error")

	// ErrCodec reports a serialized input that under-runs the buffer,
	// exceeds it, or carries an inconsistent length prefix.
	ErrCodec = errors.New("rln: codec error")
)
