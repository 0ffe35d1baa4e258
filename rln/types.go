// Package rln implements the core cryptographic primitives of a
// Rate-Limiting Nullifier: identity derivation, the witness/proof-values
// algebra, the Groth16 proving/verification glue, wire serialization, and
// the two-share secret recovery used for slashing.
//
// The Merkle tree storage engine, the compiled R1CS circuit and its
// witness calculator, and any higher-level object wrapping mutable RLN
// state are external collaborators: this package only references them by
// interface (WitnessCalculator, ConstraintSystem, ProvingKey,
// VerifyingKey).
package rln

import (
	"encoding/binary"
	"time"
)

// MerkleNode is one node (or leaf) of the Poseidon-over-BN254 Merkle tree
// that stores identity commitments. It is also the canonical 32-byte
// little-endian encoding of any BN254 scalar field element.
type MerkleNode = [32]byte

// Nullifier is the published per-message value that lets observers detect
// two emissions under the same epoch.
type Nullifier = [32]byte

// RLNIdentifier scopes a deployment; two deployments using different
// identifiers are cryptographically disjoint from one another.
type RLNIdentifier = [32]byte

// ZKSNARK is a Groth16 proof over BN254 in its 128-byte compressed form.
type ZKSNARK = [128]byte

// IDTrapdoor and IDNullifier are the two independent identity-level
// secrets whose Poseidon hash is the identity's secret_hash.
type IDTrapdoor = [32]byte
type IDNullifier = [32]byte

// IDSecretHash is Poseidon(nullifier, trapdoor) — note the argument order,
// which is load-bearing for Semaphore compatibility (see §4.1, §9).
type IDSecretHash = [32]byte

// IDCommitment is Poseidon(secret_hash), the value inserted as a leaf into
// the membership Merkle tree.
type IDCommitment = [32]byte

// Identity holds the two identity-level secrets produced by seeded or
// RNG-based derivation. It is immutable once created.
type Identity struct {
	Trapdoor  IDTrapdoor
	Nullifier IDNullifier
}

// IdentityCredential bundles an Identity with its derived secret_hash and
// commitment, mirroring the shape handed to a membership contract or
// Merkle tree.
type IdentityCredential struct {
	IDTrapdoor   IDTrapdoor   `json:"idTrapdoor"`
	IDNullifier  IDNullifier  `json:"idNullifier"`
	IDSecretHash IDSecretHash `json:"idSecretHash"`
	IDCommitment IDCommitment `json:"idCommitment"`
}

// MembershipIndex is a leaf position in the externally-owned Merkle tree.
type MembershipIndex = uint

// TreeDepth is the depth D of the deployed circuit's Merkle tree.
type TreeDepth = int

// DefaultTreeDepth is the depth used by the reference circuit deployment.
const DefaultTreeDepth TreeDepth = 20

// MerkleProof is the externally-produced membership witness for one leaf:
// siblings and index bits ordered leaf-to-root. It is supplied by the tree
// interface named in §6, never constructed by this package.
type MerkleProof struct {
	PathElements []MerkleNode
	PathIndexes  []uint8
}

// RLN_IDENTIFIER is the library-wide domain-separation constant described
// in §6. Embedders may override it; this value is hash_to_field applied to
// the literal string "rln-identifier", matching the convention (if not the concrete
// byte string) of the teacher's hardcoded RLN_IDENTIFIER.
var RLN_IDENTIFIER RLNIdentifier = func() RLNIdentifier {
	e := HashToField([]byte("rln-identifier"))
	return EncodeElement(&e)
}()

// Epoch is a time-bucket field element supplied by the application; rate
// limiting is scoped per epoch.
type Epoch = [32]byte

// EPOCH_UNIT_SECONDS is the rln-relay epoch length in seconds, carried
// over unchanged from the teacher.
const EPOCH_UNIT_SECONDS = uint64(10)

func BytesToEpoch(b []byte) Epoch {
	var result Epoch
	copy(result[:], b)
	return result
}

func ToEpoch(t uint64) Epoch {
	var result Epoch
	binary.LittleEndian.PutUint64(result[:], t)
	return result
}

func EpochUint64(e Epoch) uint64 {
	return binary.LittleEndian.Uint64(e[:])
}

// CalcEpoch returns the rln Epoch value for a time.Time.
func CalcEpoch(t time.Time) Epoch {
	return ToEpoch(uint64(t.Unix()) / EPOCH_UNIT_SECONDS)
}

// GetCurrentEpoch returns the current rln Epoch.
func GetCurrentEpoch() Epoch {
	return CalcEpoch(time.Now())
}

// EpochDiff returns e1 - e2 measured in epoch units.
func EpochDiff(e1, e2 Epoch) int64 {
	return int64(EpochUint64(e1)) - int64(EpochUint64(e2))
}

func EpochTime(e Epoch) time.Time {
	return time.Unix(int64(EpochUint64(e)*EPOCH_UNIT_SECONDS), 0)
}
