package rln

import (
	"crypto/sha256"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iden3/go-iden3-crypto/poseidon"
)

// Poseidon hashes one or more field elements with the circomlib-compatible
// Poseidon permutation, at whatever arity len(inputs) implies. §4 only
// uses arity 1 and 2, but the underlying library supports any arity.
func Poseidon(inputs ...*Element) (Element, error) {
	args := make([]*big.Int, len(inputs))
	for i, in := range inputs {
		args[i] = ElementToBigInt(in)
	}
	h, err := poseidon.Hash(args)
	if err != nil {
		return Element{}, err
	}
	var out Element
	out.SetBigInt(h)
	return out, nil
}

// Poseidon1 and Poseidon2 are the fixed-arity conveniences §2 calls out
// explicitly (arity 1 and 2 are the only ones the core needs).
func Poseidon1(a *Element) (Element, error) {
	return Poseidon(a)
}

func Poseidon2(a, b *Element) (Element, error) {
	return Poseidon(a, b)
}

// Keccak256 is the standard Ethereum Keccak-256 permutation (not
// NIST SHA3-256), matching zerokit's use of ethers_core::utils::keccak256.
func Keccak256(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(data))
	return out
}

// Sha256 is used only by the seeded identity derivation chain in §4.1.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashToField implements §4.8: reduction modulo p of the 32-byte Keccak
// digest interpreted little-endian. It is the RLN-side signal hasher and
// is deliberately distinct from the Semaphore-compatible HashSignal
// (§9's second Open Question — the two paths must never be unified).
func HashToField(msg []byte) Element {
	digest := Keccak256(msg)
	var e Element
	e.SetBytes(reverseBytes(digest[:]))
	return e
}

// HashSignalSemaphore hashes a signal for the Semaphore-compatible surface
// (§9). It zeroes the top byte of the big-endian Keccak digest before
// reducing mod p — semaphore-rs's hash_signal, adapted from
// original_source/rln/src/protocol.rs. This masking is NOT applied by
// HashToField; the two reduction rules are intentionally different.
func HashSignalSemaphore(signal []byte) Element {
	digest := crypto.Keccak256(signal)
	// Clear the top (first big-endian) byte; the other 31 bytes are kept
	// in place.
	digest[0] = 0
	var e Element
	e.SetBytes(digest)
	return e
}

// HashExternalNullifierSemaphore hashes an external-nullifier byte string
// for the Semaphore-compatible surface, clearing the top four bytes of the
// big-endian Keccak digest before reduction (protocol.rs's
// hash_external_nullifier). This is unrelated to RLN's own external
// nullifier, which is Poseidon(epoch, rln_identifier) — see §4.3.
func HashExternalNullifierSemaphore(nullifier []byte) Element {
	digest := crypto.Keccak256(nullifier)
	for i := 0; i < 4; i++ {
		digest[i] = 0
	}
	var e Element
	e.SetBytes(digest)
	return e
}
