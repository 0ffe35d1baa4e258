package rln

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a BN254 scalar field element. It is a thin alias over
// gnark-crypto's fr.Element, which already stores values in Montgomery
// form and reduces on every Set*/arithmetic call.
type Element = fr.Element

// FrModulus is the BN254 scalar field prime p, exposed for callers that
// need to reason about field size (e.g. the negative-integer convention
// in §9).
func FrModulus() *big.Int {
	return fr.Modulus()
}

// EncodeElement returns the canonical 32-byte little-endian encoding of e.
func EncodeElement(e *Element) [32]byte {
	b := e.Bytes() // big-endian, canonical
	return Bytes32(reverseBytes(b[:]))
}

// DecodeElement reduces a 32-byte little-endian buffer modulo p. Canonical
// reduction is not required of the input, matching §3's decoder contract.
func DecodeElement(b [32]byte) Element {
	var e Element
	be := reverseBytes(append([]byte(nil), b[:]...))
	e.SetBytes(be)
	return e
}

// BigIntToElement reduces a signed *big.Int modulo p, mapping -k to p-(k
// mod p) per §9's signed-to-field convention. It never truncates or
// saturates.
func BigIntToElement(v *big.Int) Element {
	var e Element
	if v.Sign() < 0 {
		abs := new(big.Int).Abs(v)
		abs.Mod(abs, FrModulus())
		if abs.Sign() == 0 {
			e.SetZero()
			return e
		}
		p := FrModulus()
		diff := new(big.Int).Sub(p, abs)
		e.SetBigInt(diff)
		return e
	}
	e.SetBigInt(v)
	return e
}

// ElementToBigInt returns the canonical non-negative representative of e
// in [0, p).
func ElementToBigInt(e *Element) *big.Int {
	var v big.Int
	e.BigInt(&v)
	return &v
}

// appendLength returns the length-prefixed encoding [len<8>|input<var>],
// the length counting bytes, in little-endian, matching §4.7 and the
// teacher's appendLength helper.
func appendLength(input []byte) []byte {
	out := make([]byte, 8+len(input))
	binary.LittleEndian.PutUint64(out, uint64(len(input)))
	copy(out[8:], input)
	return out
}

// appendElementCount prepends a little-endian u64 count of 32-byte field
// elements (not bytes) to a flattened element buffer, per §4.7.
func appendElementCount(flattened []byte) []byte {
	n := len(flattened) / 32
	out := make([]byte, 8+len(flattened))
	binary.LittleEndian.PutUint64(out, uint64(n))
	copy(out[8:], flattened)
	return out
}

// readUint64LE reads a little-endian u64 count prefix, returning an error
// if fewer than 8 bytes remain.
func readUint64LE(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes for length prefix, have %d", ErrCodec, len(b))
	}
	return binary.LittleEndian.Uint64(b[:8]), nil
}
