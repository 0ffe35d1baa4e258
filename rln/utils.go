package rln

import (
	"encoding/hex"
	"math/big"
)

// Bytes32 right-aligns b into a 32-byte array, matching the teacher's
// zero-padding convention for short big.Int byte slices.
func Bytes32(b []byte) [32]byte {
	var result [32]byte
	copy(result[32-len(b):], b)
	return result
}

// Bytes128 is the 128-byte counterpart of Bytes32, used for raw Groth16
// proof buffers.
func Bytes128(b []byte) [128]byte {
	var result [128]byte
	copy(result[128-len(b):], b)
	return result
}

// Flatten concatenates a slice of 32-byte field elements into one buffer,
// tree order preserved.
func Flatten(b []MerkleNode) []byte {
	result := make([]byte, 0, 32*len(b))
	for _, v := range b {
		result = append(result, v[:]...)
	}
	return result
}

// ToBytes32LE decodes a big-endian hex string into a little-endian 32-byte
// array, the convention used by the circuit artifacts and by circom JSON
// interop (§6).
func ToBytes32LE(hexStr string) ([32]byte, error) {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return [32]byte{}, err
	}
	return BigIntToBytes32(new(big.Int).SetBytes(b)), nil
}

// reverseBytes reverses a byte slice in place and returns it, converting
// between big-endian (math/big, hex) and little-endian (wire) orderings.
func reverseBytes(b []byte) []byte {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// BigIntToBytes32 takes a *big.Int (big-endian, as math/big represents it)
// and converts it into a little-endian 32-byte array, zero-padded on the
// high end.
func BigIntToBytes32(value *big.Int) [32]byte {
	b := reverseBytes(value.Bytes())
	tmp := make([]byte, 32)
	copy(tmp[0:len(b)], b)
	return Bytes32(tmp)
}

// Bytes32ToBigInt takes a little-endian 32-byte array and returns the
// big-endian *big.Int it encodes.
func Bytes32ToBigInt(value [32]byte) *big.Int {
	b := reverseBytes(append([]byte(nil), value[:]...))
	result := new(big.Int)
	result.SetBytes(b)
	return result
}
