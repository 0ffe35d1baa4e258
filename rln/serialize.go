package rln

import (
	"encoding/binary"
	"fmt"
)

// Wire byte widths, per §4.7.
const (
	elementSize   = 32
	proofSize     = 128
	u64Size       = 8
	proofValuesSize = 6 * elementSize
)

// ValidateRLNIdentifier enforces the §9 Open Question's recommendation
// (a): reject a deserialized rln_identifier that does not match the
// library-wide constant, rather than silently accepting a foreign scope.
func ValidateRLNIdentifier(got Element) error {
	want := DecodeElement(RLN_IDENTIFIER)
	if !got.Equal(&want) {
		return fmt.Errorf("%w: rln_identifier does not match the configured library constant", ErrCodec)
	}
	return nil
}

// SerializeWitness encodes w per §4.7:
//
//	identity_secret (32)
//	path_elements:  u64 count || count*32 bytes
//	path_index:     u64 count || count*1 byte
//	x (32) || epoch (32) || rln_identifier (32)
func SerializeWitness(w RLNWitness) []byte {
	out := make([]byte, 0, elementSize+u64Size+len(w.PathElements)*elementSize+u64Size+len(w.PathIndex)+3*elementSize)

	secret := EncodeElement(&w.IdentitySecret)
	out = append(out, secret[:]...)

	flattened := make([]byte, 0, len(w.PathElements)*elementSize)
	for i := range w.PathElements {
		e := EncodeElement(&w.PathElements[i])
		flattened = append(flattened, e[:]...)
	}
	out = append(out, appendElementCount(flattened)...)

	out = append(out, appendLength(w.PathIndex)...)

	x := EncodeElement(&w.X)
	epoch := EncodeElement(&w.Epoch)
	rlnID := EncodeElement(&w.RLNIdentifier)
	out = append(out, x[:]...)
	out = append(out, epoch[:]...)
	out = append(out, rlnID[:]...)

	return out
}

// DeserializeWitness decodes a standalone witness blob. The entire slice
// must be consumed; trailing bytes are a CodecError (§4.7, §7).
func DeserializeWitness(b []byte) (RLNWitness, error) {
	w, consumed, err := deserializeWitnessPrefix(b)
	if err != nil {
		return RLNWitness{}, err
	}
	if consumed != len(b) {
		return RLNWitness{}, fmt.Errorf("%w: witness decode consumed %d of %d bytes", ErrCodec, consumed, len(b))
	}
	return w, nil
}

func deserializeWitnessPrefix(b []byte) (RLNWitness, int, error) {
	if len(b) < elementSize+u64Size {
		return RLNWitness{}, 0, fmt.Errorf("%w: witness buffer too short: %d bytes", ErrCodec, len(b))
	}
	offset := 0

	secret := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize

	elemCount, err := readUint64LE(b[offset:])
	if err != nil {
		return RLNWitness{}, 0, err
	}
	offset += u64Size

	needed := int(elemCount) * elementSize
	if len(b) < offset+needed+u64Size {
		return RLNWitness{}, 0, fmt.Errorf("%w: witness buffer too short for %d path elements", ErrCodec, elemCount)
	}
	pathElements := make([]Element, elemCount)
	for i := range pathElements {
		pathElements[i] = DecodeElement(Bytes32(b[offset : offset+elementSize]))
		offset += elementSize
	}

	idxCount, err := readUint64LE(b[offset:])
	if err != nil {
		return RLNWitness{}, 0, err
	}
	offset += u64Size

	if len(b) < offset+int(idxCount)+3*elementSize {
		return RLNWitness{}, 0, fmt.Errorf("%w: witness buffer too short for %d path index bytes", ErrCodec, idxCount)
	}
	if idxCount != elemCount {
		return RLNWitness{}, 0, fmt.Errorf("%w: path_elements has %d entries, path_index has %d", ErrCodec, elemCount, idxCount)
	}
	pathIndex := make([]uint8, idxCount)
	copy(pathIndex, b[offset:offset+int(idxCount)])
	offset += int(idxCount)

	x := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	epoch := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	rlnID := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize

	w := RLNWitness{
		IdentitySecret: secret,
		PathElements:   pathElements,
		PathIndex:      pathIndex,
		X:              x,
		Epoch:          epoch,
		RLNIdentifier:  rlnID,
	}
	if err := w.Validate(); err != nil {
		return RLNWitness{}, 0, err
	}
	return w, offset, nil
}

// SerializeProofValues encodes v in the fixed field order of §4.7, which
// differs from RLNProofValues' in-memory field order:
//
//	root (32) || epoch (32) || x (32) || y (32) || nullifier (32) || rln_identifier (32)
func SerializeProofValues(v RLNProofValues) []byte {
	out := make([]byte, 0, proofValuesSize)
	root := EncodeElement(&v.Root)
	epoch := EncodeElement(&v.Epoch)
	x := EncodeElement(&v.X)
	y := EncodeElement(&v.Y)
	nullifier := EncodeElement(&v.Nullifier)
	rlnID := EncodeElement(&v.RLNIdentifier)
	out = append(out, root[:]...)
	out = append(out, epoch[:]...)
	out = append(out, x[:]...)
	out = append(out, y[:]...)
	out = append(out, nullifier[:]...)
	out = append(out, rlnID[:]...)
	return out
}

// DeserializeProofValues decodes the fixed-width proof-values encoding
// from the front of b and returns the number of bytes consumed, so
// callers chaining reads from a larger blob (e.g. the verify-input blob
// of §4.7) know where the next field starts.
func DeserializeProofValues(b []byte) (RLNProofValues, int, error) {
	if len(b) < proofValuesSize {
		return RLNProofValues{}, 0, fmt.Errorf("%w: proof values buffer too short: %d bytes", ErrCodec, len(b))
	}
	offset := 0
	root := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	epoch := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	x := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	y := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	nullifier := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize
	rlnID := DecodeElement(Bytes32(b[offset : offset+elementSize]))
	offset += elementSize

	if err := ValidateRLNIdentifier(rlnID); err != nil {
		return RLNProofValues{}, 0, err
	}

	return RLNProofValues{
		Root:          root,
		Epoch:         epoch,
		X:             x,
		Y:             y,
		Nullifier:     nullifier,
		RLNIdentifier: rlnID,
	}, offset, nil
}

// SerializeProveInput encodes the prove-input blob of §4.7:
//
//	identity_secret (32) || id_index (8, u64 LE) || epoch (32)
//	  || signal_len (8, u64 LE) || signal
func SerializeProveInput(idSecret IDSecretHash, memIndex MembershipIndex, epoch Epoch, signal []byte) []byte {
	out := make([]byte, 0, elementSize+u64Size+elementSize+u64Size+len(signal))
	out = append(out, idSecret[:]...)
	idxBytes := make([]byte, u64Size)
	binary.LittleEndian.PutUint64(idxBytes, uint64(memIndex))
	out = append(out, idxBytes...)
	out = append(out, epoch[:]...)
	out = append(out, appendLength(signal)...)
	return out
}

// DeserializeProveInput decodes a prove-input blob, requiring full
// consumption of b.
func DeserializeProveInput(b []byte) (IDSecretHash, MembershipIndex, Epoch, []byte, error) {
	if len(b) < elementSize+u64Size+elementSize+u64Size {
		return IDSecretHash{}, 0, Epoch{}, nil, fmt.Errorf("%w: prove-input buffer too short: %d bytes", ErrCodec, len(b))
	}
	offset := 0
	idSecret := Bytes32(b[offset : offset+elementSize])
	offset += elementSize

	idx, err := readUint64LE(b[offset:])
	if err != nil {
		return IDSecretHash{}, 0, Epoch{}, nil, err
	}
	offset += u64Size

	epoch := Bytes32(b[offset : offset+elementSize])
	offset += elementSize

	signalLen, err := readUint64LE(b[offset:])
	if err != nil {
		return IDSecretHash{}, 0, Epoch{}, nil, err
	}
	offset += u64Size

	if uint64(len(b)-offset) != signalLen {
		return IDSecretHash{}, 0, Epoch{}, nil, fmt.Errorf("%w: signal length prefix %d does not match remaining %d bytes", ErrCodec, signalLen, len(b)-offset)
	}
	signal := append([]byte(nil), b[offset:]...)

	return idSecret, MembershipIndex(idx), epoch, signal, nil
}

// SerializeVerifyInput encodes the verify-input blob of §4.7:
//
//	proof_data || signal_len (8, u64 LE) || signal
//
// where proof_data is serialize(values) || proof.Bytes().
func SerializeVerifyInput(values RLNProofValues, proof *Proof, signal []byte) []byte {
	out := SerializeProofValues(values)
	proofBytes := proof.Bytes()
	out = append(out, proofBytes[:]...)
	out = append(out, appendLength(signal)...)
	return out
}

// DeserializeVerifyInput decodes a verify-input blob. Per §4.7 the
// verifier may skip the 128-byte proof when it only wants the proof
// values; SkipProofData does exactly that against the raw blob.
func DeserializeVerifyInput(b []byte) (RLNProofValues, *Proof, []byte, error) {
	values, offset, err := DeserializeProofValues(b)
	if err != nil {
		return RLNProofValues{}, nil, nil, err
	}
	if len(b) < offset+proofSize+u64Size {
		return RLNProofValues{}, nil, nil, fmt.Errorf("%w: verify-input buffer too short for proof", ErrCodec)
	}
	proof, err := ProofFromBytes(Bytes128(b[offset : offset+proofSize]))
	if err != nil {
		return RLNProofValues{}, nil, nil, err
	}
	offset += proofSize

	signalLen, err := readUint64LE(b[offset:])
	if err != nil {
		return RLNProofValues{}, nil, nil, err
	}
	offset += u64Size

	if uint64(len(b)-offset) != signalLen {
		return RLNProofValues{}, nil, nil, fmt.Errorf("%w: signal length prefix %d does not match remaining %d bytes", ErrCodec, signalLen, len(b)-offset)
	}
	signal := append([]byte(nil), b[offset:]...)

	return values, proof, signal, nil
}

// SkipProofData decodes only the RLNProofValues prefix of a verify-input
// blob, skipping the trailing 128-byte proof and signal — for callers
// that want just the public values (§4.7).
func SkipProofData(b []byte) (RLNProofValues, error) {
	values, _, err := DeserializeProofValues(b)
	return values, err
}
