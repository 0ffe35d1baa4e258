package rln

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// NewIdentity derives a deterministic, Semaphore-compatible Identity from
// a byte seed, per §4.1's "Seeded" derivation:
//
//	h        = SHA-256(seed)
//	trapdoor = SHA-256(hex_lower(h) || "identity_trapdoor")  mod p
//	nullifier = SHA-256(hex_lower(h) || "identity_nullifier") mod p
func NewIdentity(seed []byte) Identity {
	seedHash := Sha256(seed)
	hexSeed := hex.EncodeToString(seedHash[:])

	trapdoorHash := Sha256([]byte(hexSeed + "identity_trapdoor"))
	nullifierHash := Sha256([]byte(hexSeed + "identity_nullifier"))

	var trapdoor, nullifier Element
	// SHA-256 output is interpreted as a positive big-endian integer, then
	// reduced mod p: that's exactly what Element.SetBytes does on a
	// big-endian buffer.
	trapdoor.SetBytes(trapdoorHash[:])
	nullifier.SetBytes(nullifierHash[:])

	return Identity{
		Trapdoor:  EncodeElement(&trapdoor),
		Nullifier: EncodeElement(&nullifier),
	}
}

// NewIdentityFromRNG samples trapdoor and nullifier uniformly in F using a
// ChaCha20 stream keyed by Keccak-256(seed), the deterministic
// "RNG-based" derivation of §4.1. It is compatible with Semaphore because
// it shares the same secret_hash/commitment rule as NewIdentity.
func NewIdentityFromRNG(seed []byte) (Identity, error) {
	key := Keccak256(seed)
	stream, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return Identity{}, err
	}
	return identityFromReader(chachaReader{stream})
}

// GenerateIdentity samples trapdoor and nullifier from the system CSPRNG,
// the non-deterministic variant of RNG-based derivation.
func GenerateIdentity() (Identity, error) {
	return identityFromReader(rand.Reader)
}

func identityFromReader(r io.Reader) (Identity, error) {
	var trapdoorBuf, nullifierBuf [32]byte
	if _, err := io.ReadFull(r, trapdoorBuf[:]); err != nil {
		return Identity{}, fmt.Errorf("rln: sampling trapdoor: %w", err)
	}
	if _, err := io.ReadFull(r, nullifierBuf[:]); err != nil {
		return Identity{}, fmt.Errorf("rln: sampling nullifier: %w", err)
	}

	var trapdoor, nullifier Element
	trapdoor.SetBytes(trapdoorBuf[:])
	nullifier.SetBytes(nullifierBuf[:])

	return Identity{
		Trapdoor:  EncodeElement(&trapdoor),
		Nullifier: EncodeElement(&nullifier),
	}, nil
}

// chachaReader adapts cipher.Stream (ChaCha20's XORKeyStream) into an
// io.Reader by XOR-ing a zero buffer, producing raw keystream bytes.
type chachaReader struct {
	*chacha20.Cipher
}

func (c chachaReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	c.XORKeyStream(p, p)
	return len(p), nil
}

// SecretHash computes Poseidon(nullifier, trapdoor) — argument order
// matters for Semaphore compatibility, see §4.1 and §9.
func (id Identity) SecretHash() (IDSecretHash, error) {
	nullifier := DecodeElement(id.Nullifier)
	trapdoor := DecodeElement(id.Trapdoor)
	h, err := Poseidon2(&nullifier, &trapdoor)
	if err != nil {
		return IDSecretHash{}, err
	}
	return EncodeElement(&h), nil
}

// Commitment computes Poseidon(secret_hash), the value inserted into the
// membership Merkle tree.
func (id Identity) Commitment() (IDCommitment, error) {
	secretHash, err := id.SecretHash()
	if err != nil {
		return IDCommitment{}, err
	}
	e := DecodeElement(secretHash)
	h, err := Poseidon1(&e)
	if err != nil {
		return IDCommitment{}, err
	}
	return EncodeElement(&h), nil
}

// Credential derives the full IdentityCredential (trapdoor, nullifier,
// secret_hash, commitment) from id.
func (id Identity) Credential() (IdentityCredential, error) {
	secretHash, err := id.SecretHash()
	if err != nil {
		return IdentityCredential{}, err
	}
	e := DecodeElement(secretHash)
	commitmentElem, err := Poseidon1(&e)
	if err != nil {
		return IdentityCredential{}, err
	}
	return IdentityCredential{
		IDTrapdoor:   id.Trapdoor,
		IDNullifier:  id.Nullifier,
		IDSecretHash: secretHash,
		IDCommitment: EncodeElement(&commitmentElem),
	}, nil
}

// ReducedKeyGen samples secret_hash directly from the CSPRNG, skipping the
// trapdoor/nullifier split — the "reduced keygen variant" of §4.1.
func ReducedKeyGen() (IDSecretHash, IDCommitment, error) {
	var buf [32]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return IDSecretHash{}, IDCommitment{}, fmt.Errorf("rln: sampling secret_hash: %w", err)
	}
	var secretHash Element
	secretHash.SetBytes(buf[:])
	secretHashEnc := EncodeElement(&secretHash)

	commitment, err := Poseidon1(&secretHash)
	if err != nil {
		return IDSecretHash{}, IDCommitment{}, err
	}
	return secretHashEnc, EncodeElement(&commitment), nil
}
