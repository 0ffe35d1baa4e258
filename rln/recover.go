package rln

import "fmt"

// RecoverSecret implements §4.6: given two distinct Shamir shares (x1,y1)
// and (x2,y2) published under the same epoch/rln_identifier, recover the
// line's slope a1 and intercept a0, and confirm a0 is the identity_secret
// behind the shared external nullifier before returning it.
//
// x1 and x2 MUST differ — two shares at the same x carry no information
// about the line's slope, and a zero (x1-x2) has no inverse (the field
// inverse of zero yields zero, which would give a meaningless slope).
func RecoverSecret(x1, y1, x2, y2, epoch, rlnIdentifier Element) (IDSecretHash, error) {
	if x1.Equal(&x2) {
		return IDSecretHash{}, fmt.Errorf("%w: identical x values, cannot recover slope", ErrRecovery)
	}

	// a1 = (y1 - y2) / (x1 - x2)
	var dy, dx, a1 Element
	dy.Sub(&y1, &y2)
	dx.Sub(&x1, &x2)
	dxInv := new(Element).Inverse(&dx)
	a1.Mul(&dy, dxInv)

	// a0 = y1 - x1*a1
	var xa1, a0 Element
	xa1.Mul(&x1, &a1)
	a0.Sub(&y1, &xa1)

	externalNullifier, err := ExternalNullifier(epoch, rlnIdentifier)
	if err != nil {
		return IDSecretHash{}, err
	}

	expectedA1, err := Poseidon2(&a0, &externalNullifier)
	if err != nil {
		return IDSecretHash{}, err
	}
	if !expectedA1.Equal(&a1) {
		return IDSecretHash{}, fmt.Errorf("%w: recovered slope does not match Poseidon(identity_secret, external_nullifier)", ErrRecovery)
	}

	return EncodeElement(&a0), nil
}
