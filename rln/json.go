package rln

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// witnessJSON is the circom-tooling-compatible wire shape of §6: every
// numeric value renders as a base-10 decimal string, except epoch, which
// renders as a zero-padded 0x-prefixed 64-hex-digit string.
type witnessJSON struct {
	IdentitySecret    string   `json:"identity_secret"`
	PathElements      []string `json:"path_elements"`
	IdentityPathIndex []string `json:"identity_path_index"`
	X                 string   `json:"x"`
	Epoch             string   `json:"epoch"`
	RLNIdentifier     string   `json:"rln_identifier"`
}

func decimalString(e Element) string {
	return ElementToBigInt(&e).String()
}

func hexEpoch(e Element) string {
	v := ElementToBigInt(&e)
	return fmt.Sprintf("0x%064x", v)
}

func parseDecimal(s string) (Element, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Element{}, fmt.Errorf("%w: %q is not a base-10 integer", ErrCodec, s)
	}
	return BigIntToElement(v), nil
}

func parseHexEpoch(s string) (Element, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	v, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return Element{}, fmt.Errorf("%w: %q is not a hex integer", ErrCodec, s)
	}
	return BigIntToElement(v), nil
}

// MarshalWitnessJSON encodes w as circom-tooling-compatible JSON, per §6.
func MarshalWitnessJSON(w RLNWitness) ([]byte, error) {
	pathElements := make([]string, len(w.PathElements))
	for i := range w.PathElements {
		pathElements[i] = decimalString(w.PathElements[i])
	}
	pathIndex := make([]string, len(w.PathIndex))
	for i, bit := range w.PathIndex {
		pathIndex[i] = strconv.FormatUint(uint64(bit), 10)
	}
	doc := witnessJSON{
		IdentitySecret:    decimalString(w.IdentitySecret),
		PathElements:      pathElements,
		IdentityPathIndex: pathIndex,
		X:                 decimalString(w.X),
		Epoch:             hexEpoch(w.Epoch),
		RLNIdentifier:     decimalString(w.RLNIdentifier),
	}
	return json.Marshal(doc)
}

// UnmarshalWitnessJSON decodes the circom-tooling-compatible JSON shape
// of §6 back into an RLNWitness.
func UnmarshalWitnessJSON(data []byte) (RLNWitness, error) {
	var doc witnessJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return RLNWitness{}, fmt.Errorf("%w: %v", ErrCodec, err)
	}

	identitySecret, err := parseDecimal(doc.IdentitySecret)
	if err != nil {
		return RLNWitness{}, err
	}
	x, err := parseDecimal(doc.X)
	if err != nil {
		return RLNWitness{}, err
	}
	epoch, err := parseHexEpoch(doc.Epoch)
	if err != nil {
		return RLNWitness{}, err
	}
	rlnIdentifier, err := parseDecimal(doc.RLNIdentifier)
	if err != nil {
		return RLNWitness{}, err
	}

	pathElements := make([]Element, len(doc.PathElements))
	for i, s := range doc.PathElements {
		e, err := parseDecimal(s)
		if err != nil {
			return RLNWitness{}, err
		}
		pathElements[i] = e
	}

	pathIndex := make([]uint8, len(doc.IdentityPathIndex))
	for i, s := range doc.IdentityPathIndex {
		v, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return RLNWitness{}, fmt.Errorf("%w: %q is not a base-10 path index", ErrCodec, s)
		}
		pathIndex[i] = uint8(v)
	}

	w := RLNWitness{
		IdentitySecret: identitySecret,
		PathElements:   pathElements,
		PathIndex:      pathIndex,
		X:              x,
		Epoch:          epoch,
		RLNIdentifier:  rlnIdentifier,
	}
	if err := w.Validate(); err != nil {
		return RLNWitness{}, err
	}
	return w, nil
}
