package rln

import "fmt"

// RecomputeRoot implements §4.2: given a leaf and a sibling/index-bit
// Merkle path (ordered leaf-to-root), recompute the root. hashLeaf
// selects whether the leaf itself is first passed through Poseidon(leaf)
// (required for RLN, see §4.3) or used directly.
//
// pathIndex[i] == 0 means the sibling at level i is the right node (acc
// becomes the left operand); 1 means the sibling is the left node.
func RecomputeRoot(leaf Element, siblings []Element, pathIndex []uint8, hashLeaf bool) (Element, error) {
	if len(siblings) != len(pathIndex) {
		return Element{}, fmt.Errorf("rln: merkle path length mismatch: %d siblings, %d index bits", len(siblings), len(pathIndex))
	}

	acc := leaf
	if hashLeaf {
		h, err := Poseidon1(&leaf)
		if err != nil {
			return Element{}, err
		}
		acc = h
	}

	for i, bit := range pathIndex {
		sibling := siblings[i]
		var next Element
		var err error
		switch bit {
		case 0:
			next, err = Poseidon2(&acc, &sibling)
		case 1:
			next, err = Poseidon2(&sibling, &acc)
		default:
			return Element{}, fmt.Errorf("rln: invalid path index bit %d at level %d, must be 0 or 1", bit, i)
		}
		if err != nil {
			return Element{}, err
		}
		acc = next
	}

	return acc, nil
}
