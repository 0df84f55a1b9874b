package tree

import (
	"fmt"

	"nestfeed/tensor"
)

// AsArrays returns a copy of the tree in which every opaque scalar leaf has
// been converted to a concrete array leaf (nested Go slices become
// higher-rank arrays). Array and slot leaves pass through unchanged. Rollout
// collaborators use this to turn per-step value accumulators into
// concatenation-ready value trees.
func AsArrays(t *Tree) (*Tree, error) {
	return asArrays(t, "$")
}

func asArrays(t *Tree, path string) (*Tree, error) {
	switch t.kind {
	case KindLeaf:
		if t.leaf.class != LeafScalar {
			return t, nil
		}

		arr, err := tensor.AsArray(t.leaf.val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return ArrayLeaf(arr), nil

	case KindMapping:
		out := Mapping()
		for _, key := range t.keys {
			sub, err := asArrays(t.kids[key], path+"."+key)
			if err != nil {
				return nil, err
			}

			out.Set(key, sub)
		}

		return out, nil

	default: // pair, sequence
		elems := make([]*Tree, len(t.elems))
		for i, e := range t.elems {
			sub, err := asArrays(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}

			elems[i] = sub
		}

		if t.kind == KindPair {
			return Pair(elems[0], elems[1]), nil
		}

		return Seq(elems...), nil
	}
}
