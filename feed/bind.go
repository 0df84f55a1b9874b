package feed

import (
	"fmt"

	"nestfeed/tensor"
	"nestfeed/tree"
)

// FeedDict binds placeholders to the concrete leaves feeding one
// evaluation step.
type FeedDict map[*tree.Placeholder]*tree.Leaf

// Bind zips a slot tree with an isomorphic value tree into a FeedDict.
// Structure is verified for the whole pair of trees before any entry is
// bound; a mismatch fails with ErrStructureMismatch and an empty result.
// With expandBatch set, every value gains a synthetic leading batch
// dimension of size 1 (a scalar value becomes a one-element array).
// Neither input tree is mutated.
func Bind(slots, values *tree.Tree, expandBatch bool) (FeedDict, error) {
	if err := tree.AssertSameStructure(slots, values); err != nil {
		return nil, err
	}

	fd := make(FeedDict)
	if err := bindInto(fd, slots, values, expandBatch); err != nil {
		return nil, err
	}

	return fd, nil
}

func bindInto(fd FeedDict, slots, values *tree.Tree, expandBatch bool) error {
	switch slots.Kind() {
	case tree.KindLeaf:
		slot := slots.Leaf().Slot()
		if slot == nil {
			return fmt.Errorf("slot tree leaf is %s, want a placeholder: %w",
				slots.Leaf().Class(), tree.ErrStructureMismatch)
		}

		value := values.Leaf()

		if expandBatch {
			expanded, err := expandLeaf(value)
			if err != nil {
				return err
			}

			value = expanded
		}

		fd[slot] = value

		return nil

	case tree.KindMapping:
		for _, key := range slots.Keys() {
			slotChild, _ := slots.Child(key)
			valueChild, _ := values.Child(key) // presence checked up front

			if err := bindInto(fd, slotChild, valueChild, expandBatch); err != nil {
				return err
			}
		}

		return nil

	default: // pair, sequence: positional
		for i := 0; i < slots.Len(); i++ {
			if err := bindInto(fd, slots.At(i), values.At(i), expandBatch); err != nil {
				return err
			}
		}

		return nil
	}
}

// expandLeaf wraps a value leaf in a leading dimension of size 1. Arrays
// yield an expanded view sharing the original buffer; opaque scalars convert
// to arrays first.
func expandLeaf(l *tree.Leaf) (*tree.Leaf, error) {
	switch l.Class() {
	case tree.LeafArray:
		return tree.NewArrayLeaf(l.Array().Expand0()), nil

	case tree.LeafScalar:
		arr, err := tensor.AsArray(l.Value())
		if err != nil {
			return nil, err
		}

		return tree.NewArrayLeaf(arr.Expand0()), nil

	default:
		return nil, fmt.Errorf("value tree leaf is %s, want an array or scalar: %w",
			l.Class(), tree.ErrStructureMismatch)
	}
}

// ZipFlat pairs a pre-flattened slot sequence with a nested value tree,
// flattening the values in canonical order and binding positionally. The two
// flattenings must have equal length; a mismatch fails with
// ErrStructureMismatch. Used when the slot structure was flattened once at
// model-build time and only the value side varies per call.
func ZipFlat(slots []*tree.Placeholder, values *tree.Tree) (FeedDict, error) {
	leaves := tree.Flatten(values)
	if len(leaves) != len(slots) {
		return nil, fmt.Errorf("%d slots vs %d value leaves: %w",
			len(slots), len(leaves), tree.ErrStructureMismatch)
	}

	fd := make(FeedDict, len(slots))
	for i, slot := range slots {
		fd[slot] = leaves[i]
	}

	return fd, nil
}
