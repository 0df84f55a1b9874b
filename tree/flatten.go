package tree

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrStructureMismatch is returned when two trees expected to be isomorphic
// differ in keys, arity, or node kind at some position.
var ErrStructureMismatch = errors.New("structure mismatch")

// Flatten returns the tree's leaves in canonical depth-first order: mapping
// keys in insertion order, pair nodes first element then second, sequences
// by position. It is a pure function of its input; flattening the same tree
// twice yields the same order.
func Flatten(t *Tree) []*Leaf {
	var out []*Leaf

	var walk func(n *Tree)
	walk = func(n *Tree) {
		switch n.kind {
		case KindLeaf:
			out = append(out, n.leaf)
		case KindMapping:
			for _, key := range n.keys {
				walk(n.kids[key])
			}
		default: // pair, sequence
			for _, e := range n.elems {
				walk(e)
			}
		}
	}

	walk(t)

	return out
}

// AssertSameStructure verifies that two trees are structurally isomorphic:
// the same node kind at every position, the same key set at every mapping
// level, the same arity at every pair or sequence. Leaf classes are not
// compared; a slot tree and a value tree with matching shape are isomorphic.
// Returns ErrStructureMismatch naming the first offending path.
func AssertSameStructure(a, b *Tree) error {
	return sameStructure(a, b, "$")
}

func sameStructure(a, b *Tree, path string) error {
	if a.kind != b.kind {
		return fmt.Errorf("%s: %s vs %s: %w", path, a.kind, b.kind, ErrStructureMismatch)
	}

	switch a.kind {
	case KindLeaf:
		return nil

	case KindMapping:
		for _, key := range a.keys {
			sub, ok := b.kids[key]
			if !ok {
				return fmt.Errorf("%s: key %q missing from second tree: %w", path, key, ErrStructureMismatch)
			}

			if err := sameStructure(a.kids[key], sub, path+"."+key); err != nil {
				return err
			}
		}

		for _, key := range b.keys {
			if _, ok := a.kids[key]; !ok {
				return fmt.Errorf("%s: key %q missing from first tree: %w", path, key, ErrStructureMismatch)
			}
		}

		return nil

	default: // pair, sequence
		if len(a.elems) != len(b.elems) {
			return fmt.Errorf("%s: arity %d vs %d: %w", path, len(a.elems), len(b.elems), ErrStructureMismatch)
		}

		for i := range a.elems {
			if err := sameStructure(a.elems[i], b.elems[i], path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}

		return nil
	}
}
