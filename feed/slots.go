// Package feed builds placeholder slot trees from schemas and zips them with
// concrete value trees into flat feed dictionaries for one evaluation step.
package feed

import (
	"fmt"

	"nestfeed/schema"
	"nestfeed/tensor"
	"nestfeed/tree"
)

// Suffixes appended to derived placeholder identifiers. Pair channels carry
// distinct markers so the two sides of a recurrent state stay apart.
const (
	suffixSlot   = "_pl"
	suffixCell   = "_c" + suffixSlot
	suffixHidden = "_h" + suffixSlot
)

// BuildSlots builds a slot tree isomorphic to the given schema. Every leaf
// becomes a placeholder shaped [batchDim] + leaf dims, identified by the base
// name joined with its key path plus "_pl". Pass tensor.DimUnbound as
// batchDim to leave the batch dimension unfixed.
//
// Identifiers are claimed in a fresh Namespace; two key paths collapsing to
// the same identifier fail with ErrNameCollision instead of silently
// shadowing one another.
func BuildSlots(s *schema.Schema, batchDim int, name string) (*tree.Tree, error) {
	return buildSlots(s, batchDim, name, NewNamespace(nil))
}

func buildSlots(s *schema.Schema, batchDim int, name string, ns *Namespace) (*tree.Tree, error) {
	if s.IsLeaf() {
		id := name + suffixSlot
		if err := ns.Claim(id); err != nil {
			return nil, err
		}

		dims := s.Dims()
		shape := make([]int, 0, len(dims)+1)
		shape = append(shape, batchDim)
		shape = append(shape, dims...)

		return tree.SlotLeaf(tree.NewPlaceholder(id, shape)), nil
	}

	out := tree.Mapping()

	for _, key := range s.Keys() {
		child, _ := s.Child(key)

		sub, err := buildSlots(child, batchDim, name+"_"+key, ns)
		if err != nil {
			return nil, err
		}

		out.Set(key, sub)
	}

	return out, nil
}

// FlatSlots builds a slot tree via BuildSlots and returns its placeholders
// in canonical flatten order. The result is the slot sequence ZipFlat
// expects, typically produced once at model-build time.
func FlatSlots(s *schema.Schema, batchDim int, name string) ([]*tree.Placeholder, error) {
	slots, err := BuildSlots(s, batchDim, name)
	if err != nil {
		return nil, err
	}

	leaves := tree.Flatten(slots)
	out := make([]*tree.Placeholder, len(leaves))

	for i, l := range leaves {
		out[i] = l.Slot()
	}

	return out, nil
}

// RecurrentSlots infers a slot tree from a concrete recurrent-state
// template. Pair nodes yield paired placeholders suffixed "_c_pl" and
// "_h_pl"; plain array leaves yield a single "_h_pl" placeholder. Each
// placeholder's shape drops the template leaf's own leading batch dimension
// and reinstates an unbound one. Sequences of states (multilayer stacks) and
// keyed mappings recurse structurally.
//
// Identifiers derive from each template array's assigned name; unnamed
// arrays draw a generated "state" stem from the call's Namespace. Name
// uniqueness therefore depends on template construction order, which this
// constructor makes explicit by claiming every derived identifier.
func RecurrentSlots(state *tree.Tree) (*tree.Tree, error) {
	return recurrentSlots(state, NewNamespace(nil), suffixHidden)
}

func recurrentSlots(state *tree.Tree, ns *Namespace, suffix string) (*tree.Tree, error) {
	switch state.Kind() {
	case tree.KindLeaf:
		return stateSlot(state.Leaf(), ns, suffix)

	case tree.KindPair:
		c, err := recurrentSlots(state.At(0), ns, suffixCell)
		if err != nil {
			return nil, err
		}

		h, err := recurrentSlots(state.At(1), ns, suffixHidden)
		if err != nil {
			return nil, err
		}

		return tree.Pair(c, h), nil

	case tree.KindMapping:
		out := tree.Mapping()

		for _, key := range state.Keys() {
			child, _ := state.Child(key)

			sub, err := recurrentSlots(child, ns, suffix)
			if err != nil {
				return nil, err
			}

			out.Set(key, sub)
		}

		return out, nil

	default: // sequence: multilayer state stack
		elems := make([]*tree.Tree, state.Len())

		for i := range elems {
			sub, err := recurrentSlots(state.At(i), ns, suffix)
			if err != nil {
				return nil, err
			}

			elems[i] = sub
		}

		return tree.Seq(elems...), nil
	}
}

func stateSlot(l *tree.Leaf, ns *Namespace, suffix string) (*tree.Tree, error) {
	if l.Class() != tree.LeafArray {
		return nil, fmt.Errorf("recurrent state template leaf is %s, want an array: %w",
			l.Class(), tree.ErrStructureMismatch)
	}

	arr := l.Array()

	name := arr.Name()
	if name == "" {
		name = ns.Next("state")
	}

	id := name + suffix
	if err := ns.Claim(id); err != nil {
		return nil, err
	}

	// Drop the template's own batch dimension; the placeholder reinstates
	// an unbound one.
	dims := arr.Shape()
	shape := make([]int, 0, len(dims))
	shape = append(shape, tensor.DimUnbound)

	if len(dims) > 1 {
		shape = append(shape, dims[1:]...)
	}

	return tree.SlotLeaf(tree.NewPlaceholder(id, shape)), nil
}
