package tree

import (
	"nestfeed/tensor"
)

// Tree is a tagged-variant nested structure: a string-keyed mapping, a
// two-element recurrent-state pair, a fixed-arity sequence, or a leaf.
// Mapping children keep their insertion order because flattening order is
// part of the contract.
type Tree struct {
	kind  Kind
	keys  []string
	kids  map[string]*Tree
	elems []*Tree
	leaf  *Leaf
}

// Entry pairs a key with its subtree for ordered Mapping construction.
type Entry struct {
	Key  string
	Node *Tree
}

// E is shorthand for building a mapping Entry.
func E(key string, node *Tree) Entry {
	return Entry{Key: key, Node: node}
}

// Mapping creates a mapping node from the given entries, preserving their
// declared order. A later entry with a repeated key replaces the earlier one
// in place.
func Mapping(entries ...Entry) *Tree {
	t := &Tree{kind: KindMapping, kids: make(map[string]*Tree, len(entries))}
	for _, e := range entries {
		t.Set(e.Key, e.Node)
	}

	return t
}

// Pair creates a recurrent-state node from paired memory channels.
func Pair(first, second *Tree) *Tree {
	return &Tree{kind: KindPair, elems: []*Tree{first, second}}
}

// Seq creates a fixed-arity positional sequence node.
func Seq(elems ...*Tree) *Tree {
	return &Tree{kind: KindSequence, elems: elems}
}

// ArrayLeaf creates a leaf holding a concrete numeric array.
func ArrayLeaf(a *tensor.Array) *Tree {
	return &Tree{kind: KindLeaf, leaf: &Leaf{class: LeafArray, arr: a}}
}

// SlotLeaf creates a leaf holding a placeholder awaiting a bound value.
func SlotLeaf(p *Placeholder) *Tree {
	return &Tree{kind: KindLeaf, leaf: &Leaf{class: LeafSlot, slot: p}}
}

// ScalarLeaf creates a leaf holding an opaque value with no shape.
func ScalarLeaf(v any) *Tree {
	return &Tree{kind: KindLeaf, leaf: &Leaf{class: LeafScalar, val: v}}
}

// Kind returns the node's variant tag.
func (t *Tree) Kind() Kind {
	return t.kind
}

// Set adds or replaces a child of a mapping node. A new key is appended to
// the key order; an existing key keeps its position. Set panics on
// non-mapping nodes, which is a programming error.
func (t *Tree) Set(key string, node *Tree) *Tree {
	if t.kind != KindMapping {
		panic("tree: Set on " + t.kind.String())
	}

	if _, exists := t.kids[key]; !exists {
		t.keys = append(t.keys, key)
	}

	t.kids[key] = node

	return t
}

// Keys returns the mapping keys in insertion order. Nil for other kinds.
func (t *Tree) Keys() []string {
	if len(t.keys) == 0 {
		return nil
	}

	out := make([]string, len(t.keys))
	copy(out, t.keys)

	return out
}

// Child returns the mapping child for key.
func (t *Tree) Child(key string) (*Tree, bool) {
	c, ok := t.kids[key]
	return c, ok
}

// Len returns the arity of a pair or sequence node, zero otherwise.
func (t *Tree) Len() int {
	return len(t.elems)
}

// At returns the i-th element of a pair or sequence node.
func (t *Tree) At(i int) *Tree {
	return t.elems[i]
}

// Leaf returns the node's leaf payload, or nil for interior nodes.
func (t *Tree) Leaf() *Leaf {
	return t.leaf
}
