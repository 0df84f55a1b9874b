package tree

import (
	"fmt"

	"nestfeed/tensor"
)

// Leaf is the terminal payload of a Tree. Its class is fixed at construction
// so traversals never have to probe for capabilities at visit time.
type Leaf struct {
	class LeafClass
	arr   *tensor.Array
	slot  *Placeholder
	val   any
}

// NewArrayLeaf creates a detached array leaf payload, for results that bind
// into a FeedDict without living in a tree.
func NewArrayLeaf(a *tensor.Array) *Leaf {
	return &Leaf{class: LeafArray, arr: a}
}

// Class returns the leaf's construction-time class.
func (l *Leaf) Class() LeafClass {
	return l.class
}

// Array returns the concrete array of a LeafArray leaf, nil otherwise.
func (l *Leaf) Array() *tensor.Array {
	return l.arr
}

// Slot returns the placeholder of a LeafSlot leaf, nil otherwise.
func (l *Leaf) Slot() *Placeholder {
	return l.slot
}

// Value returns the opaque value of a LeafScalar leaf, nil otherwise.
func (l *Leaf) Value() any {
	return l.val
}

// Shape returns the leaf's shape and true for shape-bearing classes
// (arrays and slots), or nil and false for opaque scalars.
func (l *Leaf) Shape() ([]int, bool) {
	switch l.class {
	case LeafArray:
		return l.arr.Shape(), true
	case LeafSlot:
		return l.slot.Shape(), true
	default:
		return nil, false
	}
}

func (l *Leaf) String() string {
	switch l.class {
	case LeafArray:
		return l.arr.String()
	case LeafSlot:
		return l.slot.String()
	default:
		return fmt.Sprintf("%v", l.val)
	}
}

// Placeholder is a named slot awaiting a concrete array at evaluation time.
// Its leading dimension is usually tensor.DimUnbound (the batch dimension).
type Placeholder struct {
	name  string
	shape []int
}

// NewPlaceholder creates a placeholder with the given identifier and shape.
func NewPlaceholder(name string, shape []int) *Placeholder {
	s := make([]int, len(shape))
	copy(s, shape)

	return &Placeholder{name: name, shape: s}
}

// Name returns the placeholder's identifier, unique within its naming scope.
func (p *Placeholder) Name() string {
	return p.name
}

// Shape returns a copy of the placeholder's shape.
func (p *Placeholder) Shape() []int {
	out := make([]int, len(p.shape))
	copy(out, p.shape)

	return out
}

func (p *Placeholder) String() string {
	return fmt.Sprintf("%s%v", p.name, p.shape)
}
