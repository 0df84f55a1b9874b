package tree

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind discriminates the node variants of a Tree. Every traversal in this
// module dispatches on Kind once, in one switch, instead of probing node
// types ad hoc.
type Kind int

const (
	KindUnknown Kind = iota
	KindLeaf
	KindMapping
	KindPair
	KindSequence

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

//go:generate go tool stringer -type=LeafClass -output=leafclass_string.go

// LeafClass records, at construction time, what a leaf holds: a shape-bearing
// array, a placeholder awaiting a value, or an opaque scalar.
type LeafClass int

const (
	LeafUnknown LeafClass = iota
	LeafArray
	LeafSlot
	LeafScalar

	// LeafClassTotal is a constant that represents the total number of classes defined
	LeafClassTotal = int(iota)
)
