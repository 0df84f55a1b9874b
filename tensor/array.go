package tensor

import (
	"errors"
	"fmt"
)

// DimUnbound marks a dimension whose size is not fixed until evaluation time,
// e.g. the batch dimension of a placeholder.
const DimUnbound = -1

// ErrShapeIncompatible is returned when leaf-level shapes cannot be combined,
// such as concatenating arrays with differing trailing dimensions.
var ErrShapeIncompatible = errors.New("incompatible shapes")

// Array is a dense numeric array: a shape and a flat float32 buffer in
// row-major order. A zero-rank shape holds a single scalar element.
// The optional name mirrors how graph tensors carry operation names; it is
// only consulted when deriving placeholder identifiers from state templates.
type Array struct {
	shape []int
	data  []float32
	name  string
}

// New creates an Array with the given shape and data. The data length must
// equal the product of the dimensions.
func New(shape []int, data []float32) (*Array, error) {
	n := numel(shape)
	if n != len(data) {
		return nil, fmt.Errorf("shape %v wants %d elements, got %d: %w", shape, n, len(data), ErrShapeIncompatible)
	}

	return &Array{shape: cloneDims(shape), data: data}, nil
}

// Zeros creates a zero-filled Array of the given shape.
func Zeros(shape ...int) *Array {
	return &Array{shape: cloneDims(shape), data: make([]float32, numel(shape))}
}

// Scalar creates a rank-0 Array holding a single value.
func Scalar(v float32) *Array {
	return &Array{data: []float32{v}}
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int {
	return cloneDims(a.shape)
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Data returns the backing buffer. Callers must not resize it.
func (a *Array) Data() []float32 {
	return a.data
}

// Name returns the array's assigned name, or empty if unnamed.
func (a *Array) Name() string {
	return a.name
}

// WithName returns a copy of the array carrying the given name. The data
// buffer is shared.
func (a *Array) WithName(name string) *Array {
	return &Array{shape: a.shape, data: a.data, name: name}
}

// Expand0 returns a view of the array with a new leading dimension of
// size 1. The data buffer is shared with the receiver.
func (a *Array) Expand0() *Array {
	shape := make([]int, 0, len(a.shape)+1)
	shape = append(shape, 1)
	shape = append(shape, a.shape...)

	return &Array{shape: shape, data: a.data, name: a.name}
}

// At returns the element at the given flat index.
func (a *Array) At(i int) float32 {
	return a.data[i]
}

func (a *Array) String() string {
	return fmt.Sprintf("Array%v", a.shape)
}

func numel(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

func cloneDims(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}

	out := make([]int, len(shape))
	copy(out, shape)

	return out
}
