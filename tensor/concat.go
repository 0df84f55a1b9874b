package tensor

import "fmt"

// Concat concatenates the given arrays along axis 0. All inputs must have
// rank >= 1 and identical trailing dimensions; the result's leading dimension
// is the sum of the inputs' leading dimensions.
func Concat(arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("concat of zero arrays: %w", ErrShapeIncompatible)
	}

	first := arrays[0]
	if first.Rank() == 0 {
		return nil, fmt.Errorf("cannot concat rank-0 arrays: %w", ErrShapeIncompatible)
	}

	lead := 0
	total := 0

	for _, a := range arrays {
		if !sameTrailing(first.shape, a.shape) {
			return nil, fmt.Errorf("concat %v with %v: %w", first.shape, a.shape, ErrShapeIncompatible)
		}

		lead += a.shape[0]
		total += len(a.data)
	}

	shape := make([]int, len(first.shape))
	copy(shape, first.shape)
	shape[0] = lead

	data := make([]float32, 0, total)
	for _, a := range arrays {
		data = append(data, a.data...)
	}

	return &Array{shape: shape, data: data}, nil
}

// sameTrailing reports whether two shapes agree on every dimension past the
// leading one (and have equal rank).
func sameTrailing(x, y []int) bool {
	if len(x) != len(y) || len(y) == 0 {
		return false
	}

	for i := 1; i < len(x); i++ {
		if x[i] != y[i] {
			return false
		}
	}

	return true
}
