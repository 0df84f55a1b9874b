package tensor

import (
	"fmt"
	"reflect"
)

// AsArray converts a nested Go value into an Array. Scalars become rank-0
// arrays; slices (of scalars, of slices, or of any) become higher-rank
// arrays, and must be rectangular. Bool values convert to 0 or 1.
func AsArray(v any) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}

	shape, data, err := convert(v)
	if err != nil {
		return nil, err
	}

	return &Array{shape: shape, data: data}, nil
}

func convert(v any) ([]int, []float32, error) {
	if f, ok := toFloat(v); ok {
		return nil, []float32{f}, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil, fmt.Errorf("cannot convert %T to an array: %w", v, ErrShapeIncompatible)
	}

	n := rv.Len()
	if n == 0 {
		return []int{0}, nil, nil
	}

	elemShape, data, err := convert(rv.Index(0).Interface())
	if err != nil {
		return nil, nil, err
	}

	for i := 1; i < n; i++ {
		s, d, err := convert(rv.Index(i).Interface())
		if err != nil {
			return nil, nil, err
		}

		if !equalDims(s, elemShape) {
			return nil, nil, fmt.Errorf("ragged input: element 0 has shape %v, element %d has shape %v: %w",
				elemShape, i, s, ErrShapeIncompatible)
		}

		data = append(data, d...)
	}

	shape := make([]int, 0, len(elemShape)+1)
	shape = append(shape, n)
	shape = append(shape, elemShape...)

	return shape, data, nil
}

func toFloat(v any) (float32, bool) {
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		return float32(x), true
	case int:
		return float32(x), true
	case int32:
		return float32(x), true
	case int64:
		return float32(x), true
	case bool:
		if x {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func equalDims(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}

	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}

	return true
}
