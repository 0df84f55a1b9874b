package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Column collects the pick projection of every element, in order.
func Column[S ~[]E, E, R any](s S, pick func(E) R) []R {
	out := make([]R, len(s))
	for i, e := range s {
		out[i] = pick(e)
	}

	return out
}
