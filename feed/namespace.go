package feed

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNameCollision is returned when two placeholder identifiers derived in
// the same naming scope collapse to the same string (for example a literal
// key "a_b" next to a nested path a.b).
var ErrNameCollision = errors.New("placeholder name collision")

// NewNamespace creates a Namespace seeded with already-taken names.
// A nil seed is treated as a free namespace, meaning all names are available.
func NewNamespace(taken map[string]struct{}) *Namespace {
	return &Namespace{taken: taken}
}

// Namespace tracks the placeholder identifiers allocated during one
// slot-tree construction. Uniqueness within a single build call is enforced
// here; uniqueness across independent build calls remains the caller's
// responsibility.
type Namespace struct {
	taken map[string]struct{}
	last  int
}

// Claim registers a derived identifier, failing if it is already taken.
func (n *Namespace) Claim(name string) error {
	if n.taken == nil {
		n.taken = make(map[string]struct{})
	}

	if _, ok := n.taken[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrNameCollision)
	}

	n.taken[name] = struct{}{}

	return nil
}

// Next allocates the first free generated name with the given stem,
// for template leaves that carry no identifier of their own.
func (n *Namespace) Next(stem string) string {
	if n.taken == nil {
		n.taken = make(map[string]struct{})
	}

	for {
		n.last++
		name := stem + strconv.Itoa(n.last)

		if _, ok := n.taken[name]; !ok {
			n.taken[name] = struct{}{}
			return name
		}
	}
}
