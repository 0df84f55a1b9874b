// Package inspect prints the structure of a tree for debugging model builds
// and rollout batches. It makes no contract beyond not failing and not
// mutating well-formed input.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"nestfeed/tree"
)

var dumper = &spew.ConfigState{Indent: " ", SortKeys: true}

// Show writes an indented structural listing of the tree: keys for mapping
// nodes, kind and arity for pair and sequence nodes, shape for shape-bearing
// leaves, and a spew dump for opaque scalar leaves.
func Show(w io.Writer, t *tree.Tree) {
	show(w, t, 0)
}

// String returns the Show listing as a string.
func String(t *tree.Tree) string {
	var sb strings.Builder
	Show(&sb, t)

	return sb.String()
}

func show(w io.Writer, t *tree.Tree, depth int) {
	pad := strings.Repeat("  ", depth)

	switch t.Kind() {
	case tree.KindLeaf:
		l := t.Leaf()

		if shape, ok := l.Shape(); ok {
			if slot := l.Slot(); slot != nil {
				fmt.Fprintf(w, "%sslot %s shape: %v\n", pad, slot.Name(), shape)
			} else {
				fmt.Fprintf(w, "%sshape: %v\n", pad, shape)
			}
		} else {
			fmt.Fprintf(w, "%svalue: %s", pad, dumper.Sdump(l.Value()))
		}

	case tree.KindMapping:
		for _, key := range t.Keys() {
			fmt.Fprintf(w, "%s%s:\n", pad, key)

			child, _ := t.Child(key)
			show(w, child, depth+1)
		}

	default: // pair, sequence
		fmt.Fprintf(w, "%s%s/%d:\n", pad, t.Kind(), t.Len())

		for i := 0; i < t.Len(); i++ {
			show(w, t.At(i), depth+1)
		}
	}
}
