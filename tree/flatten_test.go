package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfeed/tensor"
	"nestfeed/tree"
)

func sample() *tree.Tree {
	return tree.Mapping(
		tree.E("x", tree.ScalarLeaf(1)),
		tree.E("state", tree.Pair(
			tree.ScalarLeaf("c"),
			tree.ScalarLeaf("h"),
		)),
		tree.E("y", tree.Seq(
			tree.ScalarLeaf(2),
			tree.ScalarLeaf(3),
		)),
	)
}

func TestFlattenOrder(t *testing.T) {
	leaves := tree.Flatten(sample())
	require.Len(t, leaves, 5)

	var got []any
	for _, l := range leaves {
		got = append(got, l.Value())
	}

	// Insertion order for keys, first-then-second for pairs, positional
	// for sequences.
	assert.Equal(t, []any{1, "c", "h", 2, 3}, got)
}

func TestFlattenIsDeterministic(t *testing.T) {
	a := sample()

	first := tree.Flatten(a)
	second := tree.Flatten(a)
	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestFlattenPairsByPosition(t *testing.T) {
	a := tree.Mapping(
		tree.E("x", tree.ScalarLeaf(1)),
		tree.E("y", tree.ScalarLeaf(2)),
	)
	b := tree.Mapping(
		tree.E("x", tree.ScalarLeaf(10)),
		tree.E("y", tree.ScalarLeaf(20)),
	)

	av := tree.Flatten(a)
	bv := tree.Flatten(b)
	require.Len(t, bv, len(av))

	assert.Equal(t, 1, av[0].Value())
	assert.Equal(t, 10, bv[0].Value())
	assert.Equal(t, 2, av[1].Value())
	assert.Equal(t, 20, bv[1].Value())
}

func TestAssertSameStructure(t *testing.T) {
	slots := tree.Mapping(
		tree.E("obs", tree.SlotLeaf(tree.NewPlaceholder("obs_pl", []int{tensor.DimUnbound, 4}))),
		tree.E("state", tree.Pair(
			tree.SlotLeaf(tree.NewPlaceholder("c_pl", []int{tensor.DimUnbound, 8})),
			tree.SlotLeaf(tree.NewPlaceholder("h_pl", []int{tensor.DimUnbound, 8})),
		)),
	)
	values := tree.Mapping(
		tree.E("obs", tree.ArrayLeaf(tensor.Zeros(1, 4))),
		tree.E("state", tree.Pair(
			tree.ArrayLeaf(tensor.Zeros(1, 8)),
			tree.ArrayLeaf(tensor.Zeros(1, 8)),
		)),
	)

	// Leaf classes differ; structure does not.
	assert.NoError(t, tree.AssertSameStructure(slots, values))
}

func TestAssertSameStructureMismatches(t *testing.T) {
	leaf := func() *tree.Tree { return tree.ScalarLeaf(0) }

	tests := []struct {
		name string
		a, b *tree.Tree
	}{
		{
			name: "missing key in second",
			a:    tree.Mapping(tree.E("x", leaf()), tree.E("y", leaf())),
			b:    tree.Mapping(tree.E("x", leaf())),
		},
		{
			name: "extra key in second",
			a:    tree.Mapping(tree.E("x", leaf())),
			b:    tree.Mapping(tree.E("x", leaf()), tree.E("y", leaf())),
		},
		{
			name: "kind mismatch",
			a:    tree.Mapping(tree.E("x", leaf())),
			b:    tree.Seq(leaf()),
		},
		{
			name: "arity mismatch",
			a:    tree.Seq(leaf(), leaf()),
			b:    tree.Seq(leaf()),
		},
		{
			name: "nested kind mismatch",
			a:    tree.Mapping(tree.E("s", tree.Pair(leaf(), leaf()))),
			b:    tree.Mapping(tree.E("s", leaf())),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tree.AssertSameStructure(tc.a, tc.b)
			assert.ErrorIs(t, err, tree.ErrStructureMismatch)
		})
	}
}

func TestSetKeepsPositionOnReplace(t *testing.T) {
	m := tree.Mapping(
		tree.E("a", tree.ScalarLeaf(1)),
		tree.E("b", tree.ScalarLeaf(2)),
	)
	m.Set("a", tree.ScalarLeaf(3))

	assert.Equal(t, []string{"a", "b"}, m.Keys())

	child, ok := m.Child("a")
	require.True(t, ok)
	assert.Equal(t, 3, child.Leaf().Value())
}
