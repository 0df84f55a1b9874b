package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfeed/tensor"
	"nestfeed/tree"
)

func TestAsArraysConvertsScalarLeaves(t *testing.T) {
	in := tree.Mapping(
		tree.E("obs", tree.ScalarLeaf([][]float64{{1, 2}, {3, 4}})),
		tree.E("terminal", tree.ScalarLeaf([]bool{false, true})),
		tree.E("state", tree.Pair(
			tree.ArrayLeaf(tensor.Zeros(2, 8)),
			tree.ScalarLeaf([]float32{1, 2}),
		)),
	)

	out, err := tree.AsArrays(in)
	require.NoError(t, err)
	require.NoError(t, tree.AssertSameStructure(in, out))

	obs, _ := out.Child("obs")
	require.Equal(t, tree.LeafArray, obs.Leaf().Class())
	assert.Equal(t, []int{2, 2}, obs.Leaf().Array().Shape())

	term, _ := out.Child("terminal")
	assert.Equal(t, []float32{0, 1}, term.Leaf().Array().Data())

	state, _ := out.Child("state")
	assert.Equal(t, tree.KindPair, state.Kind())
	assert.Equal(t, []int{2}, state.At(1).Leaf().Array().Shape())

	// Input is untouched.
	origObs, _ := in.Child("obs")
	assert.Equal(t, tree.LeafScalar, origObs.Leaf().Class())
}

func TestAsArraysRaggedInput(t *testing.T) {
	in := tree.Mapping(
		tree.E("obs", tree.ScalarLeaf([]any{[]int{1, 2}, []int{3}})),
	)

	_, err := tree.AsArrays(in)
	assert.ErrorIs(t, err, tensor.ErrShapeIncompatible)
	assert.Contains(t, err.Error(), "$.obs")
}
