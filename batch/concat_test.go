package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfeed/batch"
	"nestfeed/tensor"
	"nestfeed/tree"
)

// rollout builds one recorded trajectory of steps time steps with an obs
// leaf, a terminal leaf, and an LSTM-style state pair.
func rollout(t *testing.T, steps int, fill float32) *tree.Tree {
	t.Helper()

	obs := make([]float32, steps*3)
	for i := range obs {
		obs[i] = fill
	}

	obsArr, err := tensor.New([]int{steps, 3}, obs)
	require.NoError(t, err)

	return tree.Mapping(
		tree.E("obs", tree.ArrayLeaf(obsArr)),
		tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(steps))),
		tree.E("state", tree.Pair(
			tree.ArrayLeaf(tensor.Zeros(steps, 8)),
			tree.ArrayLeaf(tensor.Zeros(steps, 8)),
		)),
	)
}

func TestConcatBatchShapes(t *testing.T) {
	const n, steps = 3, 4

	rollouts := make([]*tree.Tree, n)
	for i := range rollouts {
		rollouts[i] = rollout(t, steps, float32(i))
	}

	out, err := batch.ConcatBatch(rollouts)
	require.NoError(t, err)

	obs, ok := out.Child("obs")
	require.True(t, ok)
	assert.Equal(t, []int{n * steps, 3}, obs.Leaf().Array().Shape())

	term, ok := out.Child("terminal")
	require.True(t, ok)
	assert.Equal(t, []int{n * steps}, term.Leaf().Array().Shape())

	size, ok := out.Child(batch.KeyBatchSize)
	require.True(t, ok)
	assert.Equal(t, n, size.Leaf().Value())

	timeSteps, ok := out.Child(batch.KeyTimeSteps)
	require.True(t, ok)
	assert.Equal(t, steps, timeSteps.Leaf().Value())

	// Rollouts concatenate in input order.
	data := obs.Leaf().Array().Data()
	assert.Equal(t, float32(0), data[0])
	assert.Equal(t, float32(1), data[steps*3])
	assert.Equal(t, float32(2), data[2*steps*3])
}

func TestConcatBatchPairNodes(t *testing.T) {
	const n, steps = 2, 4

	rollouts := make([]*tree.Tree, n)
	for i := range rollouts {
		rollouts[i] = rollout(t, steps, 0)
	}

	out, err := batch.ConcatBatch(rollouts)
	require.NoError(t, err)

	state, ok := out.Child("state")
	require.True(t, ok)
	require.Equal(t, tree.KindPair, state.Kind())

	// Channels stay separate: c with c, h with h.
	assert.Equal(t, []int{n * steps, 8}, state.At(0).Leaf().Array().Shape())
	assert.Equal(t, []int{n * steps, 8}, state.At(1).Leaf().Array().Shape())
}

func TestConcatBatchInjectsAtRootOnly(t *testing.T) {
	mk := func() *tree.Tree {
		return tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
			tree.E("nested", tree.Mapping(
				tree.E("obs", tree.ArrayLeaf(tensor.Zeros(2, 3))),
			)),
		)
	}

	out, err := batch.ConcatBatch([]*tree.Tree{mk(), mk()})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{batch.KeyBatchSize, batch.KeyTimeSteps, "terminal", "nested"},
		out.Keys())

	nested, ok := out.Child("nested")
	require.True(t, ok)
	assert.Equal(t, []string{"obs"}, nested.Keys())
}

func TestConcatBatchSequences(t *testing.T) {
	mk := func() *tree.Tree {
		return tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
			tree.E("stack", tree.Seq(
				tree.ArrayLeaf(tensor.Zeros(2, 4)),
				tree.ArrayLeaf(tensor.Zeros(2, 5)),
			)),
		)
	}

	out, err := batch.ConcatBatch([]*tree.Tree{mk(), mk(), mk()})
	require.NoError(t, err)

	stack, _ := out.Child("stack")
	require.Equal(t, tree.KindSequence, stack.Kind())
	require.Equal(t, 2, stack.Len())
	assert.Equal(t, []int{6, 4}, stack.At(0).Leaf().Array().Shape())
	assert.Equal(t, []int{6, 5}, stack.At(1).Leaf().Array().Shape())
}

func TestConcatBatchErrors(t *testing.T) {
	base := func() *tree.Tree {
		return tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
			tree.E("obs", tree.ArrayLeaf(tensor.Zeros(2, 3))),
		)
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := batch.ConcatBatch(nil)
		assert.Error(t, err)
	})

	t.Run("no terminal leaf", func(t *testing.T) {
		_, err := batch.ConcatBatch([]*tree.Tree{
			tree.Mapping(tree.E("obs", tree.ArrayLeaf(tensor.Zeros(2, 3)))),
		})
		assert.ErrorIs(t, err, tree.ErrStructureMismatch)
	})

	t.Run("missing key in later rollout", func(t *testing.T) {
		short := tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
		)

		_, err := batch.ConcatBatch([]*tree.Tree{base(), short})
		assert.ErrorIs(t, err, tree.ErrStructureMismatch)
	})

	t.Run("incompatible leaf shapes", func(t *testing.T) {
		wide := tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
			tree.E("obs", tree.ArrayLeaf(tensor.Zeros(2, 7))),
		)

		_, err := batch.ConcatBatch([]*tree.Tree{base(), wide})
		assert.ErrorIs(t, err, tensor.ErrShapeIncompatible)
	})

	t.Run("scalar leaf", func(t *testing.T) {
		bad := tree.Mapping(
			tree.E("terminal", tree.ArrayLeaf(tensor.Zeros(2))),
			tree.E("obs", tree.ScalarLeaf(5)),
		)

		_, err := batch.ConcatBatch([]*tree.Tree{bad, bad})
		assert.ErrorIs(t, err, tensor.ErrShapeIncompatible)
	})
}
