// Package batch merges per-rollout value trees into one batch-wise tree for
// a recurrent training step.
package batch

import (
	"errors"
	"fmt"
	"strconv"

	"nestfeed/internal/common"
	"nestfeed/tensor"
	"nestfeed/tree"
)

// Keys injected at the root of every concatenated batch.
const (
	KeyBatchSize = "rnn_batch_size"
	KeyTimeSteps = "rnn_time_steps"
	keyTerminal  = "terminal"
)

// ConcatBatch concatenates structurally-isomorphic rollout trees along the
// leading batch axis. Every leaf of the result is the axis-0 concatenation of
// the corresponding input leaves; pair nodes concatenate channel-wise and
// sequences positionally. Two scalar leaves are injected at the root only:
// KeyBatchSize (the rollout count) and KeyTimeSteps (dimension 0 of the
// first rollout's "terminal" leaf).
//
// All rollouts are assumed to record the same number of time steps; the
// count is read from the first rollout only and not verified. Structural or
// shape disagreement between rollouts is a caller error and fails with
// ErrStructureMismatch or ErrShapeIncompatible.
func ConcatBatch(rollouts []*tree.Tree) (*tree.Tree, error) {
	master, ok := common.First(rollouts)
	if !ok {
		return nil, errors.New("concat of zero rollouts")
	}

	steps, err := timeSteps(master)
	if err != nil {
		return nil, err
	}

	body, err := concatTrees(rollouts, "$")
	if err != nil {
		return nil, err
	}

	out := tree.Mapping(
		tree.E(KeyBatchSize, tree.ScalarLeaf(len(rollouts))),
		tree.E(KeyTimeSteps, tree.ScalarLeaf(steps)),
	)

	for _, key := range body.Keys() {
		child, _ := body.Child(key)
		out.Set(key, child)
	}

	return out, nil
}

// timeSteps reads dimension 0 of the rollout's terminal-flag leaf.
func timeSteps(rollout *tree.Tree) (int, error) {
	if rollout.Kind() != tree.KindMapping {
		return 0, fmt.Errorf("rollout is %s, want a mapping: %w", rollout.Kind(), tree.ErrStructureMismatch)
	}

	term, ok := rollout.Child(keyTerminal)
	if !ok {
		return 0, fmt.Errorf("rollout has no %q leaf: %w", keyTerminal, tree.ErrStructureMismatch)
	}

	if term.Kind() != tree.KindLeaf || term.Leaf().Class() != tree.LeafArray {
		return 0, fmt.Errorf("%q is not an array leaf: %w", keyTerminal, tree.ErrStructureMismatch)
	}

	arr := term.Leaf().Array()
	if arr.Rank() == 0 {
		return 0, fmt.Errorf("%q has no time dimension: %w", keyTerminal, tensor.ErrShapeIncompatible)
	}

	return arr.Shape()[0], nil
}

// concatTrees is the recursive body of ConcatBatch. It never injects the
// root-only keys.
func concatTrees(nodes []*tree.Tree, path string) (*tree.Tree, error) {
	master := nodes[0]

	for i, n := range nodes {
		if n.Kind() != master.Kind() {
			return nil, fmt.Errorf("%s: rollout %d is %s, want %s: %w",
				path, i, n.Kind(), master.Kind(), tree.ErrStructureMismatch)
		}

		if n.Len() != master.Len() {
			return nil, fmt.Errorf("%s: rollout %d arity %d vs %d: %w",
				path, i, n.Len(), master.Len(), tree.ErrStructureMismatch)
		}
	}

	switch master.Kind() {
	case tree.KindMapping:
		out := tree.Mapping()

		for _, key := range master.Keys() {
			column := make([]*tree.Tree, len(nodes))

			for i, n := range nodes {
				child, ok := n.Child(key)
				if !ok {
					return nil, fmt.Errorf("%s: rollout %d has no key %q: %w",
						path, i, key, tree.ErrStructureMismatch)
				}

				column[i] = child
			}

			sub, err := concatTrees(column, path+"."+key)
			if err != nil {
				return nil, err
			}

			out.Set(key, sub)
		}

		return out, nil

	case tree.KindPair:
		first, err := concatTrees(common.Column(nodes, channel(0)), path+"[0]")
		if err != nil {
			return nil, err
		}

		second, err := concatTrees(common.Column(nodes, channel(1)), path+"[1]")
		if err != nil {
			return nil, err
		}

		return tree.Pair(first, second), nil

	case tree.KindSequence:
		elems := make([]*tree.Tree, master.Len())

		for i := range elems {
			sub, err := concatTrees(common.Column(nodes, channel(i)), path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}

			elems[i] = sub
		}

		return tree.Seq(elems...), nil

	default: // leaf
		arrays := make([]*tensor.Array, len(nodes))

		for i, n := range nodes {
			l := n.Leaf()
			if l.Class() != tree.LeafArray {
				return nil, fmt.Errorf("%s: rollout %d leaf is %s, want an array: %w",
					path, i, l.Class(), tensor.ErrShapeIncompatible)
			}

			arrays[i] = l.Array()
		}

		merged, err := tensor.Concat(arrays)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return tree.ArrayLeaf(merged), nil
	}
}

// channel picks the i-th element of pair and sequence nodes.
func channel(i int) func(*tree.Tree) *tree.Tree {
	return func(t *tree.Tree) *tree.Tree {
		return t.At(i)
	}
}
