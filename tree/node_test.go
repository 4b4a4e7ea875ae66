package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	n := NewNode([]int{3, 1, 4}, 2)
	assert.Equal(t, 3, n.Size())
	assert.Equal(t, 2, n.Depth)
	assert.Equal(t, Unresolved, n.State())
	assert.False(t, n.IsLeaf())
	assert.Nil(t, n.Rule)
	assert.Nil(t, n.Left)
	assert.Nil(t, n.Right)
}

func TestNodeSealLeaf(t *testing.T) {
	n := NewNode([]int{0, 1}, 1)
	require.NoError(t, n.SealLeaf(1.0))
	assert.Equal(t, Leaf, n.State())
	assert.True(t, n.IsLeaf())
	assert.Equal(t, 1.0, n.Prediction)

	assert.Equal(t, ErrAlreadyResolved, n.SealLeaf(0.0))
	assert.Equal(t, 1.0, n.Prediction)
}

func TestNodePromote(t *testing.T) {
	rule := &Split{Feature: 0, Threshold: 0.5}
	left := NewNode([]int{0}, 2)
	right := NewNode([]int{1}, 2)

	t.Run("missing child", func(t *testing.T) {
		n := NewNode([]int{0, 1}, 1)
		assert.Equal(t, ErrMissingChild, n.Promote(rule, left, nil))
		assert.Equal(t, ErrMissingChild, n.Promote(rule, nil, right))
		assert.Equal(t, Unresolved, n.State())
	})

	t.Run("promotes once", func(t *testing.T) {
		n := NewNode([]int{0, 1}, 1)
		require.NoError(t, n.Promote(rule, left, right))
		assert.Equal(t, Internal, n.State())
		assert.Equal(t, rule, n.Rule)
		assert.Equal(t, left, n.Left)
		assert.Equal(t, right, n.Right)

		assert.Equal(t, ErrAlreadyResolved, n.Promote(rule, left, right))
	})

	t.Run("sealed node cannot be promoted", func(t *testing.T) {
		n := NewNode([]int{0, 1}, 1)
		require.NoError(t, n.SealLeaf(0.0))
		assert.Equal(t, ErrAlreadyResolved, n.Promote(rule, left, right))
	})
}

func TestNodeDecide(t *testing.T) {
	t.Run("unresolved node has no rule", func(t *testing.T) {
		n := NewNode([]int{0}, 1)
		_, err := n.Decide([]float64{1.0})
		assert.Equal(t, ErrNoSplitRule, err)
	})

	t.Run("leaf has no rule", func(t *testing.T) {
		n := NewNode([]int{0}, 1)
		require.NoError(t, n.SealLeaf(0.0))
		_, err := n.Decide([]float64{1.0})
		assert.Equal(t, ErrNoSplitRule, err)
	})

	t.Run("internal node routes by threshold", func(t *testing.T) {
		n := NewNode([]int{0, 1}, 1)
		rule := &Split{Feature: 1, Threshold: 2.5}
		require.NoError(t, n.Promote(rule, NewNode([]int{0}, 2), NewNode([]int{1}, 2)))

		right, err := n.Decide([]float64{0.0, 3.0})
		require.NoError(t, err)
		assert.True(t, right)

		right, err = n.Decide([]float64{0.0, 2.5})
		require.NoError(t, err)
		assert.False(t, right)
	})

	t.Run("short row", func(t *testing.T) {
		n := NewNode([]int{0, 1}, 1)
		rule := &Split{Feature: 1, Threshold: 2.5}
		require.NoError(t, n.Promote(rule, NewNode([]int{0}, 2), NewNode([]int{1}, 2)))

		_, err := n.Decide([]float64{1.0})
		assert.Error(t, err)
	})
}

func TestNodeString(t *testing.T) {
	n := NewNode([]int{0, 1}, 1)
	assert.Contains(t, n.String(), "unresolved")

	require.NoError(t, n.SealLeaf(1.0))
	assert.Contains(t, n.String(), "leaf")
	assert.Contains(t, n.String(), "prediction=1")
}
