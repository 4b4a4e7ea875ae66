package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiniCriterion(t *testing.T) {
	c := GiniCriterion{}
	tests := []struct {
		name string
		y    []float64
		want float64
	}{
		{"empty", nil, 0.0},
		{"pure", []float64{1, 1, 1}, 0.0},
		{"even binary", []float64{0, 0, 1, 1}, 0.5},
		{"three even classes", []float64{0, 1, 2}, 1.0 - 3.0/9.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, c.Impurity(tc.y), 1e-12)
		})
	}
}

func TestVarianceCriterion(t *testing.T) {
	c := VarianceCriterion{}
	assert.Equal(t, 0.0, c.Impurity(nil))
	assert.Equal(t, 0.0, c.Impurity([]float64{2.5, 2.5, 2.5}))
	assert.InDelta(t, 1.25, c.Impurity([]float64{1, 2, 3, 4}), 1e-12)
}

func TestMajorityEvaluator(t *testing.T) {
	e := MajorityEvaluator{}
	assert.Equal(t, 0.0, e.Evaluate(nil))
	assert.Equal(t, 1.0, e.Evaluate([]float64{0, 1, 1}))
	// Ties resolve to the class encountered first.
	assert.Equal(t, 2.0, e.Evaluate([]float64{2, 1, 1, 2}))
}

func TestMeanEvaluator(t *testing.T) {
	e := MeanEvaluator{}
	assert.Equal(t, 0.0, e.Evaluate(nil))
	assert.InDelta(t, 2.5, e.Evaluate([]float64{1, 2, 3, 4}), 1e-12)
}

func TestExhaustiveSplitterBestSplit(t *testing.T) {
	s := NewExhaustiveSplitter(GiniCriterion{})

	t.Run("perfectly separable column", func(t *testing.T) {
		X := [][]float64{{0}, {1}, {2}, {3}}
		y := []float64{0, 0, 1, 1}
		best := s.BestSplit(X, y)
		require.NotNil(t, best)
		assert.Equal(t, 0, best.Feature)
		assert.Equal(t, 1.5, best.Threshold)
		assert.Equal(t, 0.0, best.Impurity)
	})

	t.Run("picks the separating feature", func(t *testing.T) {
		X := [][]float64{
			{7.0, 0.0},
			{7.0, 1.0},
			{7.0, 10.0},
			{7.0, 11.0},
		}
		y := []float64{0, 0, 1, 1}
		best := s.BestSplit(X, y)
		require.NotNil(t, best)
		assert.Equal(t, 1, best.Feature)
		assert.Equal(t, 5.5, best.Threshold)
	})

	t.Run("pure labels yield no split", func(t *testing.T) {
		X := [][]float64{{0}, {1}, {2}}
		y := []float64{1, 1, 1}
		assert.Nil(t, s.BestSplit(X, y))
	})

	t.Run("singleton yields no split", func(t *testing.T) {
		assert.Nil(t, s.BestSplit([][]float64{{0}}, []float64{1}))
	})

	t.Run("constant features yield no split", func(t *testing.T) {
		X := [][]float64{{4}, {4}, {4}}
		y := []float64{0, 1, 0}
		assert.Nil(t, s.BestSplit(X, y))
	})
}

func TestSplitDecide(t *testing.T) {
	s := &Split{Feature: 0, Threshold: 1.5}
	assert.False(t, s.Decide([]float64{1.5}))
	assert.True(t, s.Decide([]float64{1.6}))
	assert.Equal(t, "x[0]>1.5", s.String())
}

func TestMidpoints(t *testing.T) {
	X := [][]float64{{3}, {1}, {2}, {2}}
	assert.Equal(t, []float64{1.5, 2.5}, midpoints(X, 0))
}
