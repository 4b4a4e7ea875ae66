package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccuracy(t *testing.T) {
	acc, err := Accuracy([]float64{0, 1, 1, 0}, []float64{0, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.75, acc)

	acc, err = Accuracy([]float64{1, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	_, err = Accuracy(nil, nil)
	assert.Error(t, err)
	_, err = Accuracy([]float64{0}, []float64{0, 1})
	assert.Error(t, err)
}

func TestMSE(t *testing.T) {
	mse, err := MSE([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, mse)

	mse, err = MSE([]float64{0, 0}, []float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, mse)

	_, err = MSE([]float64{0}, []float64{})
	assert.Error(t, err)
}

func TestCrossEntropy(t *testing.T) {
	t.Run("perfect prediction", func(t *testing.T) {
		ce, err := CrossEntropy([][]float64{{1, 0}, {0, 1}}, [][]float64{{1, 0}, {0, 1}})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, ce, 1e-12)
	})

	t.Run("uniform prediction", func(t *testing.T) {
		ce, err := CrossEntropy([][]float64{{1, 0}}, [][]float64{{0.5, 0.5}})
		require.NoError(t, err)
		assert.InDelta(t, math.Log(2), ce, 1e-12)
	})

	t.Run("zero probability stays finite", func(t *testing.T) {
		ce, err := CrossEntropy([][]float64{{1, 0}}, [][]float64{{0, 1}})
		require.NoError(t, err)
		assert.False(t, math.IsInf(ce, 1))
		assert.InDelta(t, -math.Log(1e-15), ce, 1e-6)
	})

	t.Run("shape errors", func(t *testing.T) {
		_, err := CrossEntropy(nil, nil)
		assert.Error(t, err)
		_, err = CrossEntropy([][]float64{{1, 0}}, [][]float64{{1}})
		assert.Error(t, err)
	})
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []float64{0, 0, 1, 1, 2}
	yPred := []float64{0, 1, 1, 1, 0}

	matrix, classes, err := ConfusionMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, classes)
	assert.Equal(t, [][]int{
		{1, 1, 0, 0},
		{0, 2, 0, 0},
		{1, 0, 0, 0},
	}, matrix)
}

func TestConfusionMatrixOutOfClassPrediction(t *testing.T) {
	matrix, classes, err := ConfusionMatrix([]float64{0, 1}, []float64{0, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, classes)
	// The prediction 5 is not a true class and lands in the
	// trailing column.
	assert.Equal(t, [][]int{
		{1, 0, 0},
		{0, 0, 1},
	}, matrix)
}

func TestClasses(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2}, Classes([]float64{2, 0, 1, 0, 2}))
	assert.Empty(t, Classes(nil))
}
