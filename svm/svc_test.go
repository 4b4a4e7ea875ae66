package svm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-mika/eduml"
	"github.com/jonas-mika/eduml/svm"
)

var _ eduml.Model = (*svm.SVC)(nil)

// Two well separated clusters in the plane.
var (
	separableX = [][]float64{
		{-3, -3}, {-3, -2}, {-2, -3}, {-2.5, -2.5},
		{3, 3}, {3, 2}, {2, 3}, {2.5, 2.5},
	}
	separableY = []float64{0, 0, 0, 0, 1, 1, 1, 1}
)

func TestHardMarginSVC(t *testing.T) {
	svc := svm.NewHardMarginSVC()
	require.NoError(t, svc.Fit(context.Background(), separableX, separableY))

	assert.Equal(t, []float64{0, 1}, svc.Classes())
	assert.NotEmpty(t, svc.SupportIndices())

	preds, err := svc.Predict(context.Background(), separableX)
	require.NoError(t, err)
	assert.Equal(t, separableY, preds)

	preds, err = svc.Predict(context.Background(), [][]float64{{-5, -5}, {5, 5}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, preds)
}

func TestSoftMarginSVC(t *testing.T) {
	// A single outlier inside the opposite cluster keeps the data
	// from being linearly separable without margin violations.
	X := append(append([][]float64{}, separableX...), []float64{2.6, 2.6})
	y := append(append([]float64{}, separableY...), 0)

	svc := svm.NewSoftMarginSVC(1.0)
	require.NoError(t, svc.Fit(context.Background(), X, y))

	preds, err := svc.Predict(context.Background(), [][]float64{{-3, -3}, {3, 3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, preds)
}

func TestSVCPredictValueSign(t *testing.T) {
	svc := svm.NewHardMarginSVC()
	require.NoError(t, svc.Fit(context.Background(), separableX, separableY))

	values, err := svc.PredictValue(context.Background(), [][]float64{{-3, -3}, {3, 3}})
	require.NoError(t, err)
	assert.Negative(t, values[0])
	assert.Positive(t, values[1])
}

func TestSVCStringLabels(t *testing.T) {
	// Class labels need not be 0 and 1: the classifier maps the
	// sorted pair onto the two sides of the hyperplane.
	y := []float64{5, 5, 5, 5, 9, 9, 9, 9}
	svc := svm.NewSoftMarginSVC(10)
	require.NoError(t, svc.Fit(context.Background(), separableX, y))

	preds, err := svc.Predict(context.Background(), [][]float64{{-4, -4}, {4, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 9}, preds)
}

func TestSVCErrors(t *testing.T) {
	svc := svm.NewHardMarginSVC()

	_, err := svc.Predict(context.Background(), [][]float64{{1, 1}})
	assert.Equal(t, svm.ErrNotFitted, err)

	assert.Error(t, svc.Fit(context.Background(), nil, nil))
	assert.Error(t, svc.Fit(context.Background(), [][]float64{{1}, {2}}, []float64{1, 1}), "one class is not enough")
	assert.Error(t, svc.Fit(context.Background(), [][]float64{{1}, {2}, {3}}, []float64{0, 1, 2}), "three classes are too many")

	require.NoError(t, svc.Fit(context.Background(), separableX, separableY))
	_, err = svc.Predict(context.Background(), [][]float64{{1}})
	assert.Error(t, err, "query rows must have the training width")
}

func TestSVCPredictProbaEmpty(t *testing.T) {
	svc := svm.NewHardMarginSVC()
	require.NoError(t, svc.Fit(context.Background(), separableX, separableY))
	probs, err := svc.PredictProba(context.Background(), [][]float64{{1, 1}})
	require.NoError(t, err)
	assert.Empty(t, probs)
}
