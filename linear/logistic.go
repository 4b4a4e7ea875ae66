/*
Package linear implements multinomial logistic regression
trained by vanilla gradient descent.

The conditional class probabilities are modeled directly with
the softmax of an affine score, and the weights are optimized
by descending the gradient of the cross-entropy loss until the
improvement between epochs vanishes or the epoch budget runs
out. A second call to Fit fully retrains the model.
*/
package linear

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/metrics"
)

// ErrNotFitted is returned by Predict and PredictProba before
// any successful call to Fit.
const ErrNotFitted = fitError("logistic regression is not fitted")

type fitError string

func (e fitError) Error() string {
	return string(e)
}

// Tolerance is the minimum improvement in training loss between
// two epochs below which training stops early.
var Tolerance = math.Exp(-10)

/*
LogisticRegression is a multinomial logistic regression
classifier for k >= 2 classes.
*/
type LogisticRegression struct {
	epochs       int
	learningRate float64

	classes []float64
	weights *mat.Dense
	bias    []float64
	history []float64
}

/*
NewLogisticRegression takes an epoch budget and a learning rate
and returns an untrained logistic regression classifier.
*/
func NewLogisticRegression(epochs int, learningRate float64) *LogisticRegression {
	return &LogisticRegression{epochs: epochs, learningRate: learningRate}
}

/*
Fit trains the classifier on the given feature matrix and
target vector by gradient descent on the cross-entropy loss.
Weights start at small random values; every epoch computes the
softmax probabilities of all samples, appends the loss to the
training history and descends the gradient. Training stops when
the epoch budget is exhausted or the loss improves by less than
Tolerance.
*/
func (lr *LogisticRegression) Fit(ctx context.Context, X [][]float64, y []float64) error {
	lr.classes = nil
	lr.weights = nil
	lr.bias = nil
	lr.history = nil
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return fmt.Errorf("fitting logistic regression: %v", err)
	}
	if err := dataset.ValidateTargetVector(y); err != nil {
		return fmt.Errorf("fitting logistic regression: %v", err)
	}
	if err := dataset.CheckConsistentLength(X, y); err != nil {
		return fmt.Errorf("fitting logistic regression: %v", err)
	}

	n, p := len(X), len(X[0])
	classes := metrics.Classes(y)
	if len(classes) < 2 {
		return fmt.Errorf("fitting logistic regression: need at least 2 classes, got %d", len(classes))
	}
	k := len(classes)
	classIndex := make(map[float64]int, k)
	for i, c := range classes {
		classIndex[c] = i
	}

	hot := mat.NewDense(n, k, nil)
	for i, label := range y {
		hot.Set(i, classIndex[label], 1)
	}
	features := matrixOf(X)

	weights := mat.NewDense(p, k, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < k; j++ {
			weights.Set(i, j, rand.Float64())
		}
	}
	bias := make([]float64, k)
	for j := range bias {
		bias[j] = rand.Float64()
	}

	lr.classes = classes
	lr.weights = weights
	lr.bias = bias

	for e := 0; e < lr.epochs; e++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		probs := lr.proba(features)
		loss, err := metrics.CrossEntropy(denseRows(hot), denseRows(probs))
		if err != nil {
			return fmt.Errorf("fitting logistic regression: %v", err)
		}
		lr.history = append(lr.history, loss)

		var diff mat.Dense
		diff.Sub(probs, hot)
		var gradWeights mat.Dense
		gradWeights.Mul(features.T(), &diff)
		gradWeights.Scale(lr.learningRate/float64(n), &gradWeights)
		weights.Sub(weights, &gradWeights)
		for j := 0; j < k; j++ {
			var colSum float64
			for i := 0; i < n; i++ {
				colSum += diff.At(i, j)
			}
			bias[j] -= lr.learningRate * colSum / float64(n)
		}

		if e > 0 {
			improvement := math.Abs(lr.history[e] - lr.history[e-1])
			if improvement < Tolerance {
				break
			}
		}
	}
	return nil
}

/*
Predict returns the most probable class for every query row, in
input order.
*/
func (lr *LogisticRegression) Predict(ctx context.Context, X [][]float64) ([]float64, error) {
	proba, err := lr.PredictProba(ctx, X)
	if err != nil {
		return nil, err
	}
	preds := make([]float64, len(proba))
	for i, row := range proba {
		best := 0
		for j, p := range row {
			if p > row[best] {
				best = j
			}
		}
		preds[i] = lr.classes[best]
	}
	return preds, nil
}

/*
PredictProba returns the softmax class probabilities for every
query row, with one column per class in sorted class order.
*/
func (lr *LogisticRegression) PredictProba(ctx context.Context, X [][]float64) ([][]float64, error) {
	if lr.weights == nil {
		return nil, ErrNotFitted
	}
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return nil, fmt.Errorf("predicting: %v", err)
	}
	return denseRows(lr.proba(matrixOf(X))), nil
}

// Classes returns the class labels in the column order of
// PredictProba.
func (lr *LogisticRegression) Classes() []float64 {
	return lr.classes
}

// History returns the training loss recorded at every epoch of
// the last Fit.
func (lr *LogisticRegression) History() []float64 {
	return lr.history
}

// proba computes the row-wise softmax of the affine scores of
// the given feature matrix.
func (lr *LogisticRegression) proba(features *mat.Dense) *mat.Dense {
	n, _ := features.Dims()
	_, k := lr.weights.Dims()
	var scores mat.Dense
	scores.Mul(features, lr.weights)
	probs := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		var max float64 = math.Inf(-1)
		for j := 0; j < k; j++ {
			z := scores.At(i, j) + lr.bias[j]
			probs.Set(i, j, z)
			if z > max {
				max = z
			}
		}
		var sum float64
		for j := 0; j < k; j++ {
			e := math.Exp(probs.At(i, j) - max)
			probs.Set(i, j, e)
			sum += e
		}
		for j := 0; j < k; j++ {
			probs.Set(i, j, probs.At(i, j)/sum)
		}
	}
	return probs
}

func matrixOf(X [][]float64) *mat.Dense {
	n, p := len(X), len(X[0])
	m := mat.NewDense(n, p, nil)
	for i, row := range X {
		m.SetRow(i, row)
	}
	return m
}

func denseRows(m mat.Matrix) [][]float64 {
	n, k := m.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}
