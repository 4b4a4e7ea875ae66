/*
Package svm implements linear support-vector classifiers
trained by solving the dual quadratic program.

HardMarginSVC separates two linearly separable classes with the
maximal margin hyperplane; SoftMarginSVC additionally allows
margin violations, bounded by the box constraint C on the dual
variables. Both are solved with a sequential minimal
optimization over pairs of dual variables on the linear-kernel
Gram matrix, after which the weights and bias are recovered
from the support vectors. A second call to Fit fully retrains
the model.
*/
package svm

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/metrics"
)

// ErrNotFitted is returned by Predict before any successful
// call to Fit.
const ErrNotFitted = fitError("support-vector classifier is not fitted")

type fitError string

func (e fitError) Error() string {
	return string(e)
}

const (
	// tolerance on the KKT violation below which a dual variable
	// is left alone
	tolerance = 1e-3
	// consecutive full sweeps without a change after which the
	// solver considers the dual solved
	maxPasses = 5
	// dual variables below this threshold count as zero and their
	// samples as non-support vectors
	supportThreshold = 1e-7
)

/*
SVC is a linear support-vector classifier for exactly two
classes. The zero box constraint distinguishes nothing: use
NewHardMarginSVC or NewSoftMarginSVC to construct one.
*/
type SVC struct {
	c    float64
	seed int64

	classes    []float64
	weights    []float64
	bias       float64
	alphas     []float64
	supportIdx []int
}

/*
NewHardMarginSVC returns an untrained maximal margin
classifier: a support-vector classifier whose dual variables
are unbounded, so that no margin violation is tolerated. It
only converges on linearly separable data.
*/
func NewHardMarginSVC() *SVC {
	return &SVC{c: math.Inf(1), seed: 1}
}

/*
NewSoftMarginSVC takes a positive box constraint C and returns
an untrained soft margin classifier: the larger C, the more a
margin violation costs.
*/
func NewSoftMarginSVC(c float64) *SVC {
	return &SVC{c: c, seed: 1}
}

/*
Fit trains the classifier on the given feature matrix and
target vector. The two classes are mapped onto {-1, +1} in
sorted order, the dual problem over the linear-kernel Gram
matrix is solved by sequential minimal optimization, and the
hyperplane weights and bias are recovered from the samples with
non-zero dual variables (the support vectors).
*/
func (s *SVC) Fit(ctx context.Context, X [][]float64, y []float64) error {
	s.classes = nil
	s.weights = nil
	s.bias = 0
	s.alphas = nil
	s.supportIdx = nil
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return fmt.Errorf("fitting svc: %v", err)
	}
	if err := dataset.ValidateTargetVector(y); err != nil {
		return fmt.Errorf("fitting svc: %v", err)
	}
	if err := dataset.CheckConsistentLength(X, y); err != nil {
		return fmt.Errorf("fitting svc: %v", err)
	}
	classes := metrics.Classes(y)
	if len(classes) != 2 {
		return fmt.Errorf("fitting svc: need exactly 2 classes, got %d", len(classes))
	}

	n, p := len(X), len(X[0])
	mapped := make([]float64, n)
	for i, label := range y {
		if label == classes[0] {
			mapped[i] = -1
		} else {
			mapped[i] = 1
		}
	}

	features := mat.NewDense(n, p, nil)
	for i, row := range X {
		features.SetRow(i, row)
	}
	var gram mat.Dense
	gram.Mul(features, features.T())

	alphas, bias, err := s.solveDual(ctx, &gram, mapped)
	if err != nil {
		return err
	}

	weights := make([]float64, p)
	var supportIdx []int
	for i, a := range alphas {
		if a <= supportThreshold {
			continue
		}
		supportIdx = append(supportIdx, i)
		floats.AddScaled(weights, a*mapped[i], X[i])
	}

	s.classes = classes
	s.weights = weights
	s.bias = bias
	s.alphas = alphas
	s.supportIdx = supportIdx
	return nil
}

/*
solveDual maximizes the dual objective over the box [0, C]
under the equality constraint by sequential minimal
optimization: it repeatedly picks a pair of dual variables that
violates the KKT conditions, optimizes the pair analytically
and clips it to the feasible segment, until a number of full
sweeps pass without any change.
*/
func (s *SVC) solveDual(ctx context.Context, gram *mat.Dense, y []float64) ([]float64, float64, error) {
	n := len(y)
	alphas := make([]float64, n)
	var bias float64
	rng := rand.New(rand.NewSource(s.seed))

	output := func(i int) float64 {
		var sum float64
		for j, a := range alphas {
			if a > 0 {
				sum += a * y[j] * gram.At(j, i)
			}
		}
		return sum + bias
	}

	for passes := 0; passes < maxPasses; {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		var changed int
		for i := 0; i < n; i++ {
			errI := output(i) - y[i]
			if !((y[i]*errI < -tolerance && alphas[i] < s.c) || (y[i]*errI > tolerance && alphas[i] > 0)) {
				continue
			}
			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			errJ := output(j) - y[j]
			oldI, oldJ := alphas[i], alphas[j]

			var low, high float64
			if y[i] != y[j] {
				low = math.Max(0, oldJ-oldI)
				high = math.Min(s.c, s.c+oldJ-oldI)
			} else {
				low = math.Max(0, oldI+oldJ-s.c)
				high = math.Min(s.c, oldI+oldJ)
			}
			if low == high {
				continue
			}
			eta := 2*gram.At(i, j) - gram.At(i, i) - gram.At(j, j)
			if eta >= 0 {
				continue
			}
			next := oldJ - y[j]*(errI-errJ)/eta
			next = math.Min(high, math.Max(low, next))
			if math.Abs(next-oldJ) < 1e-5 {
				continue
			}
			alphas[j] = next
			alphas[i] = oldI + y[i]*y[j]*(oldJ-next)

			b1 := bias - errI - y[i]*(alphas[i]-oldI)*gram.At(i, i) - y[j]*(alphas[j]-oldJ)*gram.At(i, j)
			b2 := bias - errJ - y[i]*(alphas[i]-oldI)*gram.At(i, j) - y[j]*(alphas[j]-oldJ)*gram.At(j, j)
			switch {
			case alphas[i] > 0 && alphas[i] < s.c:
				bias = b1
			case alphas[j] > 0 && alphas[j] < s.c:
				bias = b2
			default:
				bias = (b1 + b2) / 2
			}
			changed++
		}
		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}
	return alphas, bias, nil
}

/*
Predict returns the class on whose side of the hyperplane every
query row falls, in input order.
*/
func (s *SVC) Predict(ctx context.Context, X [][]float64) ([]float64, error) {
	values, err := s.PredictValue(ctx, X)
	if err != nil {
		return nil, err
	}
	preds := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			preds[i] = s.classes[1]
		} else {
			preds[i] = s.classes[0]
		}
	}
	return preds, nil
}

/*
PredictValue returns the signed distance proxy w·x + b for
every query row: positive values fall on the side of the class
mapped to +1.
*/
func (s *SVC) PredictValue(ctx context.Context, X [][]float64) ([]float64, error) {
	if s.weights == nil {
		return nil, ErrNotFitted
	}
	if err := dataset.ValidateFeatureMatrix(X); err != nil {
		return nil, fmt.Errorf("predicting: %v", err)
	}
	values := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.weights) {
			return nil, fmt.Errorf("predicting: row %d has %d features, expected %d", i, len(row), len(s.weights))
		}
		values[i] = floats.Dot(s.weights, row) + s.bias
	}
	return values, nil
}

/*
PredictProba is undefined for a support-vector classifier and
returns an empty result.
*/
func (s *SVC) PredictProba(ctx context.Context, X [][]float64) ([][]float64, error) {
	return [][]float64{}, nil
}

// SupportIndices returns the indices into the training set of
// the support vectors found by the last Fit.
func (s *SVC) SupportIndices() []int {
	return s.supportIdx
}

// Classes returns the two class labels in sorted order; the
// first maps to -1 and the second to +1.
func (s *SVC) Classes() []float64 {
	return s.classes
}
