package tree

import (
	"fmt"
	"sort"
)

/*
Split is a binary split rule: a feature index and a threshold
value, together with the impurity score the split attained when
it was selected.
*/
type Split struct {
	// Feature is the index of the feature column the rule
	// evaluates.
	Feature int
	// Threshold is the value the feature is compared against.
	Threshold float64
	// Impurity is the weighted impurity of the two label subsets
	// the split produces.
	Impurity float64
}

// Decide returns the routing decision of the rule for the given
// feature row: true routes to the right child, false to the
// left child.
func (s *Split) Decide(row []float64) bool {
	return row[s.Feature] > s.Threshold
}

func (s *Split) String() string {
	return fmt.Sprintf("x[%d]>%v", s.Feature, s.Threshold)
}

/*
Splitter selects the best binary split for a subset of the
training data.

Its BestSplit method takes the feature rows and labels of the
samples routed to a node and returns the best split it can find,
or nil when no split improves on leaving the node as a leaf. The
nil result is the ordinary termination signal of tree growing,
not an error.
*/
type Splitter interface {
	BestSplit(X [][]float64, y []float64) *Split
}

/*
Criterion scores the impurity of a subset of labels: a
non-negative measure of its heterogeneity. A score of exactly
zero means the subset is pure.
*/
type Criterion interface {
	Impurity(y []float64) float64
}

/*
LeafEvaluator computes the prediction stored on a leaf from the
labels of the samples routed to it, such as the majority class
for classification or the mean for regression.
*/
type LeafEvaluator interface {
	Evaluate(y []float64) float64
}

type exhaustiveSplitter struct {
	criterion Criterion
}

/*
NewExhaustiveSplitter takes a criterion and returns a Splitter
that scans every feature and every midpoint between consecutive
distinct values of that feature, scoring candidates by the
size-weighted criterion impurity of the two label subsets they
produce. It returns the candidate with the lowest score, or nil
when no candidate scores strictly below the impurity of the
unsplit labels.
*/
func NewExhaustiveSplitter(criterion Criterion) Splitter {
	return &exhaustiveSplitter{criterion}
}

func (es *exhaustiveSplitter) BestSplit(X [][]float64, y []float64) *Split {
	if len(X) < 2 {
		return nil
	}
	var best *Split
	bestScore := es.criterion.Impurity(y)
	n := float64(len(y))
	for p := range X[0] {
		for _, threshold := range midpoints(X, p) {
			var left, right []float64
			for i, row := range X {
				if row[p] > threshold {
					right = append(right, y[i])
				} else {
					left = append(left, y[i])
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			score := es.criterion.Impurity(left)*float64(len(left))/n +
				es.criterion.Impurity(right)*float64(len(right))/n
			if score < bestScore {
				bestScore = score
				best = &Split{Feature: p, Threshold: threshold, Impurity: score}
			}
		}
	}
	return best
}

// midpoints returns the midpoints between consecutive distinct
// values of the given feature column, in increasing order.
func midpoints(X [][]float64, p int) []float64 {
	values := make([]float64, 0, len(X))
	for _, row := range X {
		values = append(values, row[p])
	}
	sort.Float64s(values)
	var ms []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			ms = append(ms, (values[i]+values[i-1])/2.0)
		}
	}
	return ms
}
