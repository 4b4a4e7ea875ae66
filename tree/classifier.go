package tree

/*
GiniCriterion scores a subset of class labels by its gini
impurity: 1 minus the sum of squared class proportions. The
score is zero iff a single class is present.
*/
type GiniCriterion struct{}

// Impurity returns the gini impurity of the given labels. An
// empty subset is pure.
func (GiniCriterion) Impurity(y []float64) float64 {
	if len(y) == 0 {
		return 0.0
	}
	counts := make(map[float64]int)
	for _, label := range y {
		counts[label]++
	}
	impurity := 1.0
	n := float64(len(y))
	for _, count := range counts {
		p := float64(count) / n
		impurity -= p * p
	}
	return impurity
}

/*
MajorityEvaluator predicts the most frequent class among the
labels routed to a leaf. Ties resolve to the class that appears
first in the subset.
*/
type MajorityEvaluator struct{}

// Evaluate returns the majority class of the given labels, or 0
// for an empty subset.
func (MajorityEvaluator) Evaluate(y []float64) float64 {
	if len(y) == 0 {
		return 0.0
	}
	counts := make(map[float64]int)
	for _, label := range y {
		counts[label]++
	}
	majority := y[0]
	maxCount := counts[majority]
	for _, label := range y {
		if counts[label] > maxCount {
			maxCount = counts[label]
			majority = label
		}
	}
	return majority
}

/*
NewClassifier takes a configuration and returns a decision tree
classifier: gini impurity, exhaustive split selection and
majority-vote leaves.
*/
func NewClassifier(config Config) *Tree {
	criterion := GiniCriterion{}
	return New(config, NewExhaustiveSplitter(criterion), criterion, MajorityEvaluator{})
}
