package tree

/*
VarianceCriterion scores a subset of regression targets by
their variance. The score is zero iff every target in the
subset is identical.
*/
type VarianceCriterion struct{}

// Impurity returns the variance of the given targets. An empty
// subset is pure.
func (VarianceCriterion) Impurity(y []float64) float64 {
	if len(y) == 0 {
		return 0.0
	}
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	var variance float64
	for _, v := range y {
		variance += (v - mean) * (v - mean)
	}
	return variance / float64(len(y))
}

/*
MeanEvaluator predicts the mean of the targets routed to a
leaf.
*/
type MeanEvaluator struct{}

// Evaluate returns the mean of the given targets, or 0 for an
// empty subset.
func (MeanEvaluator) Evaluate(y []float64) float64 {
	if len(y) == 0 {
		return 0.0
	}
	var mean float64
	for _, v := range y {
		mean += v
	}
	return mean / float64(len(y))
}

/*
NewRegressor takes a configuration and returns a decision tree
regressor: variance impurity, exhaustive split selection and
mean leaves.
*/
func NewRegressor(config Config) *Tree {
	criterion := VarianceCriterion{}
	return New(config, NewExhaustiveSplitter(criterion), criterion, MeanEvaluator{})
}
