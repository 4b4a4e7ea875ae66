/*
Package metrics provides the evaluation and loss functions
shared by the model families of this module.
*/
package metrics

import (
	"fmt"
	"math"
	"sort"
)

/*
Accuracy returns the fraction of predictions that exactly match
the true labels. It returns an error when the two slices differ
in length or are empty.
*/
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}
	var correct float64
	for i, label := range yTrue {
		if yPred[i] == label {
			correct++
		}
	}
	return correct / float64(len(yTrue)), nil
}

/*
MSE returns the mean squared error between the true targets and
the predictions. It returns an error when the two slices differ
in length or are empty.
*/
func MSE(yTrue, yPred []float64) (float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return 0, err
	}
	var sum float64
	for i, v := range yTrue {
		d := yPred[i] - v
		sum += d * d
	}
	return sum / float64(len(yTrue)), nil
}

/*
CrossEntropy returns the mean cross-entropy between a matrix of
true per-class probabilities (usually one-hot rows) and a
matrix of predicted per-class probabilities. Predictions are
clipped away from zero so that the result stays finite.
*/
func CrossEntropy(yTrue, yPred [][]float64) (float64, error) {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("probability matrices have lengths %d and %d", len(yTrue), len(yPred))
	}
	const epsilon = 1e-15
	var sum float64
	for i, row := range yTrue {
		if len(row) != len(yPred[i]) {
			return 0, fmt.Errorf("row %d has %d and %d classes", i, len(row), len(yPred[i]))
		}
		for j, p := range row {
			q := math.Max(yPred[i][j], epsilon)
			sum -= p * math.Log(q)
		}
	}
	return sum / float64(len(yTrue)), nil
}

/*
ConfusionMatrix returns the confusion matrix of the predictions
over the sorted unique classes of the true labels, with one row
per true class and one column per predicted class, together
with the class order of the rows and columns. Predictions
outside the true classes are counted in an extra trailing
column.
*/
func ConfusionMatrix(yTrue, yPred []float64) ([][]int, []float64, error) {
	if err := checkLengths(yTrue, yPred); err != nil {
		return nil, nil, err
	}
	classes := Classes(yTrue)
	index := make(map[float64]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	matrix := make([][]int, len(classes))
	for i := range matrix {
		matrix[i] = make([]int, len(classes)+1)
	}
	for i, label := range yTrue {
		row := index[label]
		col, ok := index[yPred[i]]
		if !ok {
			col = len(classes)
		}
		matrix[row][col]++
	}
	return matrix, classes, nil
}

// Classes returns the sorted unique values of the given labels.
func Classes(y []float64) []float64 {
	unique := make(map[float64]bool)
	for _, label := range y {
		unique[label] = true
	}
	classes := make([]float64, 0, len(unique))
	for label := range unique {
		classes = append(classes, label)
	}
	sort.Float64s(classes)
	return classes
}

func checkLengths(yTrue, yPred []float64) error {
	if len(yTrue) == 0 {
		return fmt.Errorf("no labels to score")
	}
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("labels and predictions have different lengths: %d vs %d", len(yTrue), len(yPred))
	}
	return nil
}
