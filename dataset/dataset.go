/*
Package dataset holds the numeric training data the models in
this module learn from, the validation every model runs before
touching it, and the metadata that describes how raw columns
map onto it.
*/
package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

/*
Dataset is a feature matrix with its target vector. X has one
row per sample and one column per feature named in Features; Y
holds the value of the Label column for every row.
*/
type Dataset struct {
	Features []string
	Label    string
	X        [][]float64
	Y        []float64
}

/*
ValidateFeatureMatrix checks that a feature matrix has at least
one row, at least one column, the same number of columns on
every row and no missing (NaN) entries. It returns a
descriptive error for the first violation found.
*/
func ValidateFeatureMatrix(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("feature matrix has no rows")
	}
	p := len(X[0])
	if p == 0 {
		return fmt.Errorf("feature matrix has no columns")
	}
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), p)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return fmt.Errorf("missing value at row %d, feature %d", i, j)
			}
		}
	}
	return nil
}

/*
ValidateTargetVector checks that a target vector has at least
one entry and no missing (NaN) entries.
*/
func ValidateTargetVector(y []float64) error {
	if len(y) == 0 {
		return fmt.Errorf("target vector is empty")
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return fmt.Errorf("missing value at target %d", i)
		}
	}
	return nil
}

/*
CheckConsistentLength checks that the feature matrix and the
target vector describe the same number of samples.
*/
func CheckConsistentLength(X [][]float64, y []float64) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and target vector have different lengths: %d vs %d", len(X), len(y))
	}
	return nil
}

// Validate runs all consistency checks on the dataset.
func (ds *Dataset) Validate() error {
	if err := ValidateFeatureMatrix(ds.X); err != nil {
		return err
	}
	if err := ValidateTargetVector(ds.Y); err != nil {
		return err
	}
	return CheckConsistentLength(ds.X, ds.Y)
}

// Count returns the number of samples in the dataset.
func (ds *Dataset) Count() int {
	return len(ds.X)
}

/*
Split shuffles the dataset with the given seed and partitions it
into a training and a test dataset, with testSize being the
fraction of samples assigned to the test dataset. testSize must
lie strictly between 0 and 1 and both parts must end up with at
least one sample.
*/
func (ds *Dataset) Split(testSize float64, seed int64) (*Dataset, *Dataset, error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size %v outside (0, 1)", testSize)
	}
	if err := ds.Validate(); err != nil {
		return nil, nil, fmt.Errorf("splitting dataset: %v", err)
	}
	n := ds.Count()
	testCount := int(math.Round(float64(n) * testSize))
	if testCount == 0 || testCount == n {
		return nil, nil, fmt.Errorf("test size %v leaves an empty partition for %d samples", testSize, n)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test := &Dataset{Features: ds.Features, Label: ds.Label}
	train := &Dataset{Features: ds.Features, Label: ds.Label}
	for i, j := range perm {
		target := train
		if i < testCount {
			target = test
		}
		target.X = append(target.X, ds.X[j])
		target.Y = append(target.Y, ds.Y[j])
	}
	return train, test, nil
}
