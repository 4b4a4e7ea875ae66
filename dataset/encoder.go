package dataset

import (
	"fmt"
	"sort"
)

/*
LabelEncoder maps the string values of a discrete column to
float64 codes and back. Codes are assigned to the sorted unique
values so that encoding is deterministic for a given value set.
*/
type LabelEncoder struct {
	codes  map[string]float64
	values []string
}

// NewLabelEncoder returns an unfitted label encoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{codes: make(map[string]float64)}
}

// Fit assigns a code to every unique value in the given labels,
// discarding any previous fit.
func (le *LabelEncoder) Fit(labels []string) {
	unique := make(map[string]bool)
	for _, label := range labels {
		unique[label] = true
	}
	le.values = make([]string, 0, len(unique))
	for label := range unique {
		le.values = append(le.values, label)
	}
	sort.Strings(le.values)
	le.codes = make(map[string]float64, len(le.values))
	for i, label := range le.values {
		le.codes[label] = float64(i)
	}
}

// Transform maps the given labels to their codes. It returns an
// error on a label the encoder was not fitted with.
func (le *LabelEncoder) Transform(labels []string) ([]float64, error) {
	if len(le.values) == 0 {
		return nil, fmt.Errorf("label encoder is not fitted")
	}
	encoded := make([]float64, len(labels))
	for i, label := range labels {
		code, ok := le.codes[label]
		if !ok {
			return nil, fmt.Errorf("unknown label %q", label)
		}
		encoded[i] = code
	}
	return encoded, nil
}

// FitTransform fits the encoder on the given labels and returns
// their codes.
func (le *LabelEncoder) FitTransform(labels []string) ([]float64, error) {
	le.Fit(labels)
	return le.Transform(labels)
}

// Inverse maps a code back to its label. It returns an error on
// a code the encoder never produced.
func (le *LabelEncoder) Inverse(code float64) (string, error) {
	i := int(code)
	if float64(i) != code || i < 0 || i >= len(le.values) {
		return "", fmt.Errorf("no label for code %v", code)
	}
	return le.values[i], nil
}

// Classes returns the encoded values in code order.
func (le *LabelEncoder) Classes() []string {
	return le.values
}
