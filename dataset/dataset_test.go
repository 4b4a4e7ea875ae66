package dataset

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFeatureMatrix(t *testing.T) {
	tests := []struct {
		name    string
		X       [][]float64
		wantErr string
	}{
		{"valid", [][]float64{{1, 2}, {3, 4}}, ""},
		{"no rows", nil, "no rows"},
		{"no columns", [][]float64{{}}, "no columns"},
		{"ragged", [][]float64{{1, 2}, {3}}, "row 1 has 1 features, expected 2"},
		{"missing value", [][]float64{{1, math.NaN()}}, "missing value at row 0, feature 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFeatureMatrix(tc.X)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateTargetVector(t *testing.T) {
	assert.NoError(t, ValidateTargetVector([]float64{0, 1}))
	assert.Error(t, ValidateTargetVector(nil))
	assert.Error(t, ValidateTargetVector([]float64{0, math.NaN()}))
}

func TestCheckConsistentLength(t *testing.T) {
	assert.NoError(t, CheckConsistentLength([][]float64{{1}, {2}}, []float64{0, 1}))
	assert.Error(t, CheckConsistentLength([][]float64{{1}}, []float64{0, 1}))
}

func TestDatasetSplit(t *testing.T) {
	ds := &Dataset{
		Features: []string{"x"},
		Label:    "y",
		X:        [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}},
		Y:        []float64{0, 1, 2, 3, 4, 5, 6, 7},
	}

	train, test, err := ds.Split(0.25, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, train.Count())
	assert.Equal(t, 2, test.Count())
	assert.Equal(t, ds.Features, train.Features)
	assert.Equal(t, ds.Label, test.Label)

	// The partitions cover the dataset without overlap.
	var ys []float64
	ys = append(ys, train.Y...)
	ys = append(ys, test.Y...)
	sort.Float64s(ys)
	assert.Equal(t, ds.Y, ys)

	// Targets travel with their rows.
	for i, row := range train.X {
		assert.Equal(t, row[0], train.Y[i])
	}

	// The same seed reproduces the same partition.
	train2, test2, err := ds.Split(0.25, 1)
	require.NoError(t, err)
	assert.Equal(t, train.X, train2.X)
	assert.Equal(t, test.Y, test2.Y)
}

func TestDatasetSplitErrors(t *testing.T) {
	ds := &Dataset{
		Features: []string{"x"},
		Label:    "y",
		X:        [][]float64{{0}, {1}},
		Y:        []float64{0, 1},
	}
	_, _, err := ds.Split(0, 1)
	assert.Error(t, err)
	_, _, err = ds.Split(1, 1)
	assert.Error(t, err)
	_, _, err = ds.Split(0.01, 1)
	assert.Error(t, err, "an empty test partition is rejected")
}

func TestLabelEncoder(t *testing.T) {
	le := NewLabelEncoder()

	_, err := le.Transform([]string{"a"})
	assert.Error(t, err, "an unfitted encoder cannot transform")

	codes, err := le.FitTransform([]string{"red", "blue", "red", "green"})
	require.NoError(t, err)
	// Codes follow the sorted unique values: blue, green, red.
	assert.Equal(t, []float64{2, 0, 2, 1}, codes)
	assert.Equal(t, []string{"blue", "green", "red"}, le.Classes())

	label, err := le.Inverse(1)
	require.NoError(t, err)
	assert.Equal(t, "green", label)

	_, err = le.Transform([]string{"purple"})
	assert.Error(t, err)
	_, err = le.Inverse(3)
	assert.Error(t, err)
	_, err = le.Inverse(0.5)
	assert.Error(t, err)
}

func TestReadMetadata(t *testing.T) {
	md, err := ReadMetadata([]byte(`
columns:
  age: continuous
  color:
    - red
    - green
`))
	require.NoError(t, err)

	age, ok := md.Column("age")
	require.True(t, ok)
	assert.True(t, age.Continuous)

	color, ok := md.Column("color")
	require.True(t, ok)
	assert.False(t, color.Continuous)
	assert.Equal(t, []string{"red", "green"}, color.Values)

	_, ok = md.Column("height")
	assert.False(t, ok)

	names := md.ColumnNames()
	sort.Strings(names)
	assert.Equal(t, []string{"age", "color"}, names)
}

func TestReadMetadataErrors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"not yaml", ":"},
		{"no columns", "foo: bar"},
		{"unknown kind", "columns:\n  age: discrete"},
		{"invalid declaration", "columns:\n  age: 7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadMetadata([]byte(tc.yml))
			assert.Error(t, err)
		})
	}
}
