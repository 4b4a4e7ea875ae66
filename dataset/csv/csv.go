/*
Package csv reads and writes datasets as CSV streams.

The header row names the columns; every name must be declared in
the metadata the stream is read with. Continuous columns hold
numeric values, discrete columns hold one of their declared
values and are encoded to numeric codes on read.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jonas-mika/eduml/dataset"
)

/*
Read parses a CSV stream into a dataset using the given
metadata. The column named label becomes the target vector, all
other header columns become features in header order. Discrete
columns, the label included, are encoded with a LabelEncoder
fitted on the column's declared values; the encoders are
returned by column name so that predictions can be decoded.
*/
func Read(r io.Reader, md *dataset.Metadata, label string) (*dataset.Dataset, map[string]*dataset.LabelEncoder, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %v", err)
	}
	labelCol := -1
	for i, name := range header {
		if _, ok := md.Column(name); !ok {
			return nil, nil, fmt.Errorf("column %q is not declared in the metadata", name)
		}
		if name == label {
			labelCol = i
		}
	}
	if labelCol < 0 {
		return nil, nil, fmt.Errorf("label column %q not found in header", label)
	}

	raw := make([][]string, len(header))
	for l := 2; ; l++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading body: %v", err)
		}
		for i, v := range record {
			raw[i] = append(raw[i], v)
		}
	}
	if len(raw[0]) == 0 {
		return nil, nil, fmt.Errorf("csv stream has no samples")
	}

	encoders := make(map[string]*dataset.LabelEncoder)
	columns := make([][]float64, len(header))
	for i, name := range header {
		column, _ := md.Column(name)
		columns[i], err = encodeColumn(name, column, raw[i], encoders)
		if err != nil {
			return nil, nil, err
		}
	}

	ds := &dataset.Dataset{Label: label}
	for i, name := range header {
		if i != labelCol {
			ds.Features = append(ds.Features, name)
		}
	}
	for j := range raw[0] {
		row := make([]float64, 0, len(header)-1)
		for i := range header {
			if i == labelCol {
				continue
			}
			row = append(row, columns[i][j])
		}
		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, columns[labelCol][j])
	}
	return ds, encoders, nil
}

func encodeColumn(name string, column dataset.Column, values []string, encoders map[string]*dataset.LabelEncoder) ([]float64, error) {
	if column.Continuous {
		encoded := make([]float64, len(values))
		for j, v := range values {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("column %q: parsing %q as a number: %v", name, v, err)
			}
			encoded[j] = f
		}
		return encoded, nil
	}
	le := dataset.NewLabelEncoder()
	le.Fit(column.Values)
	encoded, err := le.Transform(values)
	if err != nil {
		return nil, fmt.Errorf("column %q: %v", name, err)
	}
	encoders[name] = le
	return encoded, nil
}

/*
Write serializes a dataset as CSV onto the given writer:
a header row with the feature names and the label name, then
one row per sample. Columns with an encoder in the given map
are written as their decoded values.
*/
func Write(w io.Writer, ds *dataset.Dataset, encoders map[string]*dataset.LabelEncoder) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, ds.Features...), ds.Label)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %v", err)
	}
	for j, row := range ds.X {
		record := make([]string, 0, len(header))
		for i, name := range ds.Features {
			v, err := formatValue(name, row[i], encoders)
			if err != nil {
				return fmt.Errorf("writing sample %d: %v", j, err)
			}
			record = append(record, v)
		}
		v, err := formatValue(ds.Label, ds.Y[j], encoders)
		if err != nil {
			return fmt.Errorf("writing sample %d: %v", j, err)
		}
		record = append(record, v)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing sample %d: %v", j, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(name string, v float64, encoders map[string]*dataset.LabelEncoder) (string, error) {
	if le, ok := encoders[name]; ok {
		label, err := le.Inverse(v)
		if err != nil {
			return "", fmt.Errorf("column %q: %v", name, err)
		}
		return label, nil
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}
