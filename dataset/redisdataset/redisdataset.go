/*
Package redisdataset stores and loads datasets on a redis
database.

Samples live as JSON documents under sequential keys of the
form prefix:INDEX, with the sample count under prefix:count.
*/
package redisdataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	redis "gopkg.in/redis.v5"

	"github.com/jonas-mika/eduml/dataset"
)

/*
Write stores the given dataset under the given prefix,
overwriting whatever dataset was stored there before. Each
sample is a JSON document mapping column names to values;
columns with an encoder in the given map are stored as their
decoded values.
*/
func Write(ctx context.Context, rc *redis.Client, prefix string, ds *dataset.Dataset, encoders map[string]*dataset.LabelEncoder) error {
	for j, row := range ds.X {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := make(map[string]interface{}, len(ds.Features)+1)
		for i, name := range ds.Features {
			v, err := storedValue(name, row[i], encoders)
			if err != nil {
				return fmt.Errorf("storing sample %d: %v", j, err)
			}
			doc[name] = v
		}
		v, err := storedValue(ds.Label, ds.Y[j], encoders)
		if err != nil {
			return fmt.Errorf("storing sample %d: %v", j, err)
		}
		doc[ds.Label] = v
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding sample %d: %v", j, err)
		}
		if _, err := rc.Set(keyFor(prefix, strconv.Itoa(j)), data, 0).Result(); err != nil {
			return fmt.Errorf("storing sample %d in redis: %v", j, err)
		}
	}
	if _, err := rc.Set(keyFor(prefix, "count"), ds.Count(), 0).Result(); err != nil {
		return fmt.Errorf("storing sample count in redis: %v", err)
	}
	return nil
}

/*
Read loads the dataset stored under the given prefix, with the
fields named by features as the feature matrix and the field
named by label as the target vector. Discrete columns are
encoded with a LabelEncoder fitted on their declared values;
the encoders are returned by column name.
*/
func Read(ctx context.Context, rc *redis.Client, prefix string, md *dataset.Metadata, features []string, label string) (*dataset.Dataset, map[string]*dataset.LabelEncoder, error) {
	names := append(append([]string{}, features...), label)
	columns := make([]dataset.Column, 0, len(names))
	for _, name := range names {
		column, ok := md.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("column %q is not declared in the metadata", name)
		}
		columns = append(columns, column)
	}
	count, err := rc.Get(keyFor(prefix, "count")).Int64()
	if err != nil {
		return nil, nil, fmt.Errorf("retrieving sample count for %q: %v", prefix, err)
	}
	if count == 0 {
		return nil, nil, fmt.Errorf("dataset %q has no samples", prefix)
	}

	raw := make([][]string, len(names))
	numeric := make([][]float64, len(names))
	for j := int64(0); j < count; j++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		data, err := rc.Get(keyFor(prefix, strconv.FormatInt(j, 10))).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("retrieving sample %d: %v", j, err)
		}
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, nil, fmt.Errorf("decoding sample %d: %v", j, err)
		}
		for i, name := range names {
			v, ok := doc[name]
			if !ok {
				return nil, nil, fmt.Errorf("sample %d has no field %q", j, name)
			}
			if columns[i].Continuous {
				f, ok := v.(float64)
				if !ok {
					return nil, nil, fmt.Errorf("sample %d, field %q: expected number, got %T", j, name, v)
				}
				numeric[i] = append(numeric[i], f)
			} else {
				s, ok := v.(string)
				if !ok {
					return nil, nil, fmt.Errorf("sample %d, field %q: expected string, got %T", j, name, v)
				}
				raw[i] = append(raw[i], s)
			}
		}
	}

	encoders := make(map[string]*dataset.LabelEncoder)
	for i, column := range columns {
		if column.Continuous {
			continue
		}
		le := dataset.NewLabelEncoder()
		le.Fit(column.Values)
		encoded, err := le.Transform(raw[i])
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %v", names[i], err)
		}
		numeric[i] = encoded
		encoders[names[i]] = le
	}

	ds := &dataset.Dataset{Features: features, Label: label}
	for j := range numeric[len(names)-1] {
		row := make([]float64, len(features))
		for i := range features {
			row[i] = numeric[i][j]
		}
		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, numeric[len(names)-1][j])
	}
	return ds, encoders, nil
}

func keyFor(prefix, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// storedValue returns the JSON value for a column: the decoded
// label when the column has an encoder, the raw number
// otherwise.
func storedValue(name string, v float64, encoders map[string]*dataset.LabelEncoder) (interface{}, error) {
	le, ok := encoders[name]
	if !ok {
		return v, nil
	}
	label, err := le.Inverse(v)
	if err != nil {
		return nil, fmt.Errorf("column %q: %v", name, err)
	}
	return label, nil
}
