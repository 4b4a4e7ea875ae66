/*
Package mongodataset loads datasets from a MongoDB collection.

Every document in the collection is one sample, with one field
per column declared in the metadata.
*/
package mongodataset

import (
	"context"
	"fmt"

	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/jonas-mika/eduml/dataset"
)

/*
Read iterates the given collection on the session's default
database and returns the dataset built from its documents, with
the fields named by features as the feature matrix and the
field named by label as the target vector. Discrete columns are
encoded with a LabelEncoder fitted on their declared values;
the encoders are returned by column name.
*/
func Read(ctx context.Context, session *mgo.Session, collection string, md *dataset.Metadata, features []string, label string) (*dataset.Dataset, map[string]*dataset.LabelEncoder, error) {
	names := append(append([]string{}, features...), label)
	columns := make([]dataset.Column, 0, len(names))
	for _, name := range names {
		column, ok := md.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("column %q is not declared in the metadata", name)
		}
		columns = append(columns, column)
	}

	raw := make([][]string, len(names))
	numeric := make([][]float64, len(names))
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		for i, name := range names {
			v, ok := doc[name]
			if !ok {
				return nil, nil, fmt.Errorf("document %v has no field %q", doc["_id"], name)
			}
			if columns[i].Continuous {
				f, err := numericValue(v)
				if err != nil {
					return nil, nil, fmt.Errorf("document %v, field %q: %v", doc["_id"], name, err)
				}
				numeric[i] = append(numeric[i], f)
			} else {
				s, ok := v.(string)
				if !ok {
					return nil, nil, fmt.Errorf("document %v, field %q: expected string, got %T", doc["_id"], name, v)
				}
				raw[i] = append(raw[i], s)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading collection %s: %v", collection, err)
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
	if ds.Count() == 0 {
		return nil, nil, fmt.Errorf("collection %s has no samples", collection)
	}
	return ds, encoders, nil
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected numeric value, got %T", v)
}
