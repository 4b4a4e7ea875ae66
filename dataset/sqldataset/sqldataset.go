/*
Package sqldataset loads datasets from SQL databases.

The dialect specifics live behind the Adapter interface; the
sqlite3adapter and pgadapter subpackages provide adapters for
SQLite3 files and PostgreSQL servers.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jonas-mika/eduml/dataset"
)

/*
Adapter gives access to a SQL database and its dialect
specifics.

Its DB method returns the open database handle. Its ColumnName
method validates a column name and returns the form in which it
may be interpolated into a query, or an error when the name
cannot be used safely.
*/
type Adapter interface {
	DB() *sql.DB
	ColumnName(name string) (string, error)
}

/*
Read queries the given table for the columns named by features
and label and returns the dataset built from the result rows.
Discrete columns are encoded with a LabelEncoder fitted on
their declared values; the encoders are returned by column
name.
*/
func Read(ctx context.Context, a Adapter, table string, md *dataset.Metadata, features []string, label string) (*dataset.Dataset, map[string]*dataset.LabelEncoder, error) {
	names := append(append([]string{}, features...), label)
	quoted := make([]string, 0, len(names))
	columns := make([]dataset.Column, 0, len(names))
	for _, name := range names {
		column, ok := md.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("column %q is not declared in the metadata", name)
		}
		qn, err := a.ColumnName(name)
		if err != nil {
			return nil, nil, err
		}
		quoted = append(quoted, qn)
		columns = append(columns, column)
	}
	qt, err := a.ColumnName(table)
	if err != nil {
		return nil, nil, fmt.Errorf("table name: %v", err)
	}

	rows, err := a.DB().QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), qt))
	if err != nil {
		return nil, nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()

	raw := make([][]string, len(names))
	numeric := make([][]float64, len(names))
	for rows.Next() {
		values := make([]interface{}, len(names))
		for i, column := range columns {
			if column.Continuous {
				values[i] = new(float64)
			} else {
				values[i] = new(string)
			}
		}
		if err := rows.Scan(values...); err != nil {
			return nil, nil, fmt.Errorf("scanning row from table %s: %v", table, err)
		}
		for i, column := range columns {
			if column.Continuous {
				numeric[i] = append(numeric[i], *(values[i].(*float64)))
			} else {
				raw[i] = append(raw[i], *(values[i].(*string)))
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %v", table, err)
	}

	encoders := make(map[string]*dataset.LabelEncoder)
	for i, column := range columns {
		if column.Continuous {
			continue
		}
		le := dataset.NewLabelEncoder()
		le.Fit(column.Values)
		numeric[i], err = le.Transform(raw[i])
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %v", names[i], err)
		}
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
		return nil, nil, fmt.Errorf("table %s has no samples", table)
	}
	return ds, encoders, nil
}
