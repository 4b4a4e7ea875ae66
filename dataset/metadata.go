package dataset

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

/*
Column describes one column of a raw dataset: either a
continuous numeric column, or a discrete column with a finite
set of allowed values that is encoded to numeric codes on load.
*/
type Column struct {
	Continuous bool
	Values     []string
}

/*
Metadata describes the columns of a raw dataset by name. It is
parsed from a YAML document with a columns property mapping
each column name to either the string 'continuous' or to a list
of allowed values for a discrete column.
*/
type Metadata struct {
	columns map[string]Column
}

/*
ReadMetadata takes a slice of bytes with a column specification
in YAML and returns the metadata parsed from it or an error.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	spec := struct {
		Columns map[string]interface{}
	}{}
	if err := yaml.Unmarshal(md, &spec); err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if spec.Columns == nil {
		return nil, fmt.Errorf("metadata has no column information")
	}
	columns := make(map[string]Column)
	for name, vs := range spec.Columns {
		switch values := vs.(type) {
		case string:
			if values != "continuous" {
				return nil, fmt.Errorf("column %s: unknown kind %q", name, values)
			}
			columns[name] = Column{Continuous: true}
		case []interface{}:
			stringVs := make([]string, 0, len(values))
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			columns[name] = Column{Values: stringVs}
		default:
			return nil, fmt.Errorf("column %s: invalid declaration of type %T", name, vs)
		}
	}
	return &Metadata{columns}, nil
}

/*
ReadMetadataFromFile takes a filepath, reads its contents and
uses ReadMetadata to parse it into metadata or an error.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}

// Column returns the declaration for the column with the given
// name and whether the metadata declares it at all.
func (m *Metadata) Column(name string) (Column, bool) {
	c, ok := m.columns[name]
	return c, ok
}

// ColumnNames returns the names of all declared columns, in no
// particular order.
func (m *Metadata) ColumnNames() []string {
	names := make([]string, 0, len(m.columns))
	for name := range m.columns {
		names = append(names, name)
	}
	return names
}
