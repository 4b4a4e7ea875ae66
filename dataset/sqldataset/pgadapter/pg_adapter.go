/*
Package pgadapter provides a sqldataset.Adapter backed by a
PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	// Import of postgres driver
	_ "github.com/lib/pq"

	"github.com/jonas-mika/eduml/dataset/sqldataset"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL connection URL and a limit for open
connections (0 meaning no limit) and returns an Adapter that
works on the URL's database or an error if it cannot be opened.
*/
func New(url string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %v", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(name string) (string, error) {
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf("%q", name), nil
}
