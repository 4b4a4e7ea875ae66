package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	mgo "gopkg.in/mgo.v2"
	redis "gopkg.in/redis.v5"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/dataset/csv"
	"github.com/jonas-mika/eduml/dataset/mongodataset"
	"github.com/jonas-mika/eduml/dataset/redisdataset"
	"github.com/jonas-mika/eduml/dataset/sqldataset"
	"github.com/jonas-mika/eduml/dataset/sqldataset/pgadapter"
	"github.com/jonas-mika/eduml/dataset/sqldataset/sqlite3adapter"
)

// inputConfig is the shared configuration of every command that
// reads a dataset: where the data lives, the metadata that
// describes its columns and which column to predict.
type inputConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	labelColumn   string
	table         string
	maxDBConns    int
}

func (ic *inputConfig) Validate() error {
	if ic.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if ic.labelColumn == "" {
		return fmt.Errorf("required label flag was not set")
	}
	return nil
}

func (ic *inputConfig) metadata() (*dataset.Metadata, error) {
	md, err := dataset.ReadMetadataFromFile(ic.metadataInput)
	if err != nil {
		return nil, err
	}
	if _, ok := md.Column(ic.labelColumn); !ok {
		return nil, fmt.Errorf("label column %q is not declared in the metadata", ic.labelColumn)
	}
	return md, nil
}

// featureColumns returns every metadata column except the label,
// sorted by name so database reads are deterministic.
func (ic *inputConfig) featureColumns(md *dataset.Metadata) []string {
	var features []string
	for _, name := range md.ColumnNames() {
		if name != ic.labelColumn {
			features = append(features, name)
		}
	}
	sort.Strings(features)
	return features
}

/*
readDataset loads the dataset named by the input flag: a
PostgreSQL, MongoDB or redis URL, a path to an SQLite3 (.db)
file, a path to a CSV file, or STDIN interpreted as CSV when
the flag is empty.
*/
func (ic *inputConfig) readDataset(ctx context.Context, md *dataset.Metadata) (*dataset.Dataset, map[string]*dataset.LabelEncoder, error) {
	switch {
	case strings.HasPrefix(ic.dataInput, "postgresql://"):
		ic.Logf("Reading dataset from PostgreSQL table %s...", ic.table)
		adapter, err := pgadapter.New(ic.dataInput, ic.maxDBConns)
		if err != nil {
			return nil, nil, err
		}
		return sqldataset.Read(ctx, adapter, ic.table, md, ic.featureColumns(md), ic.labelColumn)
	case strings.HasPrefix(ic.dataInput, "mongodb://"):
		ic.Logf("Reading dataset from MongoDB collection %s...", ic.table)
		session, err := mgo.Dial(ic.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongodb: %v", err)
		}
		defer session.Close()
		return mongodataset.Read(ctx, session, ic.table, md, ic.featureColumns(md), ic.labelColumn)
	case strings.HasPrefix(ic.dataInput, "redis://"):
		ic.Logf("Reading dataset from redis prefix %s...", ic.table)
		rc, err := redisClient(ic.dataInput)
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()
		return redisdataset.Read(ctx, rc, ic.table, md, ic.featureColumns(md), ic.labelColumn)
	case strings.HasSuffix(ic.dataInput, ".db"):
		ic.Logf("Reading dataset from SQLite3 table %s...", ic.table)
		adapter, err := sqlite3adapter.New(ic.dataInput)
		if err != nil {
			return nil, nil, err
		}
		return sqldataset.Read(ctx, adapter, ic.table, md, ic.featureColumns(md), ic.labelColumn)
	case ic.dataInput == "":
		ic.Logf("Reading dataset from STDIN...")
		return csv.Read(os.Stdin, md, ic.labelColumn)
	}
	ic.Logf("Opening %s to read dataset...", ic.dataInput)
	f, err := os.Open(ic.dataInput)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset at %s: %v", ic.dataInput, err)
	}
	defer f.Close()
	return csv.Read(f, md, ic.labelColumn)
}

// redisClient parses a redis://host:port/db URL and returns a
// client connected to it.
func redisClient(redisURL string) (*redis.Client, error) {
	u, err := url.Parse(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %v", err)
	}
	options := &redis.Options{Addr: u.Host}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		if _, err := fmt.Sscanf(db, "%d", &options.DB); err != nil {
			return nil, fmt.Errorf("parsing redis URL database %q: %v", db, err)
		}
	}
	return redis.NewClient(options), nil
}
