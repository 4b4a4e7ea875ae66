package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/dataset/csv"
)

type predictCmdConfig struct {
	trainCmdConfig
	queryInput string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{trainCmdConfig: trainCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Train a decision tree and predict a query dataset",
		Long:  `Train a decision tree on a dataset and print one prediction per row of a query CSV file.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			md, err := config.metadata()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			ds, encoders, err := config.readDataset(ctx, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			query, err := config.readQuery(md, ds.Features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			t := config.tree()
			config.Logf("Training decision tree on %d samples to predict %s ...", ds.Count(), ds.Label)
			err = t.Fit(ctx, ds.X, ds.Y)
			if err != nil {
				fmt.Fprintf(os.Stderr, "training the tree: %v\n", err)
				os.Exit(5)
			}
			preds, err := t.Predict(ctx, query)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting: %v\n", err)
				os.Exit(6)
			}
			labelEncoder := encoders[ds.Label]
			for _, pred := range preds {
				if labelEncoder == nil {
					fmt.Println(pred)
					continue
				}
				label, err := labelEncoder.Inverse(pred)
				if err != nil {
					fmt.Fprintf(os.Stderr, "decoding prediction: %v\n", err)
					os.Exit(7)
				}
				fmt.Println(label)
			}
		},
	}
	registerInputFlags(cmd, &config.inputConfig)
	registerTreeFlags(cmd, &config.trainCmdConfig)
	cmd.PersistentFlags().StringVarP(&(config.queryInput), "query", "q", "", "path to a CSV file with the rows to predict (required)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if err := pcc.inputConfig.Validate(); err != nil {
		return err
	}
	if pcc.queryInput == "" {
		return fmt.Errorf("required query flag was not set")
	}
	return nil
}

/*
readQuery parses the query CSV into feature rows with the
feature columns in the same order the training dataset uses,
so that split rules keep deciding on the right columns.
*/
func (pcc *predictCmdConfig) readQuery(md *dataset.Metadata, features []string) ([][]float64, error) {
	f, err := os.Open(pcc.queryInput)
	if err != nil {
		return nil, fmt.Errorf("opening query dataset at %s: %v", pcc.queryInput, err)
	}
	defer f.Close()
	// The query CSV carries no label column: any feature column
	// may act as the pivot Read extracts, and the remaining rows
	// are reassembled in training feature order below.
	query, _, err := csv.Read(f, md, features[len(features)-1])
	if err != nil {
		return nil, fmt.Errorf("reading query dataset: %v", err)
	}
	rows := make([][]float64, query.Count())
	for i := range rows {
		row := make([]float64, len(features))
		for j, name := range features {
			if name == query.Label {
				row[j] = query.Y[i]
				continue
			}
			found := false
			for qj, qname := range query.Features {
				if qname == name {
					row[j] = query.X[i][qj]
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("query dataset has no column %q", name)
			}
		}
		rows[i] = row
	}
	return rows, nil
}
