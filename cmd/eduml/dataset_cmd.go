package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/dataset/csv"
	"github.com/jonas-mika/eduml/dataset/redisdataset"
)

type datasetCmdConfig struct {
	inputConfig
	output      string
	outputTable string
	testSize    float64
	seed        int64
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage datasets",
		Long:  `Read a dataset from any supported backend and dump it to a CSV file or a redis database.`,
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
			err = config.writeDataset(ctx, ds, encoders)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	registerInputFlags(cmd, &config.inputConfig)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file or a redis URL to dump the dataset to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVar(&(config.outputTable), "output-table", "samples", "key prefix to dump the samples under on redis outputs")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (dcc *datasetCmdConfig) writeDataset(ctx context.Context, ds *dataset.Dataset, encoders map[string]*dataset.LabelEncoder) error {
	if strings.HasPrefix(dcc.output, "redis://") {
		dcc.Logf("Dumping %d samples to redis prefix %s...", ds.Count(), dcc.outputTable)
		rc, err := redisClient(dcc.output)
		if err != nil {
			return err
		}
		defer rc.Close()
		return redisdataset.Write(ctx, rc, dcc.outputTable, ds, encoders)
	}
	if dcc.output == "" {
		dcc.Logf("Dumping %d samples to STDOUT...", ds.Count())
		return csv.Write(os.Stdout, ds, encoders)
	}
	dcc.Logf("Dumping %d samples to %s...", ds.Count(), dcc.output)
	f, err := os.Create(dcc.output)
	if err != nil {
		return fmt.Errorf("creating output dataset at %s: %v", dcc.output, err)
	}
	defer f.Close()
	return csv.Write(f, ds, encoders)
}
