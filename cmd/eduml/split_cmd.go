package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonas-mika/eduml/dataset"
	"github.com/jonas-mika/eduml/dataset/csv"
)

type splitCmdConfig struct {
	*datasetCmdConfig
	trainOutput string
	testOutput  string
}

func splitCmd(datasetConfig *datasetCmdConfig) *cobra.Command {
	config := &splitCmdConfig{datasetCmdConfig: datasetConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into a training and a test partition",
		Long:  `Read a dataset, shuffle it and dump a training and a test CSV file.`,
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
			train, test, err := ds.Split(config.testSize, config.seed)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Dumping %d training samples to %s and %d test samples to %s...", train.Count(), config.trainOutput, test.Count(), config.testOutput)
			err = writeCSVFile(config.trainOutput, train, encoders)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			err = writeCSVFile(config.testOutput, test, encoders)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVar(&(config.trainOutput), "train-output", "train.csv", "path to the CSV file for the training partition")
	cmd.PersistentFlags().StringVar(&(config.testOutput), "test-output", "test.csv", "path to the CSV file for the test partition")
	cmd.PersistentFlags().Float64Var(&(config.testSize), "test-size", 0.25, "fraction of the dataset assigned to the test partition")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 1, "seed for the shuffle")
	return cmd
}

func writeCSVFile(path string, ds *dataset.Dataset, encoders map[string]*dataset.LabelEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset at %s: %v", path, err)
	}
	defer f.Close()
	return csv.Write(f, ds, encoders)
}
