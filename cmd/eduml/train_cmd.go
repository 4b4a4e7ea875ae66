package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonas-mika/eduml/metrics"
	"github.com/jonas-mika/eduml/tree"
)

type trainCmdConfig struct {
	inputConfig
	regression        bool
	maxDepth          int
	maxNodes          int
	maxLeafNodes      int
	minSamplesPerLeaf int
}

func (tcc *trainCmdConfig) treeConfig() tree.Config {
	return tree.Config{
		MaxDepth:          tcc.maxDepth,
		MaxNodes:          tcc.maxNodes,
		MaxLeafNodes:      tcc.maxLeafNodes,
		MinSamplesPerLeaf: tcc.minSamplesPerLeaf,
	}
}

func (tcc *trainCmdConfig) tree() *tree.Tree {
	if tcc.regression {
		return tree.NewRegressor(tcc.treeConfig())
	}
	return tree.NewClassifier(tcc.treeConfig())
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a decision tree on a dataset",
		Long:  `Train a decision tree on a dataset to predict a certain column and print its structure.`,
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
			ds, _, err := config.readDataset(ctx, md)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			t := config.tree()
			config.Logf("Training decision tree on %d samples and %d features to predict %s ...", ds.Count(), len(ds.Features), ds.Label)
			err = t.Fit(ctx, ds.X, ds.Y)
			if err != nil {
				fmt.Fprintf(os.Stderr, "training the tree: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
			preds, err := t.Predict(ctx, ds.X)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting the training set: %v\n", err)
				os.Exit(5)
			}
			fmt.Println(t)
			fmt.Printf("nodes: %d, leaves: %d\n", t.Len(), t.NumLeafNodes())
			if config.regression {
				mse, err := metrics.MSE(ds.Y, preds)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
				fmt.Printf("training MSE: %v\n", mse)
			} else {
				accuracy, err := metrics.Accuracy(ds.Y, preds)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
				fmt.Printf("training accuracy: %v\n", accuracy)
			}
		},
	}
	registerInputFlags(cmd, &config.inputConfig)
	registerTreeFlags(cmd, config)
	return cmd
}

func registerInputFlags(cmd *cobra.Command, config *inputConfig) {
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB/redis URL with data to train on (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the columns available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.labelColumn), "label", "c", "", "name of the column the model should predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.table), "table", "t", "samples", "table, collection or key prefix holding the samples on database inputs")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func registerTreeFlags(cmd *cobra.Command, config *trainCmdConfig) {
	cmd.PersistentFlags().BoolVar(&(config.regression), "regression", false, "train a regression tree instead of a classification tree")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", 0, "maximum depth at which a node may still be split (defaults to 0: no limit)")
	cmd.PersistentFlags().IntVar(&(config.maxNodes), "max-nodes", 0, "maximum total number of nodes (defaults to 0: no limit)")
	cmd.PersistentFlags().IntVar(&(config.maxLeafNodes), "max-leaf-nodes", 0, "maximum number of leaf nodes (defaults to 0: no limit)")
	cmd.PersistentFlags().IntVar(&(config.minSamplesPerLeaf), "min-samples-per-leaf", 1, "minimum number of samples a node must exceed to be split")
}
