package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	eduml "github.com/jonas-mika/eduml"
	"github.com/jonas-mika/eduml/linear"
	"github.com/jonas-mika/eduml/metrics"
	"github.com/jonas-mika/eduml/svm"
)

type evaluateCmdConfig struct {
	trainCmdConfig
	model         string
	testSize      float64
	seed          int64
	epochs        int
	learningRate  float64
	boxConstraint float64
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &evaluateCmdConfig{trainCmdConfig: trainCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a model on a holdout split of a dataset",
		Long:  `Split a dataset into a training and a test partition, train a model on the first and report its performance on the second.`,
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
			train, test, err := ds.Split(config.testSize, config.seed)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			model, err := config.buildModel()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Training %s on %d samples, evaluating on %d ...", config.model, train.Count(), test.Count())
			err = model.Fit(ctx, train.X, train.Y)
			if err != nil {
				fmt.Fprintf(os.Stderr, "training %s: %v\n", config.model, err)
				os.Exit(6)
			}
			preds, err := model.Predict(ctx, test.X)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting the test partition: %v\n", err)
				os.Exit(7)
			}
			if config.regression {
				mse, err := metrics.MSE(test.Y, preds)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(8)
				}
				fmt.Printf("test MSE: %v\n", mse)
				return
			}
			accuracy, err := metrics.Accuracy(test.Y, preds)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			confusion, classes, err := metrics.ConfusionMatrix(test.Y, preds)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			fmt.Printf("test accuracy: %v\n", accuracy)
			fmt.Printf("classes: %v\n", classes)
			for i, row := range confusion {
				fmt.Printf("%v: %v\n", classes[i], row)
			}
		},
	}
	registerInputFlags(cmd, &config.inputConfig)
	registerTreeFlags(cmd, &config.trainCmdConfig)
	cmd.PersistentFlags().StringVar(&(config.model), "model", "tree", "model family to evaluate: tree, logistic, svm-hard or svm-soft")
	cmd.PersistentFlags().Float64Var(&(config.testSize), "test-size", 0.25, "fraction of the dataset held out for testing")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 1, "seed for the shuffle of the holdout split")
	cmd.PersistentFlags().IntVar(&(config.epochs), "epochs", 100000, "epoch budget for logistic regression")
	cmd.PersistentFlags().Float64Var(&(config.learningRate), "learning-rate", 0.01, "learning rate for logistic regression")
	cmd.PersistentFlags().Float64Var(&(config.boxConstraint), "C", 1.0, "box constraint for the soft margin SVC")
	return cmd
}

// buildModel constructs the model family named by the model
// flag.
func (ecc *evaluateCmdConfig) buildModel() (eduml.Model, error) {
	switch ecc.model {
	case "tree":
		return ecc.tree(), nil
	case "logistic":
		return linear.NewLogisticRegression(ecc.epochs, ecc.learningRate), nil
	case "svm-hard":
		return svm.NewHardMarginSVC(), nil
	case "svm-soft":
		return svm.NewSoftMarginSVC(ecc.boxConstraint), nil
	}
	return nil, fmt.Errorf("unknown model %q", ecc.model)
}

func (ecc *evaluateCmdConfig) Validate() error {
	if err := ecc.inputConfig.Validate(); err != nil {
		return err
	}
	if ecc.regression && ecc.model != "tree" {
		return fmt.Errorf("only the tree model supports regression")
	}
	return nil
}
