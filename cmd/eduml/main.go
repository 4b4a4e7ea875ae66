package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eduml",
		Short: "eduml is a toolbox of from-scratch supervised learning models",
		Long:  `A tool to train decision trees, logistic regression and support-vector classifiers on your data, evaluate them, and use them to make predictions`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), predictCmd(config), evaluateCmd(config), datasetCmd(config))
	return rootCmd
}
