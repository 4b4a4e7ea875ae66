package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is overridden at build time with
// -ldflags "-X main.version=...".
var version = "0.1.0-dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of eduml",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("eduml %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
