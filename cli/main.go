package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/ztx/internal/cli"
	"github.com/trebuchet-org/ztx/internal/cli/render"
	"github.com/trebuchet-org/ztx/internal/config"
)

// Set by the linker
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}
