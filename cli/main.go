package main

import (
	"os"

	"github.com/zkmochi/mochi-cli/internal/cli"
	"github.com/zkmochi/mochi-cli/internal/config"
)

// Set by goreleaser ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(cli.HandleError(os.Stdout, os.Stderr, err))
	}
}
