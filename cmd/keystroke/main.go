// Package main is the entry point for the keystroke tool.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/keystroke/internal/cli"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
