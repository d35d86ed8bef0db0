package main

import (
	"fmt"
	"os"

	"actionpin.dev/actionpin/internal/cli"
	"actionpin.dev/actionpin/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, tui.ColorRed("ERROR: "+err.Error()))
		os.Exit(1)
	}
}
