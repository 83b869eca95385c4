package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sdejongh/convcheck/internal/cli"
	"github.com/sdejongh/convcheck/pkg/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()
	if err != nil && !errors.Is(err, models.ErrRegression) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(models.ExitCode(err))
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	rootCmd := cli.NewRootCommand(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	return rootCmd.Execute()
}
