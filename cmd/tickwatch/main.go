// Command tickwatch is the terminal stock and ETF tracker.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rshade/tickwatch/internal/cli"
	"github.com/rshade/tickwatch/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps the outcome to an exit code. Split from
// main so tests can reference it without exiting the test process.
func run() int {
	// Fold .env into the environment for FINNHUB_API_KEY; a missing
	// file is the normal case.
	_ = godotenv.Load()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
