// Package main provides the CLI entry point for unitscan.
package main

import (
	"os"

	"github.com/leapstack-labs/unitscan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
