// Package main is the entry point for the glctl CLI.
package main

import (
	"os"

	"github.com/SscSPs/general_ledger/cmd/glctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
