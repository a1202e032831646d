// Package main is the entry point of the brainstormer. It parses the
// command line, wires the components together and runs the interactive loop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "brainstormer: %v\n", err)
		os.Exit(1)
	}
}
