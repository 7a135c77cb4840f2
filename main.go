// ./main.go
package main

import (
	"github.com/veldtworks/blockgraph/cmd"
)

// main is the entry point for the blockgraph CLI.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
