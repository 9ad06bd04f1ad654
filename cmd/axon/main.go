// Command axon lexes, parses, compiles, and runs Axon programs.
package main

import (
	"os"

	"github.com/axon-lang/axon/cmd/axon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
