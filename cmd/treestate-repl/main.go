// Command treestate-repl is an interactive shell over a treestate store.
//
// It loads an initial spec tree from YAML, applies edits by path or by
// node id and prints the resulting tree, the cursor and the last event.
package main

import (
	"fmt"
	"os"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.applyTracing(); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring tracing: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Treestate REPL - Interactive Tree State Demo")
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println()

	repl, err := NewREPL(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
		os.Exit(1)
	}
	repl.Run(os.Stdin, "treestate> ")
}
