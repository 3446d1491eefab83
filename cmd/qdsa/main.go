package main

import (
	"fmt"
	"os"

	"qdsa.mleku.dev/cmd/qdsa/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
