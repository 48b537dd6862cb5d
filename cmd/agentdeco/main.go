package main

import (
	"os"

	"github.com/psantana5/agentdeco/cmd/agentdeco/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
