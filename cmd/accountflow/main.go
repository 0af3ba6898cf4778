package main

import (
	"os"

	"github.com/accountflow/accountflow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
