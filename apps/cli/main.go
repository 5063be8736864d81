package main

import (
	"os"

	"github.com/trezcool/studytrack/apps/cli/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
