package main

import (
	"os"

	"github.com/temirov/gitpurge/cmd/cli"
)

// main executes the git-purge command-line application.
func main() {
	os.Exit(cli.Execute())
}
