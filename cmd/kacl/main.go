package main

import (
	"os"

	"github.com/kacl-dev/kacl/internal/cli"
	"github.com/kacl-dev/kacl/internal/cli/shared"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(shared.ExitCode(err))
	}
}
