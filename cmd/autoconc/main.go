package main

import (
	"os"

	"github.com/bityantriki/autoconc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
