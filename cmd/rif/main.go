package main

import (
	"os"

	"github.com/rif-tools/rif/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
