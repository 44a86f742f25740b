package main

import (
	"os"

	"github.com/printmarket-dev/printmarket/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
