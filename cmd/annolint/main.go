package main

import (
	"os"

	"github.com/annolint/annolint/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
