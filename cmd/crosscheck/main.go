package main

import (
	"os"

	"github.com/dshills/crosscheck/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
