package main

import (
	"os"

	"github.com/dshills/docsync/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
