package main

import (
	"os"

	"github.com/brandonbloom/lintfix/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
