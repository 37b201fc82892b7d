package main

import (
	"os"

	"github.com/brandonbloom/lintfix/internal/wrapper"
)

func main() {
	os.Exit(wrapper.Main(os.Args[1:]))
}
