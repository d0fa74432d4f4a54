package main

import (
	"os"

	"layoutlint/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
