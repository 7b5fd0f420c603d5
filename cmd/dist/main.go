// Package main is the entry point for the dist CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/dist/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
