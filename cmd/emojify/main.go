// Package main is the entry point for the emojify CLI.
package main

import (
	"os"

	"github.com/f3rmion/emojify/cmd/emojify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
