// Package main provides the entry point for the scholarseek CLI.
package main

import (
	"os"

	"github.com/vidyarthi-io/scholarseek/cmd/scholarseek/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
