// Package main is the entry point for the prism CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/prism/cmd/prism/commands"
	"github.com/thoreinstein/prism/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}
