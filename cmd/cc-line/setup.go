package main

import (
	"fmt"
	"os"

	"github.com/nixlim/cc-line/internal/settings"
)

// RunSetup merges the statusLine block into ~/.claude/settings.json
// and prints the result.
//
// Exit codes:
//   - 0: success, already configured, or skipped
//   - 1: error
func RunSetup(force bool) {
	output := settings.Merge(settings.MergeOptions{
		Force: force,
	})

	for _, msg := range output.Messages {
		fmt.Println(msg)
	}
	for _, w := range output.Warnings {
		fmt.Fprintln(os.Stderr, w)
	}

	switch output.Result {
	case settings.MergeSuccess:
		fmt.Println("Settings updated. New Claude Code sessions will use cc-line.")
		os.Exit(0)
	case settings.MergeAlreadyConfigured:
		fmt.Println("Already configured. No changes needed.")
		os.Exit(0)
	case settings.MergeSkipped:
		os.Exit(0)
	case settings.MergeError:
		fmt.Fprintf(os.Stderr, "Error: %v\n", output.Err)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Unexpected result: %v\n", output.Result)
		os.Exit(1)
	}
}
