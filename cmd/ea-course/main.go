// Package main is the entry point for the ea-course CLI.
//
// The CLI is the student-facing side of the course: it lists and renders the
// course guides, browses them interactively, prints the curated third-party
// MCP server catalog with ready-to-paste config, and syncs course content
// from the configured Git repository.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eamcp/internal/logging"
)

func main() {
	logger := logging.NewAppLogger("ea-course")

	root := &cobra.Command{
		Use:   "ea-course",
		Short: "Companion CLI for the Claude Code MCP course",
		Long: `ea-course is the companion CLI for the MCP course module.

It renders the course guides, lists curated third-party MCP servers with
ready-to-paste Claude Code configuration, and keeps a local copy of the
course content repository in sync.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newGuidesCommand(logger),
		newBrowseCommand(logger),
		newServersCommand(logger),
		newSyncCommand(logger),
		newTokenCommand(logger),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
