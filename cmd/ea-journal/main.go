// Package main is the entry point for the ea-journal MCP server.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	"eamcp/internal/journal"
	"eamcp/internal/logging"
)

func main() {
	logger := logging.NewAppLogger("ea-journal")

	s, err := journal.NewServer(logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	logger.Debug("starting ea-journal server")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
