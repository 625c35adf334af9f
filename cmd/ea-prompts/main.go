// Package main is the entry point for the ea-prompts MCP server.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	"eamcp/internal/logging"
	"eamcp/internal/promptlib"
)

func main() {
	logger := logging.NewAppLogger("ea-prompts")

	s, err := promptlib.NewServer(logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	logger.Debug("starting ea-prompts server")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
