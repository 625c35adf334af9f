// Package main is the entry point for the ea-memory MCP server.
//
// The server speaks JSON-RPC over stdio, so all logging goes to stderr
// or a debug file; stdout is reserved for the protocol.
package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"

	"eamcp/internal/logging"
	"eamcp/internal/memory"
)

func main() {
	logger := logging.NewAppLogger("ea-memory")

	s, err := memory.NewServer(logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	logger.Debug("starting ea-memory server")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
