package memory

import (
	"eamcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "ea-memory"
	serverVersion = "1.0.0"
)

// NewServer builds the ea-memory MCP server with its store and all four
// tools wired. The caller starts it with server.ServeStdio.
func NewServer(logger *logging.AppLogger) (*server.MCPServer, error) {
	store, err := NewStore(logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Memory store ready", "dir", store.Dir())

	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Simple memory system with tagging for Claude Code. Use ea_remember to store information, ea_recall to search it, ea_list to browse, and ea_forget to delete."),
	)

	s.AddTool(RememberTool(store))
	s.AddTool(RecallTool(store))
	s.AddTool(ListTool(store))
	s.AddTool(ForgetTool(store))

	return s, nil
}
