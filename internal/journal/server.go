package journal

import (
	"eamcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

// NewServer builds the ea-journal MCP server with its store and all five
// tools wired. The caller starts it with server.ServeStdio.
func NewServer(logger *logging.AppLogger) (*server.MCPServer, error) {
	store, err := NewStore(logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Journal store ready", "dir", store.Dir())

	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Daily work journal for tracking progress, decisions, and blockers. Use ea_log to record entries, ea_today and ea_review to read them back, and ea_summary for an overview."),
	)

	s.AddTool(LogTool(store))
	s.AddTool(TodayTool(store))
	s.AddTool(ReviewTool(store))
	s.AddTool(SummaryTool(store))
	s.AddTool(StatusTool(store))

	return s, nil
}
