package promptlib

import (
	"github.com/mark3labs/mcp-go/server"

	"eamcp/internal/logging"
)

const (
	// ServerName identifies this MCP server to clients.
	ServerName = "ea-prompts"

	// ServerVersion is the advertised server version.
	ServerVersion = "1.0.0"
)

const serverInstructions = `Prompt library demonstrating the MCP Prompts capability.
Five built-in prompts (code-review, explain-code, write-tests, refactor, debug)
are available as slash commands. Use ea_add_prompt to save your own templates,
ea_list_prompts to browse the library, and ea_remove_prompt to delete custom ones.`

// NewServer builds the ea-prompts MCP server with all prompts and tools registered.
func NewServer(logger *logging.AppLogger) (*server.MCPServer, error) {
	store, err := NewStore(logger)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(ServerName, ServerVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	registerBuiltinPrompts(s)
	s.AddTool(AddPromptTool(store))
	s.AddTool(ListPromptsTool(store))
	s.AddTool(RemovePromptTool(store))

	return s, nil
}
