package promptlib

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// promptDefaults holds fallback values for optional prompt arguments.
var promptDefaults = map[string]map[string]string{
	"debug": {"steps": "Not provided"},
}

// registerBuiltinPrompts exposes the built-in templates through the MCP
// prompts capability so clients can invoke them as /prompt commands.
func registerBuiltinPrompts(s *server.MCPServer) {
	for _, p := range Builtins() {
		s.AddPrompt(builtinPrompt(p))
	}
}

func builtinPrompt(p Prompt) (mcp.Prompt, server.PromptHandlerFunc) {
	opts := []mcp.PromptOption{mcp.WithPromptDescription(p.Description)}
	for _, arg := range p.Arguments {
		argOpts := []mcp.ArgumentOption{mcp.ArgumentDescription(arg.Description)}
		if arg.Required {
			argOpts = append(argOpts, mcp.RequiredArgument())
		}
		opts = append(opts, mcp.WithArgument(arg.Name, argOpts...))
	}

	handler := func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		text, err := p.Render(req.Params.Arguments, promptDefaults[p.Name])
		if err != nil {
			return nil, err
		}
		return mcp.NewGetPromptResult(p.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}

	return mcp.NewPrompt(p.Name, opts...), handler
}
