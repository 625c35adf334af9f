package promptlib

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	minNameLength        = 2
	maxNameLength        = 50
	minDescriptionLength = 5
	maxDescriptionLength = 200
	minTemplateLength    = 10
	maxTemplateLength    = 5000
)

// AddPromptTool creates a reusable custom prompt template.
func AddPromptTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_add_prompt",
		mcp.WithDescription("Add a custom prompt to your library. Create a reusable prompt template; use {arg_name} syntax for variable substitution."),
		mcp.WithTitleAnnotation("Add Custom Prompt"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Unique name for the prompt (lowercase, hyphens allowed)"),
			mcp.MinLength(minNameLength),
			mcp.MaxLength(maxNameLength),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What this prompt does"),
			mcp.MinLength(minDescriptionLength),
			mcp.MaxLength(maxDescriptionLength),
		),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Description("The prompt template (use {arg_name} for variables)"),
			mcp.MinLength(minTemplateLength),
			mcp.MaxLength(maxTemplateLength),
		),
		mcp.WithString("arguments",
			mcp.Description("Comma-separated list of argument names (e.g., 'code,context')"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name = strings.TrimSpace(name)
		if len(name) < minNameLength || len(name) > maxNameLength {
			return mcp.NewToolResultError(fmt.Sprintf("name must be between %d and %d characters", minNameLength, maxNameLength)), nil
		}
		if !ValidPromptName(name) {
			return mcp.NewToolResultError("Name must be lowercase letters, numbers, and hyphens only, starting with a letter"), nil
		}
		if IsBuiltin(name) {
			return mcp.NewToolResultText(fmt.Sprintf("Error: '%s' is a built-in prompt and cannot be overwritten.", name)), nil
		}

		description, err := req.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		description = strings.TrimSpace(description)
		if len(description) < minDescriptionLength || len(description) > maxDescriptionLength {
			return mcp.NewToolResultError(fmt.Sprintf("description must be between %d and %d characters", minDescriptionLength, maxDescriptionLength)), nil
		}

		template, err := req.RequireString("template")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		template = strings.TrimSpace(template)
		if len(template) < minTemplateLength || len(template) > maxTemplateLength {
			return mcp.NewToolResultError(fmt.Sprintf("template must be between %d and %d characters", minTemplateLength, maxTemplateLength)), nil
		}

		args := ParseArguments(req.GetString("arguments", ""))

		prompt := Prompt{
			Name:        name,
			Description: description,
			Template:    template,
			Arguments:   args,
		}
		if err := store.Add(prompt); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save prompt: %v", err)), nil
		}

		argsDisplay := "none"
		if len(args) > 0 {
			names := make([]string, len(args))
			for i, a := range args {
				names[i] = a.Name
			}
			argsDisplay = strings.Join(names, ", ")
		}

		return mcp.NewToolResultText(fmt.Sprintf(`Custom prompt added: %s
Description: %s
Arguments: %s

Use with: /prompt %s`, name, description, argsDisplay, name)), nil
	}

	return tool, handler
}

// ListPromptsTool lists built-in and custom prompts.
func ListPromptsTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_list_prompts",
		mcp.WithDescription("List all available prompts, both built-in and any custom prompts you've added."),
		mcp.WithTitleAnnotation("List Available Prompts"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithBoolean("include_templates",
			mcp.Description("Show full template text (default: false)"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeTemplates := req.GetBool("include_templates", false)
		return mcp.NewToolResultText(formatPromptList(Builtins(), store.Custom(), includeTemplates)), nil
	}

	return tool, handler
}

// RemovePromptTool deletes a custom prompt after confirmation.
func RemovePromptTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_remove_prompt",
		mcp.WithDescription("Remove a custom prompt. Only custom prompts can be removed; built-in prompts are permanent."),
		mcp.WithTitleAnnotation("Remove Custom Prompt"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The prompt name to remove"),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to confirm deletion"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name = strings.TrimSpace(name)

		if !req.GetBool("confirm", false) {
			return mcp.NewToolResultText("Set confirm=true to delete. This cannot be undone."), nil
		}

		if IsBuiltin(name) {
			return mcp.NewToolResultText(fmt.Sprintf("Error: '%s' is a built-in prompt and cannot be removed.", name)), nil
		}

		removed, err := store.Remove(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to remove prompt: %v", err)), nil
		}
		if !removed {
			return mcp.NewToolResultText(fmt.Sprintf("Custom prompt not found: %s. Use ea_list_prompts to see available prompts.", name)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Removed custom prompt: %s", name)), nil
	}

	return tool, handler
}

// ParseArguments converts a comma-separated list of argument names into
// required arguments with generated descriptions.
func ParseArguments(raw string) []Argument {
	if raw == "" {
		return nil
	}
	var args []Argument
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		args = append(args, Argument{
			Name:        name,
			Description: fmt.Sprintf("Value for %s", name),
			Required:    true,
		})
	}
	return args
}

func formatPromptList(builtins, custom []Prompt, includeTemplates bool) string {
	sorted := make([]Prompt, len(builtins))
	copy(sorted, builtins)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var out []string
	out = append(out, "# Available Prompts\n")
	out = append(out, "## Built-in Prompts\n")
	out = appendPromptSection(out, sorted, includeTemplates)

	if len(custom) > 0 {
		out = append(out, "## Custom Prompts\n")
		out = appendPromptSection(out, custom, includeTemplates)
	}

	out = append(out, fmt.Sprintf("**Total:** %d built-in, %d custom", len(builtins), len(custom)))
	return strings.Join(out, "\n")
}

func appendPromptSection(out []string, prompts []Prompt, includeTemplates bool) []string {
	for _, p := range prompts {
		args := make([]string, len(p.Arguments))
		for i, a := range p.Arguments {
			args[i] = a.Name
		}
		argsDisplay := strings.Join(args, ", ")
		if argsDisplay == "" {
			argsDisplay = "none"
		}
		out = append(out, fmt.Sprintf("### %s", p.Name))
		out = append(out, fmt.Sprintf("**Description:** %s", p.Description))
		out = append(out, fmt.Sprintf("**Arguments:** %s", argsDisplay))
		if includeTemplates {
			out = append(out, fmt.Sprintf("\n```\n%s\n```", p.Template))
		}
		out = append(out, "")
	}
	return out
}
