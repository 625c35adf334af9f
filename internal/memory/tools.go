package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RememberTool stores a new memory with optional tags and importance.
func RememberTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_remember",
		mcp.WithDescription("Store a memory with optional tags and importance. Memories persist between sessions and can be searched by content or tags."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The information to remember"),
			mcp.MaxLength(maxContentLength),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags (e.g. 'python,bugfix,api')"),
		),
		mcp.WithNumber("importance",
			mcp.Description("Priority 1-100 (default: 50)"),
			mcp.Min(1),
			mcp.Max(100),
		),
		mcp.WithTitleAnnotation("Remember Information"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := req.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return mcp.NewToolResultError("content cannot be empty"), nil
		}
		if len(content) > maxContentLength {
			return mcp.NewToolResultError(fmt.Sprintf("content exceeds %d characters", maxContentLength)), nil
		}

		importance := req.GetInt("importance", defaultImportance)
		if importance < 1 || importance > 100 {
			return mcp.NewToolResultError("importance must be between 1 and 100"), nil
		}

		tags := ParseTags(req.GetString("tags", ""))

		mem, err := store.Add(content, tags, importance)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		tagDisplay := "none"
		if len(mem.Tags) > 0 {
			tagDisplay = strings.Join(mem.Tags, ", ")
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Remembered: %s\nTags: %s\nImportance: %d/100\nCreated: %s",
			mem.ID, tagDisplay, mem.Importance, mem.CreatedDate(),
		)), nil
	}

	return tool, handler
}

// RecallTool searches memories by keyword.
func RecallTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_recall",
		mcp.WithDescription("Search memories by keyword or phrase. Results are sorted by importance (highest first)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to find in memory content"),
		),
		mcp.WithString("tags",
			mcp.Description("Filter by comma-separated tags (optional)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 10)"),
			mcp.Min(1),
			mcp.Max(maxRecallLimit),
		),
		mcp.WithTitleAnnotation("Search Memories"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		query = strings.TrimSpace(query)
		if query == "" {
			return mcp.NewToolResultError("query cannot be empty"), nil
		}

		limit := req.GetInt("limit", defaultRecallLimit)
		if limit < 1 || limit > maxRecallLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxRecallLimit)), nil
		}

		filterTags := ParseTags(req.GetString("tags", ""))

		results, total, err := store.Search(query, filterTags, limit)
		if err == ErrNoMemories {
			return mcp.NewToolResultText(emptyStoreMessage), nil
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No memories found matching: " + query), nil
		}

		return mcp.NewToolResultText(formatRecall(results, total)), nil
	}

	return tool, handler
}

// ListTool lists stored memories with optional tag filtering and pagination.
func ListTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_list",
		mcp.WithDescription("List all stored memories with optional filtering. Use offset for pagination through large memory collections."),
		mcp.WithString("tags",
			mcp.Description("Filter by comma-separated tags (optional)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default: 20)"),
			mcp.Min(1),
			mcp.Max(maxListLimit),
		),
		mcp.WithNumber("offset",
			mcp.Description("Skip this many results for pagination"),
			mcp.Min(0),
		),
		mcp.WithTitleAnnotation("List Memories"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", defaultListLimit)
		if limit < 1 || limit > maxListLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", maxListLimit)), nil
		}

		offset := req.GetInt("offset", 0)
		if offset < 0 {
			return mcp.NewToolResultError("offset cannot be negative"), nil
		}

		rawTags := req.GetString("tags", "")
		filterTags := ParseTags(rawTags)

		page, total, err := store.List(filterTags, limit, offset)
		if err == ErrNoMemories {
			return mcp.NewToolResultText(emptyStoreMessage), nil
		}
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if len(page) == 0 {
			if offset > 0 {
				return mcp.NewToolResultText(fmt.Sprintf("No more memories. Total: %d", total)), nil
			}
			return mcp.NewToolResultText("No memories found with tags: " + rawTags), nil
		}

		return mcp.NewToolResultText(formatList(page, total, offset)), nil
	}

	return tool, handler
}

// ForgetTool deletes a memory by id. Deletion is confirm-gated.
func ForgetTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_forget",
		mcp.WithDescription("Delete a memory by ID. Permanently removes a memory from storage. Requires confirmation to prevent accidental deletion."),
		mcp.WithString("memory_id",
			mcp.Required(),
			mcp.Description("The memory ID to delete (e.g. 'mem_0001')"),
		),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to confirm deletion"),
		),
		mcp.WithTitleAnnotation("Delete Memory"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !req.GetBool("confirm", false) {
			return mcp.NewToolResultText("Set confirm=true to delete. This action cannot be undone."), nil
		}

		id, err := req.RequireString("memory_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id = strings.TrimSpace(id)

		removed, found, err := store.Delete(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !found {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Memory not found: %s. Use ea_list to see available memory IDs.", id)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Deleted: %s\nContent was: %s", id, truncate(removed.Content, 100))), nil
	}

	return tool, handler
}

const (
	maxContentLength   = 10000
	defaultImportance  = 50
	defaultRecallLimit = 10
	maxRecallLimit     = 50
	defaultListLimit   = 20
	maxListLimit       = 100

	emptyStoreMessage = "No memories stored yet. Use ea_remember to store your first memory."
)

func formatRecall(results []Memory, total int) string {
	output := []string{fmt.Sprintf("# Found %d memories (showing %d)\n", total, len(results))}

	for _, mem := range results {
		tags := "none"
		if len(mem.Tags) > 0 {
			tags = strings.Join(mem.Tags, ", ")
		}
		output = append(output, fmt.Sprintf(
			"## [%s] Importance: %d/100\n**Tags:** %s\n**Created:** %s\n\n%s\n\n---",
			mem.ID, mem.Importance, tags, mem.CreatedDate(), mem.Content,
		))
	}

	if total > len(results) {
		output = append(output, fmt.Sprintf(
			"\n*%d more results available. Increase limit to see more.*", total-len(results)))
	}

	return strings.Join(output, "\n")
}

func formatList(page []Memory, total, offset int) string {
	output := []string{
		fmt.Sprintf("# Memories (%d of %d)\n", len(page), total),
		"| ID | Preview | Tags | Importance | Created |",
		"|-----|---------|------|------------|---------|",
	}

	for _, mem := range page {
		// Table cells cannot hold newlines or pipes
		preview := strings.ReplaceAll(mem.Content, "\n", " ")
		preview = strings.ReplaceAll(preview, "|", "/")
		preview = truncate(preview, 50)

		tags := "-"
		if len(mem.Tags) > 0 {
			shown := mem.Tags
			if len(shown) > 3 {
				shown = shown[:3]
			}
			tags = strings.Join(shown, ", ")
		}

		output = append(output, fmt.Sprintf("| %s | %s | %s | %d | %s |",
			mem.ID, preview, tags, mem.Importance, mem.CreatedDate()))
	}

	output = append(output, "")
	if offset+len(page) < total {
		output = append(output, fmt.Sprintf(
			"*More results available. Use offset=%d to see next page.*", offset+len(page)))
	}
	output = append(output, fmt.Sprintf("**Total:** %d | **Showing:** %d-%d",
		total, offset+1, offset+len(page)))

	return strings.Join(output, "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
