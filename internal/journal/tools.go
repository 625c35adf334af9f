package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	maxContentLength = 5000
	maxProjectLength = 100
	maxLookbackDays  = 365
)

// LogTool records a new journal entry.
func LogTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_log",
		mcp.WithDescription("Log a journal entry. Record work completed, decisions made, blockers encountered, wins achieved, or lessons learned. Entries are automatically timestamped and organized by date."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("What you want to log"),
			mcp.MaxLength(maxContentLength),
		),
		mcp.WithString("entry_type",
			mcp.Description("Type of entry: work, decision, blocker, note, win, or learning"),
			mcp.Enum("work", "decision", "blocker", "note", "win", "learning"),
		),
		mcp.WithString("project",
			mcp.Description("Optional project name for context"),
			mcp.MaxLength(maxProjectLength),
		),
		mcp.WithTitleAnnotation("Log Journal Entry"),
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

		entryType := strings.TrimSpace(req.GetString("entry_type", string(TypeNote)))
		if entryType == "" {
			entryType = string(TypeNote)
		}
		if !ValidEntryType(entryType) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"invalid entry_type %q: must be one of work, decision, blocker, note, win, learning", entryType)), nil
		}

		project := strings.TrimSpace(req.GetString("project", ""))
		if len(project) > maxProjectLength {
			return mcp.NewToolResultError(fmt.Sprintf("project exceeds %d characters", maxProjectLength)), nil
		}

		entry, err := store.Log(content, EntryType(entryType), project)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		projectLine := ""
		if entry.Project != "" {
			projectLine = "Project: " + entry.Project + "\n"
		}

		return mcp.NewToolResultText(fmt.Sprintf("Logged %s at %s\n%sEntry: %s",
			strings.ToUpper(string(entry.Type)), entry.Time(), projectLine,
			truncate(entry.Content, 100))), nil
	}

	return tool, handler
}

// TodayTool shows today's entries grouped by type.
func TodayTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_today",
		mcp.WithDescription("View today's journal entries. Shows all entries for today, optionally filtered by type. Entries are grouped by type for easy scanning."),
		mcp.WithString("entry_type",
			mcp.Description("Filter by type (optional)"),
			mcp.Enum("work", "decision", "blocker", "note", "win", "learning"),
		),
		mcp.WithTitleAnnotation("View Today's Journal"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, errResult := entryTypeFilter(req)
		if errResult != nil {
			return errResult, nil
		}

		all := store.Today("")
		if len(all) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No journal entries for today (%s). Use ea_log to add your first entry!",
				store.Now().Format(dateLayout))), nil
		}

		entries := filterEntries(all, filter)
		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No %s entries for today.", filter)), nil
		}

		return mcp.NewToolResultText(formatToday(store.Now(), entries)), nil
	}

	return tool, handler
}

// ReviewTool shows entries from a specific date or a look-back window.
func ReviewTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_review",
		mcp.WithDescription("Review journal entries from a specific date or date range. Look back at past entries to review decisions, track progress, or find patterns in blockers."),
		mcp.WithString("date",
			mcp.Description("Specific date in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days to look back (overrides date)"),
			mcp.Min(1),
			mcp.Max(maxLookbackDays),
		),
		mcp.WithString("entry_type",
			mcp.Description("Filter by type (optional)"),
			mcp.Enum("work", "decision", "blocker", "note", "win", "learning"),
		),
		mcp.WithTitleAnnotation("Review Past Entries"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter, errResult := entryTypeFilter(req)
		if errResult != nil {
			return errResult, nil
		}

		days := req.GetInt("days", 0)
		if days < 0 || days > maxLookbackDays {
			return mcp.NewToolResultError(fmt.Sprintf("days must be between 1 and %d", maxLookbackDays)), nil
		}

		var entries []Entry
		var header string

		switch {
		case days > 0:
			entries = store.Range(days, "")
			header = fmt.Sprintf("# Journal - Last %d Days\n", days)
			if len(entries) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf(
					"No journal entries in the last %d days.", days)), nil
			}
		default:
			day := store.Now()
			if date := strings.TrimSpace(req.GetString("date", "")); date != "" {
				parsed, err := ParseDate(date)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				day = parsed
			}
			entries = store.OnDate(day, "")
			header = fmt.Sprintf("# Journal - %s\n", day.Format(dateLayout))
			if len(entries) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf(
					"No journal entries for %s.", day.Format(dateLayout))), nil
			}
		}

		entries = filterEntries(entries, filter)
		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No %s entries found.", filter)), nil
		}

		return mcp.NewToolResultText(formatReview(header, entries)), nil
	}

	return tool, handler
}

// SummaryTool generates a work summary over a look-back window.
func SummaryTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_summary",
		mcp.WithDescription("Generate a summary of work over time. Creates a high-level overview with statistics, highlights of wins, recurring blockers, and key learnings."),
		mcp.WithNumber("days",
			mcp.Description("Number of days to summarize (default: 7)"),
			mcp.Min(1),
			mcp.Max(maxLookbackDays),
		),
		mcp.WithTitleAnnotation("Generate Work Summary"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days := req.GetInt("days", 7)
		if days < 1 || days > maxLookbackDays {
			return mcp.NewToolResultError(fmt.Sprintf("days must be between 1 and %d", maxLookbackDays)), nil
		}

		activeDays, entries := store.ActiveDays(days)
		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No journal entries in the last %d days. Start journaling with ea_log!", days)), nil
		}

		return mcp.NewToolResultText(formatSummary(store.Now(), days, activeDays, entries)), nil
	}

	return tool, handler
}

// StatusTool reports server metadata and journaling statistics.
func StatusTool(store *Store) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("ea_journal_status",
		mcp.WithDescription("Get server status and metadata. Returns information about this MCP server including version, available tools, and current journaling statistics."),
		mcp.WithTitleAnnotation("Server Status"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(formatStatus(store)), nil
	}

	return tool, handler
}

// entryTypeFilter extracts and validates the optional entry_type argument.
// The second return value is a ready error result when validation fails.
func entryTypeFilter(req mcp.CallToolRequest) (EntryType, *mcp.CallToolResult) {
	raw := strings.TrimSpace(req.GetString("entry_type", ""))
	if raw == "" {
		return "", nil
	}
	if !ValidEntryType(raw) {
		return "", mcp.NewToolResultError(fmt.Sprintf(
			"invalid entry_type %q: must be one of work, decision, blocker, note, win, learning", raw))
	}
	return EntryType(raw), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
