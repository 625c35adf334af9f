package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Server metadata surfaced by ea_journal_status.
const (
	ServerName    = "ea-journal"
	ServerVersion = "1.0.0"

	serverAuthor      = "Early AI Adopters"
	serverCourse      = "Claude Code Fundamentals"
	serverModule      = "04 - MCP Servers"
	serverDescription = "Daily work journal for tracking progress, decisions, and blockers"
)

var toolDescriptions = []struct {
	name        string
	description string
}{
	{"ea_log", "Log an entry (work, decision, blocker, note, win, learning)"},
	{"ea_today", "View today's journal entries"},
	{"ea_review", "Review entries from a specific date or range"},
	{"ea_summary", "Generate a summary of work over time"},
	{"ea_journal_status", "Get server status and metadata"},
}

// formatEntry renders one entry as a markdown block. When showDate is set the
// date is prefixed to the entry time.
func formatEntry(e Entry, showDate bool) string {
	datePrefix := ""
	if showDate {
		datePrefix = e.Date() + " "
	}
	projectSuffix := ""
	if e.Project != "" {
		projectSuffix = " [" + e.Project + "]"
	}

	return fmt.Sprintf("**[%s%s] %s%s**\n%s\n",
		datePrefix, e.Time(), strings.ToUpper(string(e.Type)), projectSuffix, e.Content)
}

// typeTitle returns the plural section heading for an entry type ("work" ->
// "Works").
func typeTitle(t EntryType) string {
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:] + "s"
}

func formatToday(now time.Time, entries []Entry) string {
	byType := make(map[EntryType][]Entry)
	for _, e := range entries {
		byType[e.Type] = append(byType[e.Type], e)
	}

	output := []string{fmt.Sprintf("# Journal - %s\n", now.Format("Monday, January 02, 2006"))}

	// Summary counts, alphabetical by type name
	var typeNames []string
	for t := range byType {
		typeNames = append(typeNames, string(t))
	}
	sort.Strings(typeNames)

	var counts []string
	for _, name := range typeNames {
		n := len(byType[EntryType(name)])
		plural := ""
		if n > 1 {
			plural = "s"
		}
		counts = append(counts, fmt.Sprintf("%d %s%s", n, name, plural))
	}
	output = append(output, "**Summary:** "+strings.Join(counts, ", "))
	output = append(output, "\n---\n")

	// Sections in canonical type order
	for _, t := range EntryTypes {
		group, ok := byType[t]
		if !ok {
			continue
		}
		output = append(output, fmt.Sprintf("## %s\n", typeTitle(t)))
		for _, e := range group {
			output = append(output, formatEntry(e, false))
		}
	}

	return strings.Join(output, "\n")
}

func formatReview(header string, entries []Entry) string {
	output := []string{header}
	output = append(output, fmt.Sprintf("**Total entries:** %d\n", len(entries)))
	output = append(output, "---\n")

	currentDate := ""
	for _, e := range entries {
		if e.Date() != currentDate {
			currentDate = e.Date()
			output = append(output, fmt.Sprintf("\n## %s\n", currentDate))
		}
		output = append(output, formatEntry(e, false))
	}

	return strings.Join(output, "\n")
}

func formatSummary(now time.Time, days, activeDays int, entries []Entry) string {
	byType := make(map[EntryType]int)
	byProject := make(map[string]int)
	for _, e := range entries {
		byType[e.Type]++

		project := e.Project
		if project == "" {
			project = "General"
		}
		byProject[project]++
	}

	startDate := now.AddDate(0, 0, -(days - 1)).Format(dateLayout)
	endDate := now.Format(dateLayout)

	output := []string{fmt.Sprintf("# Work Summary - Last %d Days\n", days)}
	output = append(output, fmt.Sprintf("**Period:** %s to %s", startDate, endDate))
	output = append(output, fmt.Sprintf("**Active days:** %d of %d", activeDays, days))
	output = append(output, fmt.Sprintf("**Total entries:** %d", len(entries)))
	output = append(output, "")

	output = append(output, "## Entry Types\n")
	for _, t := range EntryTypes {
		if n, ok := byType[t]; ok {
			output = append(output, fmt.Sprintf("- **%s:** %d", typeTitle(t), n))
		}
	}

	// Project breakdown is only interesting once a real project shows up
	_, onlyGeneral := byProject["General"]
	if len(byProject) > 1 || !onlyGeneral {
		type projectCount struct {
			name  string
			count int
		}
		var projects []projectCount
		for name, count := range byProject {
			projects = append(projects, projectCount{name, count})
		}
		sort.Slice(projects, func(i, j int) bool {
			if projects[i].count != projects[j].count {
				return projects[i].count > projects[j].count
			}
			return projects[i].name < projects[j].name
		})

		output = append(output, "\n## Projects\n")
		for _, p := range projects {
			output = append(output, fmt.Sprintf("- **%s:** %d entries", p.name, p.count))
		}
	}

	output = append(output, highlightSection("Wins", entries, TypeWin)...)
	output = append(output, highlightSection("Blockers", entries, TypeBlocker)...)
	output = append(output, highlightSection("Learnings", entries, TypeLearning)...)

	return strings.Join(output, "\n")
}

// highlightSection renders up to five entries of one type as preview bullets.
func highlightSection(title string, entries []Entry, t EntryType) []string {
	matched := filterEntries(entries, t)
	if len(matched) == 0 {
		return nil
	}
	if len(matched) > 5 {
		matched = matched[:5]
	}

	output := []string{"\n## " + title + "\n"}
	for _, e := range matched {
		preview := []rune(e.Content)
		if len(preview) > 100 {
			preview = preview[:100]
		}
		output = append(output, "- "+string(preview))
	}
	return output
}

func formatStatus(store *Store) string {
	now := store.Now()
	today := store.Today("")

	typeCounts := make(map[EntryType]int)
	for _, e := range today {
		typeCounts[e.Type]++
	}

	todaySummary := "No entries yet"
	if len(typeCounts) > 0 {
		var parts []string
		for _, t := range EntryTypes {
			if n, ok := typeCounts[t]; ok {
				parts = append(parts, fmt.Sprintf("%d %s", n, t))
			}
		}
		todaySummary = strings.Join(parts, ", ")
	}

	var toolLines []string
	for _, tool := range toolDescriptions {
		toolLines = append(toolLines, fmt.Sprintf("  - **%s**: %s", tool.name, tool.description))
	}

	var typeNames []string
	for _, t := range EntryTypes {
		typeNames = append(typeNames, string(t))
	}

	return fmt.Sprintf(`# %s v%s

**Author:** %s
**Course:** %s
**Module:** %s

## Description
%s

## Available Tools
%s

## Entry Types
%s

## Current Stats
- **Today's date:** %s
- **Today's entries:** %s
- **Days with entries:** %d
- **Storage path:** %s

## Status: CONNECTED
Server is running and ready to accept commands.`,
		ServerName, ServerVersion,
		serverAuthor, serverCourse, serverModule,
		serverDescription,
		strings.Join(toolLines, "\n"),
		strings.Join(typeNames, ", "),
		now.Format(dateLayout),
		todaySummary,
		store.DaysWithEntries(),
		store.Dir(),
	)
}
