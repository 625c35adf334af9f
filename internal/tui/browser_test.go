package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"eamcp/internal/course"
	"eamcp/internal/logging"
)

func testGuides() []course.Guide {
	return []course.Guide{
		{
			Slug:        "first-guide",
			Title:       "First Guide",
			Module:      "01-foundations",
			Order:       1,
			Description: "The first guide.",
			Body:        "# First Guide\n\nSome introductory content.",
		},
		{
			Slug:        "second-guide",
			Title:       "Second Guide",
			Module:      "01-foundations",
			Order:       2,
			Description: "The second guide.",
			Body:        "# Second Guide\n\nMore content here.",
		},
	}
}

func waitForString(t *testing.T, tm *teatest.TestModel, s string) {
	t.Helper()
	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return strings.Contains(string(b), s)
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*3),
	)
}

func TestBrowserShowsGuideList(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	model := NewBrowserModel(testGuides(), logger)
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(100, 30))

	// Output is a consume-once stream, so check all strings in a single wait.
	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			out := string(b)
			return strings.Contains(out, "Course Guides") &&
				strings.Contains(out, "First Guide") &&
				strings.Contains(out, "Second Guide")
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*3),
	)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*3))
}

func TestBrowserOpensGuide(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	model := NewBrowserModel(testGuides(), logger)
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(100, 30))

	waitForString(t, tm, "First Guide")

	// Open the first guide and check its rendered body appears.
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForString(t, tm, "introductory content")

	// Back to the list, then quit.
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitForString(t, tm, "Course Guides")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*3))
}

func TestBrowserEmptyGuides(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	model := NewBrowserModel(nil, logger)
	tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(100, 30))

	waitForString(t, tm, "Course Guides")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*3))
}
