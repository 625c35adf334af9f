// Package tui implements the interactive guide browser for the ea-course CLI.
// A list of guides is shown on start; selecting one renders its Markdown with
// glamour inside a scrollable viewport.
package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"eamcp/internal/course"
	"eamcp/internal/logging"
	"eamcp/internal/tui/styles"
)

type browserState int

const (
	stateList browserState = iota
	stateReading
)

// guideItem adapts a course.Guide to the bubbles list.Item interface.
type guideItem struct {
	guide course.Guide
}

func (i guideItem) Title() string       { return i.guide.Title }
func (i guideItem) Description() string { return i.guide.Module + " - " + i.guide.Description }
func (i guideItem) FilterValue() string { return i.guide.Title + " " + i.guide.Slug }

// guideRenderedMsg carries the glamour-rendered guide body.
type guideRenderedMsg struct {
	title   string
	content string
}

// BrowserModel is the Bubble Tea model for browsing course guides.
type BrowserModel struct {
	state    browserState
	list     list.Model
	viewport viewport.Model
	logger   *logging.AppLogger

	current string // title of the guide being read
	width   int
	height  int
}

// NewBrowserModel builds the browser over the given guides.
func NewBrowserModel(guides []course.Guide, logger *logging.AppLogger) BrowserModel {
	if logger == nil {
		logger = logging.GetDefault()
	}

	items := make([]list.Item, len(guides))
	for i, g := range guides {
		items[i] = guideItem{guide: g}
	}

	guideList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	guideList.Title = "Course Guides"
	guideList.SetShowStatusBar(false)

	return BrowserModel{
		state:  stateList,
		list:   guideList,
		logger: logger,
	}
}

// Init is part of the Bubble Tea Model interface.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update is part of the Bubble Tea Model interface.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-4)
		m.viewport = viewport.New(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateList:
			switch msg.String() {
			case "q", "ctrl+c":
				if !m.list.SettingFilter() {
					return m, tea.Quit
				}
			case "enter":
				if item, ok := m.list.SelectedItem().(guideItem); ok {
					return m, m.renderGuide(item.guide)
				}
			}
		case stateReading:
			switch msg.String() {
			case "q", "esc":
				m.state = stateList
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
		}

	case guideRenderedMsg:
		m.state = stateReading
		m.current = msg.title
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case stateList:
		m.list, cmd = m.list.Update(msg)
	case stateReading:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View is part of the Bubble Tea Model interface.
func (m BrowserModel) View() string {
	switch m.state {
	case stateReading:
		header := styles.TitleStyle.Render(m.current)
		help := styles.HelpStyle.Render("↑/↓ scroll · q/esc back · ctrl+c quit")
		return header + "\n" + m.viewport.View() + "\n" + help
	default:
		help := styles.HelpStyle.Render("enter read · / filter · q quit")
		return m.list.View() + "\n" + help
	}
}

// renderGuide renders the guide body with glamour off the main update loop.
func (m BrowserModel) renderGuide(guide course.Guide) tea.Cmd {
	width := m.width - 6
	if width < 20 {
		width = 80
	}

	return func() tea.Msg {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(detectGlamourStyle(500*time.Millisecond)),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.logger.Error("failed to create markdown renderer", "error", err)
			return guideRenderedMsg{title: guide.Title, content: wordwrap.String(guide.Body, width)}
		}

		rendered, err := renderer.Render(guide.Body)
		if err != nil {
			// Fall back to plain word-wrapped text rather than failing the view.
			m.logger.Error("failed to render guide", "slug", guide.Slug, "error", err)
			return guideRenderedMsg{title: guide.Title, content: wordwrap.String(guide.Body, width)}
		}

		return guideRenderedMsg{title: guide.Title, content: rendered}
	}
}

// detectGlamourStyle picks a glamour style for the terminal background.
// GLAMOUR_STYLE set to a concrete value wins; otherwise termenv probes the
// terminal with a timeout so unresponsive terminals never hang the UI.
func detectGlamourStyle(timeout time.Duration) string {
	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return "dark"
	}
}
