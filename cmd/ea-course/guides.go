package main

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"eamcp/internal/course"
	"eamcp/internal/logging"
	"eamcp/internal/tui"
)

func newGuidesCommand(logger *logging.AppLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guides",
		Short: "List the course guides",
		RunE: func(cmd *cobra.Command, args []string) error {
			guides, err := loadGuides(logger)
			if err != nil {
				return err
			}

			grouped := course.GuidesByModule(guides)
			modules := make([]string, 0, len(grouped))
			for module := range grouped {
				modules = append(modules, module)
			}
			sort.Strings(modules)

			for _, module := range modules {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", module)
				for _, g := range grouped[module] {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-28s %s\n", g.Slug, g.Title)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nRead one with: ea-course guides show <slug>")
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <slug>",
		Short: "Render a guide in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guides, err := loadGuides(logger)
			if err != nil {
				return err
			}

			guide, ok := course.FindGuide(guides, args[0])
			if !ok {
				return fmt.Errorf("no guide with slug %q - run 'ea-course guides' to list them", args[0])
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			out, err := renderer.Render(guide.Body)
			if err != nil {
				return fmt.Errorf("failed to render guide: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	return cmd
}

func newBrowseCommand(logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the course guides interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			guides, err := loadGuides(logger)
			if err != nil {
				return err
			}

			model := tui.NewBrowserModel(guides, logger)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to start guide browser: %w", err)
			}
			return nil
		},
	}
}

func loadGuides(logger *logging.AppLogger) ([]course.Guide, error) {
	cfg, err := course.Load()
	if err != nil {
		return nil, err
	}
	return course.LoadGuides(cfg, logger)
}
