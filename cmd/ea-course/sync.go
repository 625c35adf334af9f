package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eamcp/internal/course"
	"eamcp/internal/logging"
)

func newSyncCommand(logger *logging.AppLogger) *cobra.Command {
	var repo, branch string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync course content from the configured repository",
		Long: `Sync clones the course content repository into the local cache on first
run and fetches updates afterwards. Synced guides and catalog entries take
precedence over the copies embedded in the binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := course.Load()
			if err != nil {
				return err
			}

			changed := false
			if repo != "" {
				cfg.ContentRepo = repo
				changed = true
			}
			if branch != "" {
				cfg.Branch = branch
				changed = true
			}
			if changed {
				if err := cfg.Save(); err != nil {
					return err
				}
			}

			source, err := course.NewContentSource(cfg)
			if err != nil {
				return err
			}

			path, err := source.Sync(logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Course content synced to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "content repository URL (saved to config)")
	cmd.Flags().StringVar(&branch, "branch", "", "content branch (saved to config)")
	return cmd
}

func newTokenCommand(logger *logging.AppLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the GitHub token used for private content repositories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Store a GitHub Personal Access Token in the OS credential store",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Paste your GitHub Personal Access Token: ")

			reader := bufio.NewReader(os.Stdin)
			token, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(token)

			credMgr := course.NewCredentialManager()
			if err := credMgr.StoreGitHubToken(token); err != nil {
				return err
			}

			logger.Debug("GitHub token stored")
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored in the OS credential store.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored GitHub token",
		RunE: func(cmd *cobra.Command, args []string) error {
			credMgr := course.NewCredentialManager()
			if err := credMgr.DeleteGitHubToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed.")
			return nil
		},
	})

	return cmd
}
