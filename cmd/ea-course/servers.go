package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"eamcp/internal/course"
	"eamcp/internal/logging"
)

func newServersCommand(logger *logging.AppLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List curated third-party MCP servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			grouped := catalog.ByCategory()
			for _, category := range catalog.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", category)
				servers := grouped[category]
				sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
				for _, s := range servers {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", s.Name, s.Description)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nDetails:      ea-course servers show <name>")
			fmt.Fprintln(cmd.OutOrStdout(), "Config block: ea-course servers config <name>...")
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show details for one catalog server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			server, ok := catalog.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown server %q - run 'ea-course servers' to list available servers", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", server.Name)
			fmt.Fprintf(out, "Description: %s\n", server.Description)
			fmt.Fprintf(out, "Category:    %s\n", server.Category)
			fmt.Fprintf(out, "Package:     %s\n", server.Package)
			fmt.Fprintf(out, "Command:     %s %s\n", server.Command, strings.Join(server.Args, " "))
			if len(server.Env) > 0 {
				fmt.Fprintln(out, "Environment:")
				keys := make([]string, 0, len(server.Env))
				for k := range server.Env {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "  %s=%s\n", k, server.Env[k])
				}
			}
			if server.Docs != "" {
				fmt.Fprintf(out, "Docs:        %s\n", server.Docs)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "config <name>...",
		Short: "Emit a .mcp.json block for the named servers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog()
			if err != nil {
				return err
			}

			out, err := catalog.MCPConfigJSON(args...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	})

	return cmd
}

func loadCatalog() (*course.Catalog, error) {
	cfg, err := course.Load()
	if err != nil {
		return nil, err
	}
	return course.LoadCatalog(cfg)
}
