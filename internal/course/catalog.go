package course

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"eamcp/internal/course/content"
)

// CatalogServer describes one third-party MCP server from the course catalog.
type CatalogServer struct {
	Name        string            `json:"name" validate:"required,lowercase"`
	Description string            `json:"description" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	Package     string            `json:"package" validate:"required"`
	Command     string            `json:"command" validate:"required"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env,omitempty"`
	Docs        string            `json:"docs,omitempty" validate:"omitempty,url"`
}

// Catalog is the curated list of third-party MCP servers covered by the course.
type Catalog struct {
	Servers []CatalogServer `json:"servers" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadCatalog reads the server catalog, preferring the synced content
// directory over the embedded copy, and validates every entry.
func LoadCatalog(cfg *Config) (*Catalog, error) {
	data, err := catalogData(cfg)
	if err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse server catalog: %w", err)
	}
	if err := validate.Struct(&catalog); err != nil {
		return nil, fmt.Errorf("invalid server catalog: %w", err)
	}

	sort.Slice(catalog.Servers, func(i, j int) bool {
		return catalog.Servers[i].Name < catalog.Servers[j].Name
	})
	return &catalog, nil
}

func catalogData(cfg *Config) ([]byte, error) {
	if cfg != nil && cfg.ContentDir != "" {
		synced := filepath.Join(cfg.ContentDir, "servers", "catalog.json")
		if data, err := os.ReadFile(synced); err == nil {
			return data, nil
		}
	}

	data, err := fs.ReadFile(content.FS, "servers/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return data, nil
}

// Find looks up a catalog server by name.
func (c *Catalog) Find(name string) (CatalogServer, bool) {
	return lo.Find(c.Servers, func(s CatalogServer) bool { return s.Name == name })
}

// Categories returns the distinct server categories in sorted order.
func (c *Catalog) Categories() []string {
	categories := lo.Uniq(lo.Map(c.Servers, func(s CatalogServer, _ int) string {
		return s.Category
	}))
	sort.Strings(categories)
	return categories
}

// ByCategory groups servers by category.
func (c *Catalog) ByCategory() map[string][]CatalogServer {
	return lo.GroupBy(c.Servers, func(s CatalogServer) string { return s.Category })
}

// mcpConfig mirrors the .mcp.json layout Claude Code reads.
type mcpConfig struct {
	MCPServers map[string]mcpServerEntry `json:"mcpServers"`
}

type mcpServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// MCPConfigJSON renders a ready-to-paste .mcp.json snippet for the named
// servers. Environment values in the catalog are placeholders the user fills
// in before use.
func (c *Catalog) MCPConfigJSON(names ...string) (string, error) {
	cfg := mcpConfig{MCPServers: map[string]mcpServerEntry{}}
	for _, name := range names {
		server, ok := c.Find(name)
		if !ok {
			return "", fmt.Errorf("unknown server %q - run 'ea-course servers' to list available servers", name)
		}
		cfg.MCPServers[server.Name] = mcpServerEntry{
			Command: server.Command,
			Args:    server.Args,
			Env:     server.Env,
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}
