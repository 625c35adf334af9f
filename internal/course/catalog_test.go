package course

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCatalogEmbedded(t *testing.T) {
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Servers) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, s := range catalog.Servers {
		if s.Name == "" || s.Command == "" || s.Package == "" {
			t.Errorf("catalog entry incomplete: %+v", s)
		}
	}

	// Sorted by name.
	for i := 1; i < len(catalog.Servers); i++ {
		if catalog.Servers[i-1].Name > catalog.Servers[i].Name {
			t.Error("catalog servers not sorted by name")
			break
		}
	}
}

func TestLoadCatalogPrefersSyncedContent(t *testing.T) {
	dir := t.TempDir()
	serversDir := filepath.Join(dir, "servers")
	if err := os.MkdirAll(serversDir, 0755); err != nil {
		t.Fatal(err)
	}

	synced := `{"servers":[{"name":"custom","description":"d","category":"misc","package":"p","command":"npx","args":["-y","p"]}]}`
	if err := os.WriteFile(filepath.Join(serversDir, "catalog.json"), []byte(synced), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(&Config{ContentDir: dir})
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if len(catalog.Servers) != 1 || catalog.Servers[0].Name != "custom" {
		t.Errorf("synced catalog not used: %+v", catalog.Servers)
	}
}

func TestLoadCatalogRejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	serversDir := filepath.Join(dir, "servers")
	if err := os.MkdirAll(serversDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Missing command and uppercase name both violate validation.
	bad := `{"servers":[{"name":"Bad","description":"d","category":"misc","package":"p"}]}`
	if err := os.WriteFile(filepath.Join(serversDir, "catalog.json"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalog(&Config{ContentDir: dir}); err == nil {
		t.Error("LoadCatalog() accepted an invalid catalog")
	}
}

func TestCatalogFind(t *testing.T) {
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	if _, ok := catalog.Find("filesystem"); !ok {
		t.Error("filesystem server missing from catalog")
	}
	if _, ok := catalog.Find("nonexistent"); ok {
		t.Error("Find returned a nonexistent server")
	}
}

func TestCatalogCategories(t *testing.T) {
	catalog := &Catalog{Servers: []CatalogServer{
		{Name: "a", Category: "web"},
		{Name: "b", Category: "data"},
		{Name: "c", Category: "web"},
	}}

	categories := catalog.Categories()
	if len(categories) != 2 || categories[0] != "data" || categories[1] != "web" {
		t.Errorf("Categories() = %v", categories)
	}

	grouped := catalog.ByCategory()
	if len(grouped["web"]) != 2 {
		t.Errorf("ByCategory grouping wrong: %+v", grouped)
	}
}

func TestMCPConfigJSON(t *testing.T) {
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}

	out, err := catalog.MCPConfigJSON("github")
	if err != nil {
		t.Fatalf("MCPConfigJSON() error = %v", err)
	}

	var cfg struct {
		MCPServers map[string]struct {
			Command string            `json:"command"`
			Args    []string          `json:"args"`
			Env     map[string]string `json:"env"`
		} `json:"mcpServers"`
	}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	entry, ok := cfg.MCPServers["github"]
	if !ok {
		t.Fatal("github entry missing from config")
	}
	if entry.Command == "" || len(entry.Args) == 0 {
		t.Errorf("github entry incomplete: %+v", entry)
	}
	if _, ok := entry.Env["GITHUB_PERSONAL_ACCESS_TOKEN"]; !ok {
		t.Error("github env placeholder missing")
	}
	if !strings.Contains(out, "  ") {
		t.Error("config output not indented")
	}
}

func TestMCPConfigJSONUnknownServer(t *testing.T) {
	catalog, err := LoadCatalog(nil)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if _, err := catalog.MCPConfigJSON("ghost"); err == nil {
		t.Error("MCPConfigJSON() accepted an unknown server")
	}
}
