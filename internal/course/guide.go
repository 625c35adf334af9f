package course

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/samber/lo"

	"eamcp/internal/course/content"
	"eamcp/internal/logging"
)

// Guide is one course guide: a Markdown document with YAML frontmatter.
type Guide struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Module      string `yaml:"module"`
	Order       int    `yaml:"order"`
	Description string `yaml:"description"`

	// Body is the Markdown content below the frontmatter.
	Body string `yaml:"-"`
}

// LoadGuides returns all course guides sorted by module then order. Guides
// are read from the synced content directory when it exists; otherwise the
// embedded copies shipped with the binary are used.
func LoadGuides(cfg *Config, logger *logging.AppLogger) ([]Guide, error) {
	if logger == nil {
		logger = logging.GetDefault()
	}

	if cfg != nil && cfg.ContentDir != "" {
		guidesDir := filepath.Join(cfg.ContentDir, "guides")
		if info, err := os.Stat(guidesDir); err == nil && info.IsDir() {
			logger.Debug("loading guides from synced content", "dir", guidesDir)
			return loadGuidesFS(os.DirFS(guidesDir), ".")
		}
	}

	logger.Debug("loading embedded guides")
	return loadGuidesFS(content.FS, "guides")
}

// loadGuidesFS parses every Markdown file under dir in fsys. Files without
// valid frontmatter are skipped rather than failing the whole load.
func loadGuidesFS(fsys fs.FS, dir string) ([]Guide, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read guides directory: %w", err)
	}

	var guides []Guide
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read guide %s: %w", entry.Name(), err)
		}

		var guide Guide
		body, err := frontmatter.Parse(bytes.NewReader(data), &guide)
		if err != nil {
			logging.Debug("no valid frontmatter, skipping guide", "file", entry.Name(), "error", err)
			continue
		}
		if guide.Title == "" || guide.Slug == "" {
			logging.Debug("guide missing title or slug, skipping", "file", entry.Name())
			continue
		}

		guide.Body = string(body)
		guides = append(guides, guide)
	}

	sort.SliceStable(guides, func(i, j int) bool {
		if guides[i].Module != guides[j].Module {
			return guides[i].Module < guides[j].Module
		}
		return guides[i].Order < guides[j].Order
	})

	return guides, nil
}

// FindGuide looks up a guide by slug.
func FindGuide(guides []Guide, slug string) (Guide, bool) {
	return lo.Find(guides, func(g Guide) bool { return g.Slug == slug })
}

// GuidesByModule groups guides by their module name, preserving guide order
// inside each module.
func GuidesByModule(guides []Guide) map[string][]Guide {
	return lo.GroupBy(guides, func(g Guide) string { return g.Module })
}
