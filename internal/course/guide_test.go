package course

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eamcp/internal/logging"
)

func TestLoadGuidesEmbedded(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	guides, err := LoadGuides(nil, logger)
	if err != nil {
		t.Fatalf("LoadGuides() error = %v", err)
	}
	if len(guides) == 0 {
		t.Fatal("no embedded guides loaded")
	}

	for _, g := range guides {
		if g.Slug == "" || g.Title == "" || g.Module == "" {
			t.Errorf("guide %+v missing frontmatter fields", g)
		}
		if g.Body == "" {
			t.Errorf("guide %s has empty body", g.Slug)
		}
		if strings.Contains(g.Body, "---\nslug:") {
			t.Errorf("guide %s body still contains frontmatter", g.Slug)
		}
	}

	// Sorted by module, then order.
	for i := 1; i < len(guides); i++ {
		prev, cur := guides[i-1], guides[i]
		if prev.Module > cur.Module {
			t.Errorf("guides not sorted by module: %s before %s", prev.Module, cur.Module)
		}
		if prev.Module == cur.Module && prev.Order > cur.Order {
			t.Errorf("guides not sorted by order within %s", cur.Module)
		}
	}
}

func TestLoadGuidesPrefersSyncedContent(t *testing.T) {
	dir := t.TempDir()
	guidesDir := filepath.Join(dir, "guides")
	if err := os.MkdirAll(guidesDir, 0755); err != nil {
		t.Fatal(err)
	}

	guide := `---
slug: synced-guide
title: Synced Guide
module: 99-extra
order: 1
description: A guide from the synced repo.
---

Synced body.
`
	if err := os.WriteFile(filepath.Join(guidesDir, "synced.md"), []byte(guide), 0644); err != nil {
		t.Fatal(err)
	}

	logger, _ := logging.NewTestLogger()
	cfg := &Config{ContentDir: dir}
	guides, err := LoadGuides(cfg, logger)
	if err != nil {
		t.Fatalf("LoadGuides() error = %v", err)
	}
	if len(guides) != 1 {
		t.Fatalf("loaded %d guides, want 1 from synced dir", len(guides))
	}
	if guides[0].Slug != "synced-guide" {
		t.Errorf("Slug = %q", guides[0].Slug)
	}
	if !strings.Contains(guides[0].Body, "Synced body.") {
		t.Errorf("Body = %q", guides[0].Body)
	}
}

func TestLoadGuidesSkipsInvalidFrontmatter(t *testing.T) {
	dir := t.TempDir()
	guidesDir := filepath.Join(dir, "guides")
	if err := os.MkdirAll(guidesDir, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"good.md":    "---\nslug: good\ntitle: Good\nmodule: 01\norder: 1\n---\nBody.",
		"no-meta.md": "Just plain markdown with no frontmatter.",
		"notes.txt":  "not markdown at all",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(guidesDir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	logger, _ := logging.NewTestLogger()
	guides, err := LoadGuides(&Config{ContentDir: dir}, logger)
	if err != nil {
		t.Fatalf("LoadGuides() error = %v", err)
	}
	if len(guides) != 1 || guides[0].Slug != "good" {
		t.Errorf("got %d guides, want exactly the valid one", len(guides))
	}
}

func TestFindGuide(t *testing.T) {
	guides := []Guide{{Slug: "a"}, {Slug: "b"}}

	if g, ok := FindGuide(guides, "b"); !ok || g.Slug != "b" {
		t.Errorf("FindGuide(b) = %+v, %v", g, ok)
	}
	if _, ok := FindGuide(guides, "missing"); ok {
		t.Error("FindGuide found a missing slug")
	}
}

func TestGuidesByModule(t *testing.T) {
	guides := []Guide{
		{Slug: "a", Module: "01"},
		{Slug: "b", Module: "02"},
		{Slug: "c", Module: "01"},
	}
	grouped := GuidesByModule(guides)
	if len(grouped["01"]) != 2 || len(grouped["02"]) != 1 {
		t.Errorf("GuidesByModule grouping wrong: %+v", grouped)
	}
}
