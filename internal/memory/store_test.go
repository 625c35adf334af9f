package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"eamcp/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv(DirEnvVar, t.TempDir())

	logger, _ := logging.NewTestLogger()
	store, err := NewStore(logger)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Add("first memory", nil, 50)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := store.Add("second memory", []string{"api"}, 80)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first.ID != "mem_0001" {
		t.Errorf("Expected mem_0001, got %s", first.ID)
	}
	if second.ID != "mem_0002" {
		t.Errorf("Expected mem_0002, got %s", second.ID)
	}
	if second.CreatedAt == "" {
		t.Error("CreatedAt should be set")
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	store := newTestStore(t)

	store.Add("one", nil, 50)
	store.Add("two", nil, 50)

	if _, found, err := store.Delete("mem_0002"); err != nil || !found {
		t.Fatalf("Delete failed: found=%v err=%v", found, err)
	}

	third, err := store.Add("three", nil, 50)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if third.ID != "mem_0003" {
		t.Errorf("Deleted ids must not be reused, got %s", third.ID)
	}
}

func TestSearchSubstringAndSort(t *testing.T) {
	store := newTestStore(t)

	store.Add("The API endpoint is /api/v1/users", []string{"api"}, 50)
	store.Add("Database uses postgres", []string{"db"}, 90)
	store.Add("API rate limit is 100 req/s", []string{"api"}, 90)

	results, total, err := store.Search("api", nil, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("Expected 2 matches, got %d", total)
	}

	// Importance sorts first; the rate-limit memory (90) beats the endpoint (50)
	if results[0].Importance != 90 || results[1].Importance != 50 {
		t.Errorf("Results not sorted by importance: %+v", results)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	store.Add("Remember the KUBECONFIG path", nil, 50)

	results, total, err := store.Search("kubeconfig", nil, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Errorf("Expected one case-insensitive match, got total=%d", total)
	}
}

func TestSearchTagFilter(t *testing.T) {
	store := newTestStore(t)

	store.Add("fix the login bug", []string{"python", "bugfix"}, 50)
	store.Add("fix the logout bug", []string{"go"}, 50)

	results, total, err := store.Search("bug", []string{"python"}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("Expected 1 tagged match, got %d", total)
	}
	if !results[0].HasAnyTag([]string{"python"}) {
		t.Errorf("Wrong memory returned: %+v", results[0])
	}
}

func TestSearchLimitReportsTotal(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		store.Add("shared keyword entry", nil, 50)
	}

	results, total, err := store.Search("keyword", nil, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 capped results, got %d", len(results))
	}
	if total != 5 {
		t.Errorf("Expected total 5 before capping, got %d", total)
	}
}

func TestSearchEmptyStore(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.Search("anything", nil, 10); err != ErrNoMemories {
		t.Errorf("Expected ErrNoMemories, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 7; i++ {
		store.Add("entry", nil, 50)
	}

	page, total, err := store.List(nil, 3, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 7 || len(page) != 3 {
		t.Errorf("Expected 3 of 7, got %d of %d", len(page), total)
	}

	page, total, err = store.List(nil, 3, 6)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("Expected final page of 1, got %d", len(page))
	}

	page, _, err = store.List(nil, 3, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("Offset past end should return empty page, got %d", len(page))
	}
}

func TestDeleteNotFound(t *testing.T) {
	store := newTestStore(t)
	store.Add("keep me", nil, 50)

	_, found, err := store.Delete("mem_9999")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if found {
		t.Error("Delete should report not found for unknown id")
	}
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnvVar, dir)

	if err := os.WriteFile(filepath.Join(dir, "memories.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	logger, _ := logging.NewTestLogger()
	store, err := NewStore(logger)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	mem, err := store.Add("fresh start", nil, 50)
	if err != nil {
		t.Fatalf("Add after corrupt load failed: %v", err)
	}
	if mem.ID != "mem_0001" {
		t.Errorf("Corrupt store should restart ids at mem_0001, got %s", mem.ID)
	}
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnvVar, dir)

	logger, _ := logging.NewTestLogger()
	store, _ := NewStore(logger)
	store.Add("hello", []string{"greeting"}, 50)

	data, err := os.ReadFile(filepath.Join(dir, "memories.json"))
	if err != nil {
		t.Fatalf("Failed to read storage file: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Storage file is not valid JSON: %v", err)
	}
	if doc["next_id"].(float64) != 2 {
		t.Errorf("Expected next_id 2, got %v", doc["next_id"])
	}
	// Indented output is part of the format: the file is meant to be readable
	if string(data[:2]) != "{\n" {
		t.Error("Storage file should be pretty-printed")
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "python", []string{"python"}},
		{"multiple with spaces", " Python, BugFix , api ", []string{"python", "bugfix", "api"}},
		{"empty segments dropped", "a,,b,", []string{"a", "b"}},
		{"whitespace only", " , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
