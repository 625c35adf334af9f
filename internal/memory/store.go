// Package memory implements the ea-memory MCP server: a small persistent
// memory store with tagging, kept in a single JSON file in the user's home
// directory. It is one of the three teaching servers in this course module.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"eamcp/internal/logging"
	"eamcp/pkg/fileops"
)

const (
	// DirEnvVar overrides the storage directory, mainly for tests.
	DirEnvVar = "EA_MEMORY_DIR"

	defaultDirName = ".ea-memory"
	storageFile    = "memories.json"
)

// Memory is a single stored record.
type Memory struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Importance int      `json:"importance"`
	CreatedAt  string   `json:"created_at"`
}

// CreatedDate returns the YYYY-MM-DD portion of the creation timestamp.
func (m Memory) CreatedDate() string {
	if len(m.CreatedAt) < 10 {
		return m.CreatedAt
	}
	return m.CreatedAt[:10]
}

// HasAnyTag reports whether the memory carries at least one of the given tags.
func (m Memory) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range m.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// document is the on-disk layout of memories.json. NextID only ever grows;
// deleting memories never frees an id for reuse.
type document struct {
	Memories []Memory `json:"memories"`
	NextID   int      `json:"next_id"`
}

// Store reads and writes the memory file. The server is a single-client stdio
// process, so each operation is a plain load-modify-save cycle.
type Store struct {
	dir    string
	logger *logging.AppLogger
}

// NewStore creates a store rooted at EA_MEMORY_DIR, or ~/.ea-memory when the
// variable is unset. The directory is created on first use.
func NewStore(logger *logging.AppLogger) (*Store, error) {
	dir := os.Getenv(DirEnvVar)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}

	dir = fileops.ExpandPath(dir)
	if err := fileops.ValidatePathSecurity(dir); err != nil {
		return nil, fmt.Errorf("invalid storage directory: %w", err)
	}
	if err := fileops.EnsureDirectoryExists(dir); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path() string {
	return filepath.Join(s.dir, storageFile)
}

// load reads the memory file. A missing or corrupt file yields an empty
// document so a damaged store never blocks the server.
func (s *Store) load() document {
	doc := document{Memories: []Memory{}, NextID: 1}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("Failed to read memory file, starting empty", "error", err)
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		if s.logger != nil {
			s.logger.Warn("Memory file is corrupt, starting empty", "error", err)
		}
		return document{Memories: []Memory{}, NextID: 1}
	}

	if doc.Memories == nil {
		doc.Memories = []Memory{}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}

	return doc
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memories: %w", err)
	}

	if err := fileops.AtomicWriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("failed to save memories: %w", err)
	}

	return nil
}

// Add stores a new memory and returns it with its assigned id.
func (s *Store) Add(content string, tags []string, importance int) (Memory, error) {
	doc := s.load()

	mem := Memory{
		ID:         fmt.Sprintf("mem_%04d", doc.NextID),
		Content:    content,
		Tags:       tags,
		Importance: importance,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	doc.NextID++
	doc.Memories = append(doc.Memories, mem)

	if err := s.save(doc); err != nil {
		return Memory{}, err
	}

	if s.logger != nil {
		s.logger.Debug("Memory stored", "id", mem.ID, "tags", strings.Join(tags, ","))
	}

	return mem, nil
}

// Search returns memories whose content contains query (case-insensitive),
// optionally filtered to those carrying any of filterTags. Results are sorted
// by importance (highest first), ties broken by creation time (oldest first),
// and capped at limit. The total match count before capping is also returned.
func (s *Store) Search(query string, filterTags []string, limit int) ([]Memory, int, error) {
	doc := s.load()
	if len(doc.Memories) == 0 {
		return nil, 0, ErrNoMemories
	}

	queryLower := strings.ToLower(query)
	var results []Memory
	for _, mem := range doc.Memories {
		if !strings.Contains(strings.ToLower(mem.Content), queryLower) {
			continue
		}
		if len(filterTags) > 0 && !mem.HasAnyTag(filterTags) {
			continue
		}
		results = append(results, mem)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Importance != results[j].Importance {
			return results[i].Importance > results[j].Importance
		}
		return results[i].CreatedAt < results[j].CreatedAt
	})

	total := len(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, total, nil
}

// List returns memories newest first, optionally filtered by tags, with
// offset/limit pagination. The total count after filtering is also returned.
func (s *Store) List(filterTags []string, limit, offset int) ([]Memory, int, error) {
	doc := s.load()
	if len(doc.Memories) == 0 {
		return nil, 0, ErrNoMemories
	}

	var results []Memory
	for _, mem := range doc.Memories {
		if len(filterTags) > 0 && !mem.HasAnyTag(filterTags) {
			continue
		}
		results = append(results, mem)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt > results[j].CreatedAt
	})

	total := len(results)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return results[offset:end], total, nil
}

// Delete removes the memory with the given id. The removed memory is returned
// so callers can echo what was forgotten.
func (s *Store) Delete(id string) (Memory, bool, error) {
	doc := s.load()

	for i, mem := range doc.Memories {
		if mem.ID == id {
			doc.Memories = append(doc.Memories[:i], doc.Memories[i+1:]...)
			if err := s.save(doc); err != nil {
				return Memory{}, false, err
			}
			return mem, true, nil
		}
	}

	return Memory{}, false, nil
}

// ErrNoMemories signals an empty store; tools turn it into onboarding text.
var ErrNoMemories = fmt.Errorf("no memories stored yet")

// ParseTags splits a comma-separated tag string into trimmed, lowercased tags.
// Empty segments are dropped.
func ParseTags(tags string) []string {
	if tags == "" {
		return nil
	}

	var parsed []string
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			parsed = append(parsed, tag)
		}
	}
	return parsed
}
