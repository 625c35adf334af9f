package promptlib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"eamcp/internal/logging"
	"eamcp/pkg/fileops"
)

const (
	// DirEnvVar overrides the storage directory, primarily for tests.
	DirEnvVar = "EA_PROMPTS_DIR"

	defaultDirName = ".ea-prompts"
	storageFile    = "custom_prompts.json"
)

// promptNamePattern constrains custom prompt names to slash-command friendly
// identifiers: lowercase, starting with a letter, hyphens allowed.
var promptNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidPromptName reports whether name is an acceptable custom prompt name.
func ValidPromptName(name string) bool {
	return promptNamePattern.MatchString(name)
}

// Store persists custom prompts as a single JSON document keyed by name.
type Store struct {
	dir    string
	logger *logging.AppLogger
}

// NewStore resolves the storage directory and ensures it exists.
func NewStore(logger *logging.AppLogger) (*Store, error) {
	if logger == nil {
		logger = logging.GetDefault()
	}

	dir := os.Getenv(DirEnvVar)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}

	dir = fileops.ExpandPath(dir)
	if err := fileops.ValidatePathSecurity(dir); err != nil {
		return nil, fmt.Errorf("invalid storage directory: %w", err)
	}
	if err := fileops.EnsureDirectoryExists(dir); err != nil {
		return nil, fmt.Errorf("creating prompts directory: %w", err)
	}

	logger.Debug("prompt store initialized", "dir", dir)
	return &Store{dir: dir, logger: logger}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, storageFile)
}

// load reads the custom prompt map from disk. A missing or corrupt file
// yields an empty map so the server always starts.
func (s *Store) load() map[string]Prompt {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return map[string]Prompt{}
	}

	var prompts map[string]Prompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		s.logger.Warn("custom prompts file is corrupt, starting fresh", "path", s.path(), "error", err)
		return map[string]Prompt{}
	}
	return prompts
}

func (s *Store) save(prompts map[string]Prompt) error {
	data, err := json.MarshalIndent(prompts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding prompts: %w", err)
	}
	if err := fileops.AtomicWriteFile(s.path(), data, 0o644); err != nil {
		return fmt.Errorf("writing prompts file: %w", err)
	}
	return nil
}

// Custom returns all custom prompts sorted by name.
func (s *Store) Custom() []Prompt {
	prompts := s.load()
	out := make([]Prompt, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get looks up a custom prompt by name.
func (s *Store) Get(name string) (Prompt, bool) {
	p, ok := s.load()[name]
	return p, ok
}

// Add stores a custom prompt, overwriting any existing custom prompt with the
// same name. Built-in names are rejected.
func (s *Store) Add(p Prompt) error {
	if IsBuiltin(p.Name) {
		return fmt.Errorf("cannot overwrite built-in prompt %q", p.Name)
	}

	p.Builtin = false
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	prompts := s.load()
	prompts[p.Name] = p
	if err := s.save(prompts); err != nil {
		return err
	}

	s.logger.Debug("custom prompt saved", "name", p.Name)
	return nil
}

// Remove deletes a custom prompt. It reports whether the prompt existed.
func (s *Store) Remove(name string) (bool, error) {
	prompts := s.load()
	if _, ok := prompts[name]; !ok {
		return false, nil
	}
	delete(prompts, name)
	if err := s.save(prompts); err != nil {
		return false, err
	}
	s.logger.Debug("custom prompt removed", "name", name)
	return true, nil
}
