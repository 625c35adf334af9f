// Package journal implements the ea-journal MCP server: a daily work journal
// for tracking work, decisions, and blockers. Entries live in one JSON file
// per calendar day, which keeps each day human-readable and makes date-range
// queries a simple directory walk.
package journal

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"time"

	"eamcp/internal/logging"
	"eamcp/pkg/fileops"
)

const (
	// DirEnvVar overrides the storage directory, mainly for tests.
	DirEnvVar = "EA_JOURNAL_DIR"

	defaultDirName = ".ea-journal"
	dateLayout     = "2006-01-02"
)

// EntryType classifies a journal entry.
type EntryType string

const (
	TypeWork     EntryType = "work"
	TypeDecision EntryType = "decision"
	TypeBlocker  EntryType = "blocker"
	TypeNote     EntryType = "note"
	TypeWin      EntryType = "win"
	TypeLearning EntryType = "learning"
)

// EntryTypes lists all valid types in their canonical display order.
var EntryTypes = []EntryType{TypeWork, TypeDecision, TypeBlocker, TypeNote, TypeWin, TypeLearning}

// ValidEntryType reports whether t names a known entry type.
func ValidEntryType(t string) bool {
	for _, et := range EntryTypes {
		if string(et) == t {
			return true
		}
	}
	return false
}

// Entry is a single journal record.
type Entry struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Type      EntryType `json:"type"`
	Project   string    `json:"project,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// Date returns the YYYY-MM-DD portion of the entry timestamp.
func (e Entry) Date() string {
	if len(e.Timestamp) < 10 {
		return e.Timestamp
	}
	return e.Timestamp[:10]
}

// Time returns the HH:MM portion of the entry timestamp.
func (e Entry) Time() string {
	parts := len("2006-01-02T")
	if len(e.Timestamp) < parts+5 {
		return e.Timestamp
	}
	return e.Timestamp[parts : parts+5]
}

// Store reads and writes the per-day journal files.
type Store struct {
	dir    string
	logger *logging.AppLogger
	now    func() time.Time
}

// NewStore creates a store rooted at EA_JOURNAL_DIR, or ~/.ea-journal when
// the variable is unset.
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

	return &Store{
		dir:    dir,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Now returns the store's current UTC time. Tests override the clock via
// SetClock to journal into known dates.
func (s *Store) Now() time.Time {
	return s.now()
}

// SetClock replaces the store's clock. Testing hook.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) fileFor(day time.Time) string {
	return filepath.Join(s.dir, day.Format(dateLayout)+".json")
}

// loadDay reads the entries for one day. Missing or corrupt files yield an
// empty slice.
func (s *Store) loadDay(day time.Time) []Entry {
	data, err := os.ReadFile(s.fileFor(day))
	if err != nil {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		if s.logger != nil {
			s.logger.Warn("Journal file is corrupt, ignoring", "file", s.fileFor(day), "error", err)
		}
		return nil
	}

	return entries
}

func (s *Store) saveDay(day time.Time, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode journal entries: %w", err)
	}

	if err := fileops.AtomicWriteFile(s.fileFor(day), data, 0644); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	return nil
}

// Log appends an entry to today's journal file and returns it.
func (s *Store) Log(content string, entryType EntryType, project string) (Entry, error) {
	now := s.now()

	entry := Entry{
		ID:        entryID(now, content),
		Content:   content,
		Type:      entryType,
		Project:   project,
		Timestamp: now.Format(time.RFC3339),
	}

	entries := s.loadDay(now)
	entries = append(entries, entry)
	if err := s.saveDay(now, entries); err != nil {
		return Entry{}, err
	}

	if s.logger != nil {
		s.logger.Debug("Journal entry logged", "id", entry.ID, "type", entry.Type)
	}

	return entry, nil
}

// Today returns today's entries, optionally filtered to one type.
func (s *Store) Today(filter EntryType) []Entry {
	return filterEntries(s.loadDay(s.now()), filter)
}

// Range returns entries for the given days counting back from today
// (days=1 means today only), optionally filtered by type, newest first.
func (s *Store) Range(days int, filter EntryType) []Entry {
	now := s.now()

	var all []Entry
	for i := 0; i < days; i++ {
		all = append(all, s.loadDay(now.AddDate(0, 0, -i))...)
	}

	all = filterEntries(all, filter)
	sortEntriesNewestFirst(all)
	return all
}

// OnDate returns entries for one specific day, optionally filtered by type,
// newest first.
func (s *Store) OnDate(day time.Time, filter EntryType) []Entry {
	entries := filterEntries(s.loadDay(day), filter)
	sortEntriesNewestFirst(entries)
	return entries
}

// ActiveDays counts the days within the given look-back window that have at
// least one entry, and returns all entries found alongside.
func (s *Store) ActiveDays(days int) (int, []Entry) {
	now := s.now()

	var all []Entry
	active := 0
	for i := 0; i < days; i++ {
		entries := s.loadDay(now.AddDate(0, 0, -i))
		if len(entries) > 0 {
			active++
			all = append(all, entries...)
		}
	}

	return active, all
}

// DaysWithEntries counts the journal files present in the storage directory.
func (s *Store) DaysWithEntries() int {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0
	}
	return len(matches)
}

// ParseDate parses a YYYY-MM-DD date string as UTC.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return t, nil
}

// entryID builds an id from the wall-clock time plus a short content hash, so
// two entries logged within the same second still get distinct ids.
func entryID(now time.Time, content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return fmt.Sprintf("entry_%s_%04d", now.Format("150405"), h.Sum32()%10000)
}

func filterEntries(entries []Entry, filter EntryType) []Entry {
	if filter == "" {
		return entries
	}

	var filtered []Entry
	for _, e := range entries {
		if e.Type == filter {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func sortEntriesNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
}
