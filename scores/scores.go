// Package scores keeps the high score table between games.
package scores

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Size is how many scores the table remembers.
const Size = 6

type Entry struct {
	Score int       `json:"score"`
	When  time.Time `json:"when"`
}

// Table holds the best scores, highest first.
type Table struct {
	Entries []Entry `json:"entries"`
}

// Add records a score if it beats an entry of the table, or the table isn't
// full yet. It returns the 0-based rank the score took.
func (t *Table) Add(score int, when time.Time) (int, bool) {
	if score <= 0 {
		return 0, false
	}
	rank := len(t.Entries)
	for i, e := range t.Entries {
		if score > e.Score {
			rank = i
			break
		}
	}
	if rank >= Size {
		return 0, false
	}
	t.Entries = append(t.Entries, Entry{})
	copy(t.Entries[rank+1:], t.Entries[rank:])
	t.Entries[rank] = Entry{Score: score, When: when}
	if len(t.Entries) > Size {
		t.Entries = t.Entries[:Size]
	}
	return rank, true
}

// Best returns the highest score, 0 for an empty table.
func (t *Table) Best() int {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[0].Score
}

// Store reads and writes a Table as JSON.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

// DefaultPath is scores.json in the user's config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to find the config directory: %w", err)
	}
	return filepath.Join(root, "cubetris", "scores.json"), nil
}

// Load returns an empty table when nothing was saved yet.
func (s *Store) Load() (*Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read scores: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unable to decode scores: %w", err)
	}
	if len(t.Entries) > Size {
		t.Entries = t.Entries[:Size]
	}
	return &t, nil
}

func (s *Store) Save(t *Table) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("unable to create scores directory: %w", err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode scores: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write scores: %w", err)
	}
	return nil
}

// Record adds a finished game's score and saves the table when it made it in.
func (s *Store) Record(score int, when time.Time) (int, bool, error) {
	t, err := s.Load()
	if err != nil {
		return 0, false, err
	}
	rank, ok := t.Add(score, when)
	if !ok {
		return 0, false, nil
	}
	return rank, true, s.Save(t)
}
