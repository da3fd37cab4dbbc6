package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoRuns is returned by LoadLatest when the log holds no runs yet.
var ErrNoRuns = errors.New("history: no recorded runs")

// Store keeps every saved run in a single JSON file.
type Store struct {
	path string
}

// NewStore opens a store backed by path, creating parent directories as
// needed. The file itself is created on the first Save.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Save appends run to the log and rewrites the file.
func (s *Store) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}
	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal runs: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

// LoadAll returns every saved run, oldest first. A store that has never
// been written to yields no runs and no error.
func (s *Store) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("history: unmarshal %s: %w", s.path, err)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadLatest returns the most recent run, or ErrNoRuns on an empty log.
func (s *Store) LoadLatest() (Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[len(runs)-1], nil
}
