package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stadiumevents/internal/domain"
)

type store struct {
	path string
}

// NewStore returns an EventStore backed by a single JSON array file at path.
// The file is replaced wholesale on every Save.
func NewStore(path string) domain.EventStore {
	return &store{path: path}
}

// Load reads the stored collection. A missing file is an empty schedule, not
// an error; unreadable or malformed content wraps domain.ErrPersistence.
func (s *store) Load() ([]*domain.Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrPersistence, s.path, err)
	}
	var events []*domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrPersistence, s.path, err)
	}
	return events, nil
}

// Save writes the full collection as an indented JSON array, staging to a
// temp file in the same directory and renaming over the target so readers
// never observe a partial write.
func (s *store) Save(events []*domain.Event) error {
	if events == nil {
		events = []*domain.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode events: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrPersistence, dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("%w: stage write: %v", domain.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrPersistence, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrPersistence, tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", domain.ErrPersistence, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", domain.ErrPersistence, s.path, err)
	}
	return nil
}
