package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Position is the last commanded pan/tilt angle pair, in degrees.
// The zero value is the centered position.
type Position struct {
	Pan  float64 `json:"pan"`
	Tilt float64 `json:"tilt"`
}

var (
	// ErrCorrupt marks a state file that exists but cannot be used.
	// Callers recover by assuming the centered position and warning.
	ErrCorrupt = errors.New("state file unusable")

	// ErrPersist marks a failed state write. The servos already moved
	// when this surfaces, so it means "moved, but state not saved".
	ErrPersist = errors.New("state not persisted")
)

// Store persists the last commanded position across invocations.
// It owns the single on-disk record; writes go through a temp file
// and a rename so a concurrent reader never sees a torn file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user state file location.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(dir, "ptzgo", "state.json"), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted position. A missing file is not an error:
// the centered position applies. Any other failure wraps ErrCorrupt.
func (s *Store) Load() (Position, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Position{}, nil
	}
	if err != nil {
		return Position{}, fmt.Errorf("read state file %s: %v: %w", s.path, err, ErrCorrupt)
	}

	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return Position{}, fmt.Errorf("parse state file %s: %v: %w", s.path, err, ErrCorrupt)
	}
	return pos, nil
}

// Save writes the position atomically: the record is written to a temp
// file in the same directory, then renamed over the real path. Failures
// wrap ErrPersist.
func (s *Store) Save(pos Position) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir %s: %v: %w", dir, err, ErrPersist)
	}

	data, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("encode state: %v: %w", err, ErrPersist)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file in %s: %v: %w", dir, err, ErrPersist)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %v: %w", err, ErrPersist)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %v: %w", err, ErrPersist)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename state file into place: %v: %w", err, ErrPersist)
	}
	return nil
}
