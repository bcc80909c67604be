// Package prefs persists user preferences between runs: the theme, the
// language, and each grid's sort and page size.
package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Grid is the saved state of one grid.
type Grid struct {
	SortKey   string `json:"sort_key,omitempty"`
	Direction string `json:"direction,omitempty"`
	PageSize  int    `json:"page_size"`
}

// Prefs is the whole preferences document.
type Prefs struct {
	Theme     string          `json:"theme,omitempty"`
	Language  string          `json:"language,omitempty"`
	Grids     map[string]Grid `json:"grids,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store reads and writes Prefs as JSON. Reads take a shared lock and
// writes an exclusive one, so several trek processes can share a file.
type Store struct {
	path string
}

// DefaultPath returns the preferences file under the user cache directory.
func DefaultPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "trek", "prefs.json")
}

// Open returns a store backed by path. The file need not exist.
func Open(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the preferences. A missing file yields zero Prefs and no
// error.
func (s *Store) Load() (Prefs, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return Prefs{}, err
	}

	// Acquire shared (read) lock - blocks if exclusive lock is held
	fileLock := flock.New(s.path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return Prefs{}, err
	}
	defer fileLock.Unlock()

	return s.read()
}

// Save replaces the preferences.
func (s *Store) Save(p Prefs) error {
	return s.Update(func(cur *Prefs) { *cur = p })
}

// Update applies fn to the stored preferences and writes the result, all
// under one exclusive lock.
func (s *Store) Update(fn func(*Prefs)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(s.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return err
	}
	defer fileLock.Unlock()

	p, err := s.read()
	if err != nil {
		return err
	}
	fn(&p)
	p.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically: write to temp file then rename
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// SetGrid records the state of grid id.
func (s *Store) SetGrid(id string, g Grid) error {
	return s.Update(func(p *Prefs) {
		if p.Grids == nil {
			p.Grids = make(map[string]Grid)
		}
		p.Grids[id] = g
	})
}

// read parses the file. Caller holds the lock.
func (s *Store) read() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, err
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}
