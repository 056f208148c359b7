// Package notes is a schema-free side channel for free-text
// annotations. It lives in its own file with its own lifecycle and is
// deliberately never folded into the validated unified config: notes
// are best-effort scratch space, not configuration.
package notes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// Store is an in-memory key/value view of one notes file.
type Store struct {
	path    string
	entries map[string]string
}

// Load reads the notes file at path. An absent file is an empty store,
// not an error.
func Load(path string) (*Store, error) {
	s := &Store{path: path, entries: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading notes %s", path)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, errors.Wrapf(err, "parsing notes %s", path)
	}
	return s, nil
}

// Save writes the store back to its file atomically, creating the
// parent directory when needed.
func (s *Store) Save() error {
	if err := paths.EnsureDir(filepath.Dir(s.path), 0); err != nil {
		return errors.Wrap(err, "creating notes directory")
	}
	return fileutil.AtomicWriteJSON(s.path, s.entries)
}

// Get returns the note for key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Set stores a note under key. An empty key is rejected.
func (s *Store) Set(key, value string) error {
	if key == "" {
		return errors.New("note key cannot be empty")
	}
	s.entries[key] = value
	return nil
}

// Delete removes key, reporting whether it was present.
func (s *Store) Delete(key string) bool {
	_, ok := s.entries[key]
	delete(s.entries, key)
	return ok
}

// Keys returns all note keys, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.entries)
}
