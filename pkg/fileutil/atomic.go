// Package fileutil provides atomic file writes and size-limited reads.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/prism/internal/errors"
)

// AtomicWriteFile writes data to path via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// truncated file behind. The parent directory must already exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	// The temp file must live on the same filesystem as the target for
	// the rename to be atomic.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".prism-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename has happened

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(perm)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, "writing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// AtomicWriteJSON writes v as 2-space-indented JSON with a trailing
// newline, atomically, mode 0644.
func AtomicWriteJSON(path string, v any) error {
	return AtomicWriteJSONWithPerm(path, v, 0644)
}

// AtomicWriteJSONWithPerm is AtomicWriteJSON with an explicit file mode.
func AtomicWriteJSONWithPerm(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, append(data, '\n'), perm)
}

// AtomicWriteYAML writes v as YAML with a trailing newline, atomically,
// mode 0644.
func AtomicWriteYAML(path string, v any) error {
	return AtomicWriteYAMLWithPerm(path, v, 0644)
}

// AtomicWriteYAMLWithPerm is AtomicWriteYAML with an explicit file mode.
func AtomicWriteYAMLWithPerm(path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable values rather than returning
	// an error; convert that to an error here.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, perm)
}
