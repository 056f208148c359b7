package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// Load reads and validates the unified config at path.
// A missing file returns an error unwrapping to ErrConfigNotFound.
func Load(path string) (*Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// LoadOrNew loads path, returning a fresh empty config when the file
// does not exist yet. Editing commands use this so the first
// `server add` works before any config has been saved.
func LoadOrNew(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return New(), nil
	}
	return cfg, err
}

// Parse decodes and validates a unified config document.
// Unknown keys are rejected; an empty document is invalid.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrConfigInvalid, "config document is empty")
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, invalidConfigError(errs)
	}
	return &cfg, nil
}

// Save validates cfg and writes it atomically to path, creating the
// parent directory when needed. An invalid config is never persisted.
func Save(cfg *Config, path string) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return invalidConfigError(errs)
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
