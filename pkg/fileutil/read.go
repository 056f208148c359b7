package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/prism/internal/errors"
)

// MaxFileSize caps how much ReadFileWithLimit will load. 16MB leaves
// plenty of room for native configs that accumulate state over time
// while keeping a corrupt or hostile file from exhausting memory.
const MaxFileSize = 16 * 1024 * 1024

// ErrFileTooLarge indicates a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads path, failing with ErrFileTooLarge instead of
// loading anything past MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when stat already shows the file is oversized; the
	// limited read below is the authoritative check.
	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
