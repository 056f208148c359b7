package syncer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/prism/internal/errors"
)

// idFormat makes snapshot ids sort chronologically as plain strings.
const idFormat = "20060102T150405"

// allocateID derives a fresh snapshot id from at and creates its
// directory. Same-second collisions get a numeric suffix; ordering of
// suffixed ids is handled by idLess, not lexically.
func allocateID(root string, at time.Time) (string, error) {
	if err := os.MkdirAll(root, snapshotDirPerm); err != nil {
		return "", errors.Wrap(err, "creating snapshot store")
	}

	base := at.UTC().Format(idFormat)
	id := base
	for n := 1; ; n++ {
		path := filepath.Join(root, id)
		err := os.Mkdir(path, snapshotDirPerm)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", errors.Wrap(err, "creating snapshot directory")
		}
		id = base + "-" + strconv.Itoa(n)
	}
}

// idLess orders snapshot ids chronologically: by timestamp base first,
// then by numeric collision suffix. Plain string comparison would put
// "-10" before "-2".
func idLess(a, b string) bool {
	abase, an := splitID(a)
	bbase, bn := splitID(b)
	if abase != bbase {
		return abase < bbase
	}
	return an < bn
}

// splitID separates an id into its timestamp base and collision
// suffix; a bare id has suffix 0.
func splitID(id string) (string, int) {
	base, suffix, ok := strings.Cut(id, "-")
	if !ok {
		return id, 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return id, 0
	}
	return base, n
}

// Get loads a committed snapshot's metadata. A missing directory or a
// directory without meta.json both resolve to SnapshotNotFoundError.
func (s *Store) Get(id string) (*Meta, error) {
	if id == "" {
		return nil, errors.New("snapshot id is required")
	}

	data, err := os.ReadFile(filepath.Join(s.root, id, "meta.json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, &SnapshotNotFoundError{ID: id}
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot metadata")
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "parsing snapshot %s metadata", id)
	}
	meta.ID = id
	return &meta, nil
}

// List returns every committed snapshot, newest first. Directories
// without meta.json are skipped. An absent store is simply empty.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot store")
	}

	metas := make([]Meta, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Get(entry.Name())
		if err != nil {
			continue
		}
		metas = append(metas, *meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return idLess(metas[j].ID, metas[i].ID)
	})
	return metas, nil
}

// Prune removes committed snapshots beyond the keep most recent and
// returns the removed ids.
func (s *Store) Prune(keep int) ([]string, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	metas, err := s.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	for i := keep; i < len(metas); i++ {
		id := metas[i].ID
		if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
			return removed, errors.Wrapf(err, "removing snapshot %s", id)
		}
		removed = append(removed, id)
	}
	return removed, nil
}
