package skills

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// ManifestName is the hidden manifest file inside a managed skills
// directory.
const ManifestName = ".prism-skills.json"

// ManifestVersion is the only supported manifest schema version.
const ManifestVersion = 1

// Manifest records which files in a skills directory are managed.
type Manifest struct {
	Version int            `json:"version"`
	Items   []ManifestItem `json:"items"`
}

// ManifestItem maps a skill id to its content file name.
type ManifestItem struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}

// ReadManifest parses dir's manifest. The boolean reports whether one
// exists; absence is not an error, a malformed manifest is.
func ReadManifest(dir string) (Manifest, bool, error) {
	data, err := fileutil.ReadFileWithLimit(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{Version: ManifestVersion}, false, nil
		}
		return Manifest{}, false, errors.Wrapf(err, "reading manifest in %s", dir)
	}

	var man Manifest
	if err := json.Unmarshal(data, &man); err != nil {
		return Manifest{}, false, errors.Wrapf(err, "parsing manifest in %s", dir)
	}
	if man.Version != ManifestVersion {
		return Manifest{}, false, errors.Newf("unsupported manifest version %d in %s", man.Version, dir)
	}
	return man, true, nil
}

// manifestFor builds the manifest describing desired, items sorted by id.
func manifestFor(desired map[string]File) Manifest {
	man := Manifest{Version: ManifestVersion, Items: make([]ManifestItem, 0, len(desired))}
	for id, f := range desired {
		man.Items = append(man.Items, ManifestItem{ID: id, FileName: f.Name})
	}
	sort.Slice(man.Items, func(i, j int) bool { return man.Items[i].ID < man.Items[j].ID })
	return man
}

func writeManifest(dir string, man Manifest) error {
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, ManifestName), man); err != nil {
		return errors.Wrapf(err, "writing manifest in %s", dir)
	}
	return nil
}
