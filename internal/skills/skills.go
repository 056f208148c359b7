// Package skills materializes skill content and manages per-agent
// skills directories.
//
// A managed directory holds one content file per skill plus a hidden
// manifest. The manifest is the sole authority on which files are
// managed: anything it does not list is user-owned and never touched.
package skills

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// ErrSourceNotFound indicates a skill's sourcePath does not exist.
var ErrSourceNotFound = errors.New("skill source not found")

// SourceNotFoundError reports a skill whose source file is missing.
type SourceNotFoundError struct {
	SkillID string
	Path    string
}

func (e *SourceNotFoundError) Error() string {
	return "skill " + e.SkillID + ": source file " + e.Path + " not found"
}

func (e *SourceNotFoundError) Unwrap() error {
	return ErrSourceNotFound
}

// File is one materialized skill: the name it lives under in a managed
// directory plus its full content.
type File struct {
	Name    string `json:"fileName"`
	Content string `json:"content"`
}

// Materialize resolves the content for one skill. Inline content is
// used verbatim; otherwise sourcePath is read, resolved relative to the
// unified config's directory unless absolute.
func Materialize(id string, spec config.SkillSpec, configDir string) (File, error) {
	name := spec.EffectiveFileName(id)
	if name == ManifestName {
		return File{}, errors.Newf("skill %s: file name %q is reserved for the manifest", id, ManifestName)
	}

	if spec.Content != "" {
		return File{Name: name, Content: spec.Content}, nil
	}

	src := spec.SourcePath
	if !filepath.IsAbs(src) {
		src = filepath.Join(configDir, src)
	}
	data, err := fileutil.ReadFileWithLimit(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{}, &SourceNotFoundError{SkillID: id, Path: src}
		}
		return File{}, errors.Wrapf(err, "reading skill %s source", id)
	}
	return File{Name: name, Content: string(data)}, nil
}

// ReadManaged returns the current managed state of dir, keyed by skill
// id. An absent manifest means nothing is managed. A file the manifest
// lists but the directory lacks reads as empty content; the manifest is
// the authority on what should exist.
func ReadManaged(dir string) (map[string]File, error) {
	man, ok, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}
	state := map[string]File{}
	if !ok {
		return state, nil
	}

	for _, item := range man.Items {
		content := ""
		data, err := fileutil.ReadFileWithLimit(filepath.Join(dir, item.FileName))
		if err == nil {
			content = string(data)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "reading managed skill %s", item.ID)
		}
		state[item.ID] = File{Name: item.FileName, Content: content}
	}
	return state, nil
}

// Apply makes dir's managed state exactly match desired: managed files
// no longer wanted (or renamed) are removed, content files are written
// atomically, and the manifest is written last so a crash mid-apply
// never widens the managed set beyond what exists.
func Apply(dir string, desired map[string]File) error {
	if err := CheckCollisions(desired); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating skills directory %s", dir)
	}

	man, _, err := ReadManifest(dir)
	if err != nil {
		return err
	}

	for _, item := range man.Items {
		f, keep := desired[item.ID]
		if keep && f.Name == item.FileName {
			continue
		}
		// Dropped skill, or kept skill whose file name changed.
		path := filepath.Join(dir, item.FileName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing managed file %s", path)
		}
	}

	for _, item := range manifestFor(desired).Items {
		f := desired[item.ID]
		path := filepath.Join(dir, f.Name)
		if err := fileutil.AtomicWriteFile(path, []byte(f.Content), 0o644); err != nil {
			return errors.Wrapf(err, "writing skill %s", item.ID)
		}
	}

	return writeManifest(dir, manifestFor(desired))
}

// Clear removes every file listed in dir's manifest plus the manifest
// itself. User-owned files are untouched. A dir without a manifest is
// already clear.
func Clear(dir string) error {
	man, ok, err := ReadManifest(dir)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, item := range man.Items {
		path := filepath.Join(dir, item.FileName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing managed file %s", path)
		}
	}
	if err := os.Remove(filepath.Join(dir, ManifestName)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing manifest")
	}
	return nil
}

// CheckCollisions rejects a desired set in which two skills
// materialize to the same file name. The planner runs this before any
// write is attempted; Apply re-checks as a guard.
func CheckCollisions(desired map[string]File) error {
	byName := map[string]string{}
	for id, f := range desired {
		if other, dup := byName[f.Name]; dup {
			a, b := id, other
			if a > b {
				a, b = b, a
			}
			return errors.Newf("skills %s and %s both materialize to %q", a, b, f.Name)
		}
		byName[f.Name] = id
	}
	return nil
}
