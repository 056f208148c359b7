package syncer

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/internal/skills"
)

// Rollback restores the pre-sync state recorded in snapshot id. An
// empty agents filter targets every agent the snapshot touched.
//
// Agents are restored independently: one failure does not stop the
// others, and the per-agent outcomes are returned for reporting.
func (s *Store) Rollback(id string, agents []string) ([]Result, error) {
	for _, name := range agents {
		if !paths.ValidAgent(name) {
			return nil, errors.Newf("unknown agent %q", name)
		}
	}

	meta, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(agents))
	for _, name := range agents {
		want[name] = true
	}

	recorded := make(map[string]bool, len(meta.Agents))
	snapDir := filepath.Join(s.root, id)

	var results []Result
	for _, am := range meta.Agents {
		recorded[am.Agent] = true
		if len(want) > 0 && !want[am.Agent] {
			continue
		}
		err := restoreAgent(snapDir, am)
		results = append(results, Result{Agent: am.Agent, Restored: err == nil, Err: err})
	}

	// Requested agents the snapshot never touched are reported, not
	// silently dropped.
	for _, name := range paths.Agents() {
		if want[name] && !recorded[name] {
			results = append(results, Result{
				Agent: name,
				Err:   errors.Newf("agent %s is not recorded in snapshot %s", name, id),
			})
		}
	}
	return results, nil
}

func restoreAgent(snapDir string, am AgentMeta) error {
	if am.MCPChanged {
		if am.ConfigBackup != "" {
			if err := copyFile(filepath.Join(snapDir, am.ConfigBackup), am.Path); err != nil {
				return errors.Wrap(err, "restoring config")
			}
		} else {
			// The file did not exist before the sync; restore that.
			if err := os.Remove(am.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return errors.Wrap(err, "removing config")
			}
		}
	}

	if am.SkillsChanged {
		// Clear what is currently managed first: files the sync added
		// must go even if the backup never knew them.
		if err := skills.Clear(am.SkillsDir); err != nil {
			return errors.Wrap(err, "clearing managed skills")
		}
		if am.SkillsBackup != "" {
			if err := restoreSkills(filepath.Join(snapDir, am.SkillsBackup), am.SkillsDir); err != nil {
				return errors.Wrap(err, "restoring skills")
			}
		}
	}
	return nil
}

// restoreSkills copies a skills backup into place, content files first
// and the manifest last so the managed set never overstates what is on
// disk.
func restoreSkills(backupDir, dstDir string) error {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == skills.ManifestName {
			continue
		}
		if err := copyFile(filepath.Join(backupDir, entry.Name()), filepath.Join(dstDir, entry.Name())); err != nil {
			return err
		}
	}
	return copyFile(filepath.Join(backupDir, skills.ManifestName), filepath.Join(dstDir, skills.ManifestName))
}
