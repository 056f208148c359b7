package syncer

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/plan"
	"github.com/thoreinstein/prism/internal/skills"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// snapshotDirPerm keeps snapshots private: backed-up native configs
// may contain resolved secrets.
const snapshotDirPerm = 0o700

// Store is the snapshot store rooted at one directory. It owns sync
// application and rollback.
type Store struct {
	root    string
	version string
}

// Option configures a Store.
type Option func(*Store)

// WithVersion sets the tool version recorded in snapshot metadata.
func WithVersion(v string) Option {
	return func(s *Store) {
		if v != "" {
			s.version = v
		}
	}
}

// New creates a Store rooted at dir.
func New(dir string, opts ...Option) *Store {
	s := &Store{root: dir, version: "dev"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Apply executes the dirty plans in order: allocate a snapshot, back up
// every file that will change, write the new state, then commit the
// snapshot with meta.json. Plans with empty diffs are skipped entirely.
//
// A failure after the snapshot directory exists leaves it without
// meta.json; such a snapshot is invisible to List and Rollback.
func (s *Store) Apply(plans []*plan.AgentPlan) (*Meta, error) {
	if !plan.AnyDirty(plans) {
		return nil, ErrNoChanges
	}

	now := time.Now().UTC()
	id, err := allocateID(s.root, now)
	if err != nil {
		return nil, err
	}
	snapDir := filepath.Join(s.root, id)

	meta := &Meta{ID: id, CreatedAt: now, Version: s.version}

	// Backup phase: capture every pre-sync state before any write.
	for _, p := range plans {
		if !p.Dirty() {
			continue
		}
		am, err := s.backupAgent(snapDir, p)
		if err != nil {
			return nil, errors.Wrapf(err, "backing up %s", p.Agent)
		}
		meta.Agents = append(meta.Agents, am)
	}

	// Write phase.
	for _, p := range plans {
		if !p.Dirty() {
			continue
		}
		if err := applyAgent(p); err != nil {
			return nil, errors.Wrapf(err, "applying %s", p.Agent)
		}
	}

	// Commit.
	if err := fileutil.AtomicWriteJSON(filepath.Join(snapDir, "meta.json"), meta); err != nil {
		return nil, errors.Wrap(err, "committing snapshot")
	}
	return meta, nil
}

func (s *Store) backupAgent(snapDir string, p *plan.AgentPlan) (AgentMeta, error) {
	am := AgentMeta{
		Agent:         p.Agent,
		Path:          p.Path,
		SkillsDir:     p.SkillsDir,
		MCPChanged:    !p.ServerDiff.Empty(),
		SkillsChanged: !p.SkillDiff.Empty(),
	}

	agentDir := filepath.Join(snapDir, p.Agent)
	if err := os.MkdirAll(agentDir, snapshotDirPerm); err != nil {
		return AgentMeta{}, errors.Wrap(err, "creating snapshot directory")
	}

	if am.MCPChanged {
		am.ConfigExisted = p.Doc.Existed
		if p.Doc.Existed {
			name := "config" + filepath.Ext(p.Path)
			if err := copyFile(p.Path, filepath.Join(agentDir, name)); err != nil {
				return AgentMeta{}, errors.Wrap(err, "backing up config")
			}
			am.ConfigBackup = filepath.Join(p.Agent, name)
		}
	}

	if am.SkillsChanged {
		man, ok, err := skills.ReadManifest(p.SkillsDir)
		if err != nil {
			return AgentMeta{}, err
		}
		am.SkillsExisted = ok
		if ok {
			backupDir := filepath.Join(agentDir, "skills")
			if err := backupSkills(p.SkillsDir, backupDir, man); err != nil {
				return AgentMeta{}, errors.Wrap(err, "backing up skills")
			}
			am.SkillsBackup = filepath.Join(p.Agent, "skills")
		}
	}

	return am, nil
}

// backupSkills copies the manifest and every file it lists. A listed
// file missing on disk is skipped; the restored manifest will still
// list it, matching the managed-state semantics.
func backupSkills(srcDir, dstDir string, man skills.Manifest) error {
	if err := os.MkdirAll(dstDir, snapshotDirPerm); err != nil {
		return err
	}
	if err := copyFile(filepath.Join(srcDir, skills.ManifestName), filepath.Join(dstDir, skills.ManifestName)); err != nil {
		return err
	}
	for _, item := range man.Items {
		src := filepath.Join(srcDir, item.FileName)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := copyFile(src, filepath.Join(dstDir, item.FileName)); err != nil {
			return err
		}
	}
	return nil
}

func applyAgent(p *plan.AgentPlan) error {
	if !p.ServerDiff.Empty() {
		doc, err := p.Adapter.WithServers(p.Doc, p.DesiredServers)
		if err != nil {
			return err
		}
		data, err := p.Adapter.Format(doc)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
			return errors.Wrap(err, "creating config directory")
		}
		if err := fileutil.AtomicWriteFile(p.Path, data, 0o644); err != nil {
			return err
		}
	}

	if !p.SkillDiff.Empty() {
		if err := skills.Apply(p.SkillsDir, p.DesiredSkills); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies src to dst preserving the source's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source")
	}

	if err := os.MkdirAll(filepath.Dir(dst), snapshotDirPerm); err != nil {
		return errors.Wrap(err, "creating destination directory")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating destination")
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrap(err, "copying")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "closing destination")
	}
	return os.Chmod(dst, info.Mode().Perm())
}
