package syncer

import (
	"time"

	"github.com/thoreinstein/prism/internal/errors"
)

// Sentinel errors.
var (
	// ErrSnapshotNotFound indicates the requested snapshot id has no
	// committed snapshot (no directory, or no meta.json).
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrNoChanges indicates Apply was called with a plan set that has
	// nothing to write.
	ErrNoChanges = errors.New("no changes to apply")
)

// SnapshotNotFoundError carries the id that failed to resolve.
type SnapshotNotFoundError struct {
	ID string
}

func (e *SnapshotNotFoundError) Error() string {
	return "snapshot " + e.ID + " not found"
}

func (e *SnapshotNotFoundError) Unwrap() error {
	return ErrSnapshotNotFound
}

// Meta is a snapshot's commit record. Writing it is the last step of a
// sync; its absence marks the snapshot as incomplete.
type Meta struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Version   string      `json:"prism_version"`
	Agents    []AgentMeta `json:"agents"`
}

// AgentMeta records what one sync did to one agent: which files were
// touched and where their pre-sync state was backed up. Backup paths
// are snapshot-relative so a snapshot directory can be moved wholesale.
type AgentMeta struct {
	Agent         string `json:"agent"`
	Path          string `json:"path"`
	SkillsDir     string `json:"skills_dir"`
	MCPChanged    bool   `json:"mcp_changed"`
	SkillsChanged bool   `json:"skills_changed"`
	ConfigBackup  string `json:"config_backup,omitempty"`
	ConfigExisted bool   `json:"config_existed"`
	SkillsBackup  string `json:"skills_backup,omitempty"`
	SkillsExisted bool   `json:"skills_existed"`
}

// Result is one agent's rollback outcome. Rollback restores agents
// independently and reports per-agent failures instead of aborting on
// the first one.
type Result struct {
	Agent    string
	Restored bool
	Err      error
}
