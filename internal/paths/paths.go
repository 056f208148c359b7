// Package paths centralizes filesystem locations: prism's own
// config/state directories and the native config paths of the
// supported host agents.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/prism/internal/errors"
)

// Agent identifiers for the supported host agents.
const (
	AgentCodex    = "codex"
	AgentClaude   = "claude"
	AgentWindsurf = "windsurf"
	AgentVSCode   = "vscode"
	AgentCursor   = "cursor"
)

// agentOrder is the declared iteration order used everywhere agents are
// enumerated. Output stability depends on it.
var agentOrder = []string{
	AgentCodex,
	AgentClaude,
	AgentWindsurf,
	AgentVSCode,
	AgentCursor,
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// appDir is the directory name prism claims under the XDG base directories.
const appDir = "prism"

// Agents returns all supported agent identifiers in declared order.
// Callers must not mutate the returned slice.
func Agents() []string {
	out := make([]string, len(agentOrder))
	copy(out, agentOrder)
	return out
}

// ValidAgent returns true if the agent name is recognized.
func ValidAgent(agent string) bool {
	for _, a := range agentOrder {
		if a == agent {
			return true
		}
	}
	return false
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home
// directory. Paths without a tilde prefix are returned unchanged; the
// "~user" form is not supported and passes through as-is.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// ConfigDir returns prism's own configuration directory.
// On Linux: ~/.config/prism
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDir)
}

// DefaultConfigPath returns the default location of the unified config file.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "prism.yaml")
}

// GlobalEnvPath returns the .env file consulted as a fallback source
// during secret resolution.
func GlobalEnvPath() string {
	return filepath.Join(ConfigDir(), ".env")
}

// SnapshotsDir returns the default directory where sync snapshots are stored.
func SnapshotsDir() string {
	return filepath.Join(ConfigDir(), "snapshots")
}

// NotesPath returns the default location of the notes store.
func NotesPath() string {
	return filepath.Join(ConfigDir(), "notes.json")
}

// NativeConfigCandidates returns the candidate native config file paths
// for an agent, in probe order. The first existing file wins; when none
// exists the first candidate is the write target.
//
// Agent paths:
//   - codex: ~/.codex/config.toml
//   - claude: ~/.claude.json (top-level user file, NOT inside ~/.claude/)
//   - windsurf: ~/.codeium/windsurf/mcp_config.json, then ~/.codeium/windsurf-next/mcp_config.json
//   - vscode: <ConfigHome>/Code/User/mcp.json
//   - cursor: ~/.cursor/mcp.json
//
// Returns nil for unknown agents.
func NativeConfigCandidates(agent string) []string {
	home := Home()
	if home == "" {
		return nil
	}
	switch agent {
	case AgentCodex:
		return []string{filepath.Join(home, ".codex", "config.toml")}
	case AgentClaude:
		return []string{filepath.Join(home, ".claude.json")}
	case AgentWindsurf:
		return []string{
			filepath.Join(home, ".codeium", "windsurf", "mcp_config.json"),
			filepath.Join(home, ".codeium", "windsurf-next", "mcp_config.json"),
		}
	case AgentVSCode:
		return []string{filepath.Join(xdg.ConfigHome, "Code", "User", "mcp.json")}
	case AgentCursor:
		return []string{filepath.Join(home, ".cursor", "mcp.json")}
	}
	return nil
}

// SkillsDir returns the default managed skills directory for an agent.
//
// Agent paths:
//   - codex: ~/.codex/skills
//   - claude: ~/.claude/skills
//   - windsurf: ~/.codeium/windsurf/skills
//   - vscode: <ConfigHome>/Code/User/skills
//   - cursor: ~/.cursor/skills
//
// Returns an empty string for unknown agents.
func SkillsDir(agent string) string {
	home := Home()
	if home == "" {
		return ""
	}
	switch agent {
	case AgentCodex:
		return filepath.Join(home, ".codex", "skills")
	case AgentClaude:
		return filepath.Join(home, ".claude", "skills")
	case AgentWindsurf:
		return filepath.Join(home, ".codeium", "windsurf", "skills")
	case AgentVSCode:
		return filepath.Join(xdg.ConfigHome, "Code", "User", "skills")
	case AgentCursor:
		return filepath.Join(home, ".cursor", "skills")
	}
	return ""
}
