// Package agent translates between the unified config and each host
// agent's native MCP configuration dialect.
//
// The supported agents form a closed set with a fixed iteration order;
// each variant implements the same contract and differs only in file
// location, dialect (TOML or JSON), servers key, and per-transport
// field mapping. Adapters are pure data-shape translators: policy
// decisions (enablement, secrets) happen before a spec reaches
// NormalizeServer, and nothing policy-shaped ever leaks into a native
// record.
package agent

import (
	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
)

// ErrDialect indicates a native config could not be parsed, or a spec
// cannot be expressed in an agent's dialect.
var ErrDialect = errors.New("dialect error")

// DialectError reports the agent and, when parsing, the offending file.
type DialectError struct {
	Agent string
	Path  string
	Cause error
}

func (e *DialectError) Error() string {
	msg := e.Agent
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DialectError) Unwrap() error {
	return ErrDialect
}

// Document is a parsed native config file: the whole document as
// generic data plus whether the file existed on disk. Keeping the whole
// document lets sync rewrite only the servers key while preserving
// everything else the agent stores in the same file.
type Document struct {
	Existed bool
	Root    map[string]any
}

// Adapter is the per-agent contract. Implementations are stateless and
// safe for concurrent use.
type Adapter interface {
	// Name returns the agent identifier (one of paths.Agents()).
	Name() string

	// DisplayName returns the human-facing name for output.
	DisplayName() string

	// ResolvePath returns the native config file to read and write.
	// A policy outputPath override wins; otherwise the agent's default
	// candidates are probed and the first existing one is chosen,
	// falling back to the first candidate when none exists.
	ResolvePath(policy config.TargetPolicy) (string, error)

	// SkillsDir returns the managed skills directory for this agent,
	// honoring a policy skillsOutputDir override.
	SkillsDir(policy config.TargetPolicy) (string, error)

	// Load parses the file at path. A missing or empty file is not an
	// error: it loads as the agent's empty document shape with
	// Existed=false/true respectively. A malformed file is a
	// DialectError.
	Load(path string) (Document, error)

	// ExtractServers returns the servers held under the agent's
	// top-level key, tolerating a missing or malformed key as empty.
	// The returned map is a copy.
	ExtractServers(doc Document) map[string]any

	// WithServers returns a copy of doc with the agent's servers key
	// replaced wholesale by servers. doc is not mutated.
	WithServers(doc Document, servers map[string]any) (Document, error)

	// NormalizeServer maps a resolved spec into the agent's native
	// record shape. It fails with a DialectError when the transport's
	// required field is absent, and never emits enablement metadata.
	NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error)

	// Format serializes a document in the agent's file dialect.
	Format(doc Document) ([]byte, error)
}

// adapters is the closed variant table in declared order.
var adapters = []Adapter{
	&codexAdapter{base{name: paths.AgentCodex, displayName: "Codex"}},
	&claudeAdapter{base{name: paths.AgentClaude, displayName: "Claude Code"}},
	&windsurfAdapter{base{name: paths.AgentWindsurf, displayName: "Windsurf"}},
	&vscodeAdapter{base{name: paths.AgentVSCode, displayName: "VS Code"}},
	&cursorAdapter{base{name: paths.AgentCursor, displayName: "Cursor"}},
}

// All returns the adapters in declared order. The slice is fresh;
// callers may reorder or filter it.
func All() []Adapter {
	out := make([]Adapter, len(adapters))
	copy(out, adapters)
	return out
}

// ByName resolves a single adapter.
func ByName(name string) (Adapter, error) {
	for _, a := range adapters {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, errors.Newf("unknown agent %q (valid: %s)", name, validNames())
}

// ByNames resolves several adapters, preserving the declared order and
// dropping duplicates. An empty names list means all agents.
func ByNames(names []string) ([]Adapter, error) {
	if len(names) == 0 {
		return All(), nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := ByName(name); err != nil {
			return nil, err
		}
		want[name] = true
	}

	out := make([]Adapter, 0, len(want))
	for _, a := range adapters {
		if want[a.Name()] {
			out = append(out, a)
		}
	}
	return out, nil
}

func validNames() string {
	names := ""
	for i, a := range adapters {
		if i > 0 {
			names += ", "
		}
		names += a.Name()
	}
	return names
}

// base carries the name pair and the path resolution shared by every
// variant; the tables themselves live in the paths package.
type base struct {
	name        string
	displayName string
}

func (b base) Name() string {
	return b.name
}

func (b base) DisplayName() string {
	return b.displayName
}

func (b base) ResolvePath(policy config.TargetPolicy) (string, error) {
	if policy.OutputPath != "" {
		return paths.ExpandHome(policy.OutputPath)
	}
	candidates := paths.NativeConfigCandidates(b.name)
	if len(candidates) == 0 {
		return "", errors.Newf("no native config path for agent %s", b.name)
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}
	return candidates[0], nil
}

func (b base) SkillsDir(policy config.TargetPolicy) (string, error) {
	if policy.SkillsOutputDir != "" {
		return paths.ExpandHome(policy.SkillsOutputDir)
	}
	dir := paths.SkillsDir(b.name)
	if dir == "" {
		return "", errors.Newf("no skills directory for agent %s", b.name)
	}
	return dir, nil
}
