package config

import (
	"sort"
)

// CurrentVersion is the only supported config schema version.
const CurrentVersion = 1

// Transport values for MCP servers.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// Transports returns the valid transport values in declared order.
func Transports() []string {
	return []string{TransportStdio, TransportSSE, TransportHTTP}
}

// Config is the unified configuration document.
type Config struct {
	Version int                     `yaml:"version"`
	Servers map[string]ServerSpec   `yaml:"servers,omitempty"`
	Skills  map[string]SkillSpec    `yaml:"skills,omitempty"`
	Targets map[string]TargetPolicy `yaml:"targets,omitempty"`
}

// ServerSpec declares one MCP server in agent-neutral form.
// Env and Headers values may carry env://KEY indirections; they are
// resolved at plan/sync time, never stored resolved.
type ServerSpec struct {
	Transport string            `yaml:"transport"`
	Command   string            `yaml:"command,omitempty"`
	Args      []string          `yaml:"args,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
	URL       string            `yaml:"url,omitempty"`
	Headers   map[string]string `yaml:"headers,omitempty"`
	EnabledIn map[string]bool   `yaml:"enabledIn,omitempty"`

	// StartupTimeoutSec applies to stdio servers only; agents that have
	// no such knob ignore it.
	StartupTimeoutSec int `yaml:"startup_timeout_sec,omitempty"`
}

// SkillSpec declares one skill: either inline content or a source file
// read at materialization time.
type SkillSpec struct {
	Content    string          `yaml:"content,omitempty"`
	SourcePath string          `yaml:"sourcePath,omitempty"`
	FileName   string          `yaml:"fileName,omitempty"`
	EnabledIn  map[string]bool `yaml:"enabledIn,omitempty"`
}

// TargetPolicy configures one agent's slice of the distribution.
// Nil boolean pointers mean "default true".
type TargetPolicy struct {
	Enabled         *bool    `yaml:"enabled,omitempty"`
	Allow           []string `yaml:"allow,omitempty"`
	Deny            []string `yaml:"deny,omitempty"`
	AllowSkills     []string `yaml:"allowSkills,omitempty"`
	DenySkills      []string `yaml:"denySkills,omitempty"`
	OutputPath      string   `yaml:"outputPath,omitempty"`
	SkillsOutputDir string   `yaml:"skillsOutputDir,omitempty"`
	SkillsEnabled   *bool    `yaml:"skillsEnabled,omitempty"`
}

// New returns an empty config at the current schema version.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Servers: map[string]ServerSpec{},
		Skills:  map[string]SkillSpec{},
		Targets: map[string]TargetPolicy{},
	}
}

// Target returns the policy for agent, or the zero policy (everything
// enabled, no overrides) when none is declared.
func (c *Config) Target(agent string) TargetPolicy {
	if c.Targets == nil {
		return TargetPolicy{}
	}
	return c.Targets[agent]
}

// ServerIDs returns the declared server ids in sorted order.
func (c *Config) ServerIDs() []string {
	ids := make([]string, 0, len(c.Servers))
	for id := range c.Servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SkillIDs returns the declared skill ids in sorted order.
func (c *Config) SkillIDs() []string {
	ids := make([]string, 0, len(c.Skills))
	for id := range c.Skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the spec. Secret resolution works on
// copies so the loaded config is never mutated.
func (s ServerSpec) Clone() ServerSpec {
	out := s
	if s.Args != nil {
		out.Args = make([]string, len(s.Args))
		copy(out.Args, s.Args)
	}
	out.Env = cloneStringMap(s.Env)
	out.Headers = cloneStringMap(s.Headers)
	out.EnabledIn = cloneBoolMap(s.EnabledIn)
	return out
}

// EffectiveFileName returns the file name a skill materializes to:
// the declared fileName, or "<id>.md" when unset.
func (s SkillSpec) EffectiveFileName(id string) string {
	if s.FileName != "" {
		return s.FileName
	}
	return id + ".md"
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
