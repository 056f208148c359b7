package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
)

// Sentinel errors for config handling.
var (
	// ErrConfigNotFound indicates the unified config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates the document failed validation.
	ErrConfigInvalid = errors.New("invalid config")
)

// ValidationError reports a single invalid field, addressed by its
// dotted path in the document (e.g. "servers.fs.command").
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Path + ": " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrConfigInvalid
}

func invalidf(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks the whole document.
// Returns nil if valid, or one error per problem.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, invalidf("version", "unsupported version %d (want %d)", cfg.Version, CurrentVersion))
	}

	for _, id := range cfg.ServerIDs() {
		errs = append(errs, ValidateServer(id, cfg.Servers[id])...)
	}
	for _, id := range cfg.SkillIDs() {
		errs = append(errs, ValidateSkill(id, cfg.Skills[id])...)
	}
	for _, agent := range sortedKeys(cfg.Targets) {
		errs = append(errs, validateTarget(agent, cfg.Targets[agent])...)
	}

	return errs
}

// ValidateServer checks a single server record. Editing operations call
// this before mutating the in-memory config.
func ValidateServer(id string, s ServerSpec) []error {
	var errs []error
	if strings.TrimSpace(id) == "" {
		errs = append(errs, invalidf("servers", "server id must not be empty"))
		return errs
	}
	base := "servers." + id

	switch s.Transport {
	case TransportStdio:
		if s.Command == "" {
			errs = append(errs, invalidf(base+".command", "stdio server requires a command"))
		}
		if s.URL != "" {
			errs = append(errs, invalidf(base+".url", "url is not allowed on a stdio server"))
		}
		if len(s.Headers) > 0 {
			errs = append(errs, invalidf(base+".headers", "headers are not allowed on a stdio server"))
		}
	case TransportSSE, TransportHTTP:
		if s.URL == "" {
			errs = append(errs, invalidf(base+".url", "%s server requires a url", s.Transport))
		}
		if s.Command != "" {
			errs = append(errs, invalidf(base+".command", "command is not allowed on a %s server", s.Transport))
		}
		if len(s.Args) > 0 {
			errs = append(errs, invalidf(base+".args", "args are not allowed on a %s server", s.Transport))
		}
		if len(s.Env) > 0 {
			errs = append(errs, invalidf(base+".env", "env is not allowed on a %s server", s.Transport))
		}
		if s.StartupTimeoutSec != 0 {
			errs = append(errs, invalidf(base+".startup_timeout_sec", "startup timeout applies to stdio servers only"))
		}
	default:
		errs = append(errs, invalidf(base+".transport", "unknown transport %q (valid: %s)", s.Transport, strings.Join(Transports(), ", ")))
	}

	if s.StartupTimeoutSec < 0 {
		errs = append(errs, invalidf(base+".startup_timeout_sec", "must be non-negative, got %d", s.StartupTimeoutSec))
	}

	errs = append(errs, validateEnabledIn(base+".enabledIn", s.EnabledIn)...)
	return errs
}

// ValidateSkill checks a single skill record.
func ValidateSkill(id string, s SkillSpec) []error {
	var errs []error
	if strings.TrimSpace(id) == "" {
		errs = append(errs, invalidf("skills", "skill id must not be empty"))
		return errs
	}
	base := "skills." + id

	switch {
	case s.Content == "" && s.SourcePath == "":
		errs = append(errs, invalidf(base, "requires exactly one of content or sourcePath"))
	case s.Content != "" && s.SourcePath != "":
		errs = append(errs, invalidf(base, "content and sourcePath are mutually exclusive"))
	}

	if s.FileName != "" && !bareFileName(s.FileName) {
		errs = append(errs, invalidf(base+".fileName", "must be a bare file name, got %q", s.FileName))
	}

	errs = append(errs, validateEnabledIn(base+".enabledIn", s.EnabledIn)...)
	return errs
}

func validateTarget(agent string, p TargetPolicy) []error {
	var errs []error
	base := "targets." + agent

	if !paths.ValidAgent(agent) {
		errs = append(errs, invalidf(base, "unknown agent (valid: %s)", validAgents()))
	}
	if p.OutputPath != "" && !wellFormedPath(p.OutputPath) {
		errs = append(errs, invalidf(base+".outputPath", "malformed path %q", p.OutputPath))
	}
	if p.SkillsOutputDir != "" && !wellFormedPath(p.SkillsOutputDir) {
		errs = append(errs, invalidf(base+".skillsOutputDir", "malformed path %q", p.SkillsOutputDir))
	}
	return errs
}

func validateEnabledIn(path string, enabledIn map[string]bool) []error {
	var errs []error
	for _, agent := range sortedKeys(enabledIn) {
		if !paths.ValidAgent(agent) {
			errs = append(errs, invalidf(path+"."+agent, "unknown agent (valid: %s)", validAgents()))
		}
	}
	return errs
}

// bareFileName reports whether name carries no directory components.
func bareFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// wellFormedPath checks path syntax without touching the filesystem.
func wellFormedPath(path string) bool {
	if strings.ContainsRune(path, '\x00') {
		return false
	}
	cleaned := filepath.Clean(path)
	return cleaned != "" && cleaned != "."
}

func validAgents() string {
	return strings.Join(paths.Agents(), ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func invalidConfigError(errs []error) error {
	return errors.Wrap(errors.Join(errs...), "config validation failed")
}
