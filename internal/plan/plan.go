// Package plan computes what a sync would do without doing any of it.
//
// A plan is built per agent: load the native config, project the
// unified config through the agent's policy and dialect, and diff the
// two. Building is read-only and all-or-nothing: an error for any agent
// aborts the whole call, because applying a partial plan set would
// leave the agents inconsistent with each other.
package plan

import (
	"path/filepath"

	"github.com/thoreinstein/prism/internal/agent"
	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/diff"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/internal/secrets"
	"github.com/thoreinstein/prism/internal/skills"
)

// Options controls a plan build.
type Options struct {
	// Agents limits the build to a subset; empty means all five.
	Agents []string

	// ConfigDir anchors relative skill sourcePaths and the local .env
	// fallback.
	ConfigDir string

	// ResolveSecrets turns on strict secret resolution: a missing
	// environment variable fails the build instead of leaving the
	// reference in place. Sync always builds strictly; plan previews
	// default to lenient.
	ResolveSecrets bool

	// Resolver overrides the default secret resolver. Nil builds one
	// from the process environment with .env fallbacks from ConfigDir
	// and the global config directory.
	Resolver *secrets.Resolver
}

// AgentPlan is the computed distribution state for one agent: where its
// config lives, what it currently holds, what it should hold, and the
// structural diff between the two. Plans are ephemeral; nothing here is
// ever persisted.
type AgentPlan struct {
	Agent   string
	Adapter agent.Adapter

	Path           string
	Doc            agent.Document
	CurrentServers map[string]any
	DesiredServers map[string]any
	ServerDiff     diff.Result

	SkillsDir     string
	CurrentSkills map[string]skills.File
	DesiredSkills map[string]skills.File
	SkillDiff     diff.Result
}

// Dirty reports whether applying the plan would write anything.
func (p *AgentPlan) Dirty() bool {
	return !p.ServerDiff.Empty() || !p.SkillDiff.Empty()
}

// AnyDirty reports whether any plan in the set has pending changes.
func AnyDirty(plans []*AgentPlan) bool {
	for _, p := range plans {
		if p.Dirty() {
			return true
		}
	}
	return false
}

// Build computes plans for the requested agents in declared order.
func Build(cfg *config.Config, opts Options) ([]*AgentPlan, error) {
	adapters, err := agent.ByNames(opts.Agents)
	if err != nil {
		return nil, err
	}

	res := opts.Resolver
	if res == nil {
		res, err = secrets.New(
			secrets.WithEnvFile(filepath.Join(opts.ConfigDir, ".env")),
			secrets.WithEnvFile(paths.GlobalEnvPath()),
		)
		if err != nil {
			return nil, err
		}
	}

	plans := make([]*AgentPlan, 0, len(adapters))
	for _, ad := range adapters {
		p, err := buildAgent(cfg, ad, res, opts)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func buildAgent(cfg *config.Config, ad agent.Adapter, res *secrets.Resolver, opts Options) (*AgentPlan, error) {
	name := ad.Name()
	policy := cfg.Target(name)

	path, err := ad.ResolvePath(policy)
	if err != nil {
		return nil, err
	}
	doc, err := ad.Load(path)
	if err != nil {
		return nil, err
	}
	current := ad.ExtractServers(doc)

	desired := map[string]any{}
	for _, id := range cfg.ServerIDs() {
		spec := cfg.Servers[id]
		if !policy.ServerEnabled(name, id, spec.EnabledIn) {
			continue
		}
		resolved, err := res.ResolveServer(id, spec, opts.ResolveSecrets)
		if err != nil {
			return nil, err
		}
		rec, err := ad.NormalizeServer(id, resolved)
		if err != nil {
			return nil, err
		}
		desired[id] = rec
	}

	serverDiff, err := diff.Maps(current, desired)
	if err != nil {
		return nil, err
	}

	skillsDir, err := ad.SkillsDir(policy)
	if err != nil {
		return nil, err
	}
	currentSkills, err := skills.ReadManaged(skillsDir)
	if err != nil {
		return nil, err
	}

	desiredSkills := map[string]skills.File{}
	for _, id := range cfg.SkillIDs() {
		spec := cfg.Skills[id]
		if !policy.SkillEnabled(name, id, spec.EnabledIn) {
			continue
		}
		f, err := skills.Materialize(id, spec, opts.ConfigDir)
		if err != nil {
			return nil, err
		}
		desiredSkills[id] = f
	}
	if err := skills.CheckCollisions(desiredSkills); err != nil {
		return nil, err
	}

	skillDiff, err := diff.Maps(currentSkills, desiredSkills)
	if err != nil {
		return nil, err
	}

	return &AgentPlan{
		Agent:          name,
		Adapter:        ad,
		Path:           path,
		Doc:            doc,
		CurrentServers: current,
		DesiredServers: desired,
		ServerDiff:     serverDiff,
		SkillsDir:      skillsDir,
		CurrentSkills:  currentSkills,
		DesiredSkills:  desiredSkills,
		SkillDiff:      skillDiff,
	}, nil
}
