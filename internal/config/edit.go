package config

import (
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
)

// UpsertServer validates spec and inserts or replaces it under id.
// The config is not mutated when the candidate is invalid.
func (c *Config) UpsertServer(id string, spec ServerSpec) error {
	if errs := ValidateServer(id, spec); len(errs) > 0 {
		return invalidConfigError(errs)
	}
	if c.Servers == nil {
		c.Servers = map[string]ServerSpec{}
	}
	c.Servers[id] = spec
	return nil
}

// RemoveServer deletes the server under id. Unknown ids error.
func (c *Config) RemoveServer(id string) error {
	if _, ok := c.Servers[id]; !ok {
		return errors.Newf("unknown server %q", id)
	}
	delete(c.Servers, id)
	return nil
}

// UpsertSkill validates spec and inserts or replaces it under id.
func (c *Config) UpsertSkill(id string, spec SkillSpec) error {
	if errs := ValidateSkill(id, spec); len(errs) > 0 {
		return invalidConfigError(errs)
	}
	if c.Skills == nil {
		c.Skills = map[string]SkillSpec{}
	}
	c.Skills[id] = spec
	return nil
}

// RemoveSkill deletes the skill under id. Unknown ids error.
func (c *Config) RemoveSkill(id string) error {
	if _, ok := c.Skills[id]; !ok {
		return errors.Newf("unknown skill %q", id)
	}
	delete(c.Skills, id)
	return nil
}

// SetTargetEnabled flips the whole agent on or off.
func (c *Config) SetTargetEnabled(agent string, enabled bool) error {
	if !paths.ValidAgent(agent) {
		return errors.Newf("unknown agent %q (valid: %s)", agent, validAgents())
	}
	if c.Targets == nil {
		c.Targets = map[string]TargetPolicy{}
	}
	pol := c.Targets[agent]
	pol.Enabled = &enabled
	c.Targets[agent] = pol
	return nil
}

// SetTargetSkillsEnabled flips skills distribution for the agent,
// leaving server distribution alone.
func (c *Config) SetTargetSkillsEnabled(agent string, enabled bool) error {
	if !paths.ValidAgent(agent) {
		return errors.Newf("unknown agent %q (valid: %s)", agent, validAgents())
	}
	if c.Targets == nil {
		c.Targets = map[string]TargetPolicy{}
	}
	pol := c.Targets[agent]
	pol.SkillsEnabled = &enabled
	c.Targets[agent] = pol
	return nil
}
