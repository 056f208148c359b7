// Package config defines the unified configuration document: the single
// YAML file declaring MCP servers, skills, and per-agent target
// policies that prism projects into each host agent's native format.
//
// The document is loaded strictly (unknown keys rejected) and validated
// on both load and save; an invalid document is never persisted.
// Editing operations validate candidate records before mutating the
// in-memory config, so a loaded-valid config stays valid.
//
// Tool-level knobs (snapshot directory, retention) live in
// internal/settings, not here.
package config
