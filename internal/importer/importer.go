// Package importer converts pasted MCP server snippets into unified
// server specs.
//
// Input is whatever users copy out of READMEs and agent configs: any
// of the known dialects' server containers, with comments and trailing
// commas tolerated. Literal secret values are swapped for env://
// references on the way in; the redaction heuristic is a convenience
// for common key names and token shapes, not a security boundary.
package importer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/redact"
	"github.com/thoreinstein/prism/internal/secrets"
)

// containerKeys are probed in order for the object holding servers.
// Input without any of them is treated as a bare id→record map.
var containerKeys = []string{"mcpServers", "servers", "mcp"}

// Redaction records one literal value replaced with a reference. The
// caller tells the user to export EnvKey before the next sync.
type Redaction struct {
	ServerID string
	Field    string
	EnvKey   string
}

// Detect parses raw and returns the server specs it declares, with
// sensitive-looking literals redacted. The returned map never contains
// a value that triggered redaction.
func Detect(raw []byte) (map[string]config.ServerSpec, []Redaction, error) {
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing import input")
	}
	doc := gjson.ParseBytes(std)
	if !doc.IsObject() {
		return nil, nil, errors.New("import input must be a JSON object")
	}

	container := doc
	for _, key := range containerKeys {
		if v := doc.Get(key); v.Exists() {
			if !v.IsObject() {
				return nil, nil, errors.Newf("%q is not an object", key)
			}
			container = v
			break
		}
	}

	specs := map[string]config.ServerSpec{}
	var redactions []Redaction
	var entryErr error

	container.ForEach(func(key, value gjson.Result) bool {
		id := key.String()
		spec, err := buildSpec(id, value)
		if err != nil {
			entryErr = err
			return false
		}
		spec, reds := redactSpec(id, spec)
		specs[id] = spec
		redactions = append(redactions, reds...)
		return true
	})
	if entryErr != nil {
		return nil, nil, entryErr
	}
	if len(specs) == 0 {
		return nil, nil, errors.New("no servers found in input")
	}

	return specs, redactions, nil
}

func buildSpec(id string, entry gjson.Result) (config.ServerSpec, error) {
	if !entry.IsObject() {
		return config.ServerSpec{}, errors.Newf("server %s is not an object", id)
	}

	command := entry.Get("command").String()
	url := entry.Get("url").String()
	if url == "" {
		url = entry.Get("serverUrl").String()
	}
	if command == "" && url == "" {
		return config.ServerSpec{}, errors.Newf("server %s has neither command nor url", id)
	}

	spec := config.ServerSpec{Transport: transportFor(entry.Get("type").String(), command)}
	switch spec.Transport {
	case config.TransportStdio:
		if command == "" {
			return config.ServerSpec{}, errors.Newf("server %s declares a local type without a command", id)
		}
		spec.Command = command
		for _, arg := range entry.Get("args").Array() {
			spec.Args = append(spec.Args, arg.String())
		}
		spec.Env = stringMap(entry.Get("env"))
	default:
		if url == "" {
			return config.ServerSpec{}, errors.Newf("server %s declares a remote type without a url", id)
		}
		spec.URL = url
		spec.Headers = stringMap(entry.Get("headers"))
	}
	return spec, nil
}

// transportFor maps the zoo of type discriminators onto the unified
// transport set. Absent or unrecognized types fall back to field-shape
// inference: a command means stdio, a bare url means sse.
func transportFor(typ, command string) string {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(typ, "-", ""), "_", "")) {
	case "stdio", "local":
		return config.TransportStdio
	case "sse", "remote":
		return config.TransportSSE
	case "http", "streamablehttp":
		return config.TransportHTTP
	}
	if command != "" {
		return config.TransportStdio
	}
	return config.TransportSSE
}

func stringMap(v gjson.Result) map[string]string {
	if !v.IsObject() {
		return nil
	}
	out := map[string]string{}
	v.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// redactSpec replaces sensitive-looking env and header values with
// env:// references. Values that are already references pass through.
func redactSpec(id string, spec config.ServerSpec) (config.ServerSpec, []Redaction) {
	var reds []Redaction

	redactMap := func(m map[string]string, field string) {
		for _, key := range sortedKeys(m) {
			value := m[key]
			if secrets.IsRef(value) {
				continue
			}
			if !redact.ShouldMask(key) && !redact.ContainsTokenPrefix(value) {
				continue
			}
			envKey := envKeyFor(id, key)
			m[key] = secrets.Prefix + envKey
			reds = append(reds, Redaction{
				ServerID: id,
				Field:    field + "." + key,
				EnvKey:   envKey,
			})
		}
	}

	redactMap(spec.Env, "env")
	redactMap(spec.Headers, "headers")
	return spec, reds
}

// envKeyFor derives the environment variable name for a redacted key.
// A key already in SCREAMING_SNAKE form is taken verbatim; anything
// else is upper-snaked and prefixed with the server id so generated
// names do not collide across servers.
func envKeyFor(id, key string) string {
	if isScreamingSnake(key) {
		return key
	}
	return upperSnake(id) + "_" + upperSnake(key)
}

func isScreamingSnake(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return hasLetter
}

// upperSnake converts camelCase, kebab-case, and spaced names to
// SCREAMING_SNAKE.
func upperSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			prevLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
			prevLower = unicode.IsLower(r)
		default:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		}
	}
	return strings.Trim(b.String(), "_")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
