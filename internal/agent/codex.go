package agent

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// codexAdapter speaks codex's TOML dialect. Servers live under the
// mcp_servers table and carry no transport discriminator: a stdio
// server has command fields, a remote one has url fields, and the agent
// infers the rest. This is also the only dialect with a startup timeout
// knob.
type codexAdapter struct{ base }

const codexServersKey = "mcp_servers"

func (a *codexAdapter) Load(path string) (Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{Existed: false, Root: map[string]any{}}, nil
	}
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Path: path, Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{Existed: true, Root: map[string]any{}}, nil
	}

	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return Document{}, &DialectError{Agent: a.name, Path: path, Cause: err}
	}
	if root == nil {
		root = map[string]any{}
	}
	return Document{Existed: true, Root: root}, nil
}

func (a *codexAdapter) ExtractServers(doc Document) map[string]any {
	out := map[string]any{}
	raw, ok := doc.Root[codexServersKey].(map[string]any)
	if !ok {
		return out
	}
	for id, rec := range raw {
		out[id] = a.deepCopy(rec)
	}
	return out
}

func (a *codexAdapter) WithServers(doc Document, servers map[string]any) (Document, error) {
	root, err := a.deepCopyRoot(doc.Root)
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Cause: err}
	}
	if servers == nil {
		servers = map[string]any{}
	}
	root[codexServersKey] = servers
	return Document{Existed: doc.Existed, Root: root}, nil
}

func (a *codexAdapter) NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error) {
	switch spec.Transport {
	case config.TransportStdio:
		if spec.Command == "" {
			return nil, normalizeErr(a.name, id, "stdio server requires command")
		}
		rec := map[string]any{"command": spec.Command}
		if len(spec.Args) > 0 {
			rec["args"] = toAnySlice(spec.Args)
		}
		if len(spec.Env) > 0 {
			rec["env"] = toAnyMap(spec.Env)
		}
		if spec.StartupTimeoutSec > 0 {
			rec["startup_timeout_sec"] = int64(spec.StartupTimeoutSec)
		}
		return rec, nil
	case config.TransportSSE, config.TransportHTTP:
		if spec.URL == "" {
			return nil, normalizeErr(a.name, id, spec.Transport+" server requires url")
		}
		rec := map[string]any{"url": spec.URL}
		if len(spec.Headers) > 0 {
			rec["headers"] = toAnyMap(spec.Headers)
		}
		return rec, nil
	default:
		return nil, normalizeErr(a.name, id, "unsupported transport "+spec.Transport)
	}
}

func (a *codexAdapter) Format(doc Document) ([]byte, error) {
	root := doc.Root
	if root == nil {
		root = map[string]any{}
	}
	data, err := toml.Marshal(root)
	if err != nil {
		return nil, &DialectError{Agent: a.name, Cause: err}
	}
	return data, nil
}

// deepCopyRoot round-trips the document through the TOML codec so
// dialect-specific values (TOML datetimes in particular) survive the
// copy intact, which a JSON round trip would not guarantee.
func (a *codexAdapter) deepCopyRoot(root map[string]any) (map[string]any, error) {
	if root == nil {
		return map[string]any{}, nil
	}
	data, err := toml.Marshal(root)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *codexAdapter) deepCopy(v any) any {
	wrapped := map[string]any{"v": v}
	data, err := toml.Marshal(wrapped)
	if err != nil {
		return v
	}
	out := map[string]any{}
	if err := toml.Unmarshal(data, &out); err != nil {
		return v
	}
	return out["v"]
}
