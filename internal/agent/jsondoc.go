package agent

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/tailscale/hujson"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadJSONDoc reads and parses a JSON native config. Comments and
// trailing commas are tolerated (several agents hand-edit these files),
// but the parsed result is plain JSON.
func loadJSONDoc(agentName, path string) (Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{Existed: false, Root: map[string]any{}}, nil
	}
	if err != nil {
		return Document{}, &DialectError{Agent: agentName, Path: path, Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{Existed: true, Root: map[string]any{}}, nil
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return Document{}, &DialectError{Agent: agentName, Path: path, Cause: err}
	}
	var root map[string]any
	if err := json.Unmarshal(std, &root); err != nil {
		return Document{}, &DialectError{Agent: agentName, Path: path, Cause: err}
	}
	if root == nil {
		root = map[string]any{}
	}
	return Document{Existed: true, Root: root}, nil
}

// extractServers pulls the server records under key, tolerating a
// missing or non-object key as empty. Values are copied shallowly per
// record via a JSON round trip so callers cannot mutate the document.
func extractServers(doc Document, key string) map[string]any {
	out := map[string]any{}
	raw, ok := doc.Root[key].(map[string]any)
	if !ok {
		return out
	}
	for id, rec := range raw {
		out[id] = deepCopyJSON(rec)
	}
	return out
}

// withServersJSON returns a deep copy of doc with key replaced by
// servers. The full document round-trips through JSON, which is safe
// because JSON dialect documents only ever hold JSON-compatible values.
func withServersJSON(doc Document, key string, servers map[string]any) (Document, error) {
	root, err := deepCopyRoot(doc.Root)
	if err != nil {
		return Document{}, err
	}
	if servers == nil {
		servers = map[string]any{}
	}
	root[key] = servers
	return Document{Existed: doc.Existed, Root: root}, nil
}

func deepCopyRoot(root map[string]any) (map[string]any, error) {
	if root == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(root)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func deepCopyJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// formatJSON renders a document as pretty two-space-indented JSON with
// a trailing newline, matching how the agents write their own files.
func formatJSON(root map[string]any) ([]byte, error) {
	if root == nil {
		root = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stdioRecord builds the transport-independent command fields shared by
// every JSON dialect's stdio shape.
func stdioRecord(agentName, id string, spec config.ServerSpec) (map[string]any, error) {
	if spec.Command == "" {
		return nil, normalizeErr(agentName, id, "stdio server requires command")
	}
	rec := map[string]any{"command": spec.Command}
	if len(spec.Args) > 0 {
		rec["args"] = toAnySlice(spec.Args)
	}
	if len(spec.Env) > 0 {
		rec["env"] = toAnyMap(spec.Env)
	}
	return rec, nil
}

func normalizeErr(agentName, id, msg string) error {
	return &DialectError{Agent: agentName, Cause: errors.Newf("server %s: %s", id, msg)}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func toAnyMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
