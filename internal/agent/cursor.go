package agent

import (
	"github.com/thoreinstein/prism/internal/config"
)

// cursorAdapter speaks the Cursor mcp.json dialect. Servers live under
// mcpServers; stdio records carry no type (the agent infers it from
// command), remote records carry an explicit one.
type cursorAdapter struct{ base }

const cursorServersKey = "mcpServers"

func (a *cursorAdapter) Load(path string) (Document, error) {
	return loadJSONDoc(a.name, path)
}

func (a *cursorAdapter) ExtractServers(doc Document) map[string]any {
	return extractServers(doc, cursorServersKey)
}

func (a *cursorAdapter) WithServers(doc Document, servers map[string]any) (Document, error) {
	out, err := withServersJSON(doc, cursorServersKey, servers)
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Cause: err}
	}
	return out, nil
}

func (a *cursorAdapter) NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error) {
	switch spec.Transport {
	case config.TransportStdio:
		return stdioRecord(a.name, id, spec)
	case config.TransportSSE, config.TransportHTTP:
		if spec.URL == "" {
			return nil, normalizeErr(a.name, id, spec.Transport+" server requires url")
		}
		rec := map[string]any{
			"type": spec.Transport,
			"url":  spec.URL,
		}
		if len(spec.Headers) > 0 {
			rec["headers"] = toAnyMap(spec.Headers)
		}
		return rec, nil
	default:
		return nil, normalizeErr(a.name, id, "unsupported transport "+spec.Transport)
	}
}

func (a *cursorAdapter) Format(doc Document) ([]byte, error) {
	data, err := formatJSON(doc.Root)
	if err != nil {
		return nil, &DialectError{Agent: a.name, Cause: err}
	}
	return data, nil
}
