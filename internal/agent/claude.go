package agent

import (
	"github.com/thoreinstein/prism/internal/config"
)

// claudeAdapter speaks the ~/.claude.json dialect. Servers live under
// mcpServers and every record carries an explicit type, including
// stdio. The file doubles as the agent's general state store, so
// everything outside mcpServers must survive a rewrite untouched.
type claudeAdapter struct{ base }

const claudeServersKey = "mcpServers"

func (a *claudeAdapter) Load(path string) (Document, error) {
	return loadJSONDoc(a.name, path)
}

func (a *claudeAdapter) ExtractServers(doc Document) map[string]any {
	return extractServers(doc, claudeServersKey)
}

func (a *claudeAdapter) WithServers(doc Document, servers map[string]any) (Document, error) {
	out, err := withServersJSON(doc, claudeServersKey, servers)
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Cause: err}
	}
	return out, nil
}

func (a *claudeAdapter) NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error) {
	switch spec.Transport {
	case config.TransportStdio:
		rec, err := stdioRecord(a.name, id, spec)
		if err != nil {
			return nil, err
		}
		rec["type"] = "stdio"
		return rec, nil
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

func (a *claudeAdapter) Format(doc Document) ([]byte, error) {
	data, err := formatJSON(doc.Root)
	if err != nil {
		return nil, &DialectError{Agent: a.name, Cause: err}
	}
	return data, nil
}
