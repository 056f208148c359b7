package agent

import (
	"github.com/thoreinstein/prism/internal/config"
)

// vscodeAdapter speaks the VS Code mcp.json dialect. Unlike the other
// JSON agents it keys servers under "servers", and every record carries
// an explicit type. The file lives under the XDG config home rather
// than a dotfile in $HOME.
type vscodeAdapter struct{ base }

const vscodeServersKey = "servers"

func (a *vscodeAdapter) Load(path string) (Document, error) {
	return loadJSONDoc(a.name, path)
}

func (a *vscodeAdapter) ExtractServers(doc Document) map[string]any {
	return extractServers(doc, vscodeServersKey)
}

func (a *vscodeAdapter) WithServers(doc Document, servers map[string]any) (Document, error) {
	out, err := withServersJSON(doc, vscodeServersKey, servers)
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Cause: err}
	}
	return out, nil
}

func (a *vscodeAdapter) NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error) {
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

func (a *vscodeAdapter) Format(doc Document) ([]byte, error) {
	data, err := formatJSON(doc.Root)
	if err != nil {
		return nil, &DialectError{Agent: a.name, Cause: err}
	}
	return data, nil
}
