package agent

import (
	"github.com/thoreinstein/prism/internal/config"
)

// windsurfAdapter speaks the Codeium/Windsurf mcp_config.json dialect.
// Servers live under mcpServers with no type discriminator; remote
// servers use serverUrl instead of url, which is how the agent tells
// them apart from stdio ones. Two install locations exist, so the path
// table probes both.
type windsurfAdapter struct{ base }

const windsurfServersKey = "mcpServers"

func (a *windsurfAdapter) Load(path string) (Document, error) {
	return loadJSONDoc(a.name, path)
}

func (a *windsurfAdapter) ExtractServers(doc Document) map[string]any {
	return extractServers(doc, windsurfServersKey)
}

func (a *windsurfAdapter) WithServers(doc Document, servers map[string]any) (Document, error) {
	out, err := withServersJSON(doc, windsurfServersKey, servers)
	if err != nil {
		return Document{}, &DialectError{Agent: a.name, Cause: err}
	}
	return out, nil
}

func (a *windsurfAdapter) NormalizeServer(id string, spec config.ServerSpec) (map[string]any, error) {
	switch spec.Transport {
	case config.TransportStdio:
		return stdioRecord(a.name, id, spec)
	case config.TransportSSE, config.TransportHTTP:
		if spec.URL == "" {
			return nil, normalizeErr(a.name, id, spec.Transport+" server requires url")
		}
		rec := map[string]any{"serverUrl": spec.URL}
		if len(spec.Headers) > 0 {
			rec["headers"] = toAnyMap(spec.Headers)
		}
		return rec, nil
	default:
		return nil, normalizeErr(a.name, id, "unsupported transport "+spec.Transport)
	}
}

func (a *windsurfAdapter) Format(doc Document) ([]byte, error) {
	data, err := formatJSON(doc.Root)
	if err != nil {
		return nil, &DialectError{Agent: a.name, Cause: err}
	}
	return data, nil
}
