package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/prism/internal/errors"
)

func codexForTest(t *testing.T) Adapter {
	t.Helper()
	a, err := ByName("codex")
	require.NoError(t, err)
	return a
}

func TestCodexLoad(t *testing.T) {
	a := codexForTest(t)
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		doc, err := a.Load(filepath.Join(dir, "nope.toml"))
		require.NoError(t, err)
		assert.False(t, doc.Existed)
		assert.Empty(t, doc.Root)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.toml")
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

		doc, err := a.Load(path)
		require.NoError(t, err)
		assert.True(t, doc.Existed)
		assert.Empty(t, doc.Root)
	})

	t.Run("servers and unrelated settings", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		content := `model = "o4-mini"

[mcp_servers.github]
command = "npx"
args = ["-y", "server-github"]

[mcp_servers.github.env]
GITHUB_TOKEN = "tok"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		doc, err := a.Load(path)
		require.NoError(t, err)
		assert.True(t, doc.Existed)
		assert.Equal(t, "o4-mini", doc.Root["model"])

		servers := a.ExtractServers(doc)
		require.Contains(t, servers, "github")
		rec := servers["github"].(map[string]any)
		assert.Equal(t, "npx", rec["command"])
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("model = [unclosed"), 0o644))

		_, err := a.Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDialect))

		var de *DialectError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "codex", de.Agent)
		assert.Equal(t, path, de.Path)
	})
}

func TestCodexWithServersPreservesForeignKeys(t *testing.T) {
	a := codexForTest(t)

	doc := Document{Existed: true, Root: map[string]any{
		"model":           "o4-mini",
		"approval_policy": "never",
		codexServersKey: map[string]any{
			"old": map[string]any{"command": "deno"},
		},
	}}

	updated, err := a.WithServers(doc, map[string]any{
		"new": map[string]any{"command": "npx"},
	})
	require.NoError(t, err)

	assert.Equal(t, "o4-mini", updated.Root["model"])
	assert.Equal(t, "never", updated.Root["approval_policy"])

	servers := a.ExtractServers(updated)
	assert.NotContains(t, servers, "old")
	assert.Contains(t, servers, "new")

	// The input document must be untouched.
	orig := a.ExtractServers(doc)
	assert.Contains(t, orig, "old")
}

func TestCodexFormatRoundTrips(t *testing.T) {
	a := codexForTest(t)

	doc := Document{Root: map[string]any{
		"model": "o4-mini",
		codexServersKey: map[string]any{
			"github": map[string]any{
				"command":             "npx",
				"args":                []any{"-y", "server-github"},
				"startup_timeout_sec": int64(30),
			},
		},
	}}

	out, err := a.Format(doc)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, toml.Unmarshal(out, &back))
	assert.Equal(t, "o4-mini", back["model"])

	servers := back[codexServersKey].(map[string]any)
	github := servers["github"].(map[string]any)
	assert.Equal(t, "npx", github["command"])
	assert.Equal(t, int64(30), github["startup_timeout_sec"])
}

func TestCodexFormatDeterministic(t *testing.T) {
	a := codexForTest(t)

	doc := Document{Root: map[string]any{
		codexServersKey: map[string]any{
			"zeta":  map[string]any{"command": "z"},
			"alpha": map[string]any{"command": "a"},
			"mid":   map[string]any{"command": "m"},
		},
	}}

	first, err := a.Format(doc)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := a.Format(doc)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestCodexExtractServersCopies(t *testing.T) {
	a := codexForTest(t)

	doc := Document{Root: map[string]any{
		codexServersKey: map[string]any{
			"s": map[string]any{"command": "npx", "env": map[string]any{"K": "v"}},
		},
	}}

	servers := a.ExtractServers(doc)
	servers["s"].(map[string]any)["command"] = "mutated"

	fresh := a.ExtractServers(doc)
	assert.Equal(t, "npx", fresh["s"].(map[string]any)["command"])
}
