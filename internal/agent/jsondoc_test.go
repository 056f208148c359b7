package agent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/prism/internal/errors"
)

func TestLoadJSONDoc(t *testing.T) {
	dir := t.TempDir()
	a, err := ByName("cursor")
	require.NoError(t, err)

	t.Run("missing file", func(t *testing.T) {
		doc, err := a.Load(filepath.Join(dir, "absent.json"))
		require.NoError(t, err)
		assert.False(t, doc.Existed)
		assert.Empty(t, doc.Root)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

		doc, err := a.Load(path)
		require.NoError(t, err)
		assert.True(t, doc.Existed)
		assert.Empty(t, doc.Root)
	})

	t.Run("comments and trailing commas tolerated", func(t *testing.T) {
		path := filepath.Join(dir, "relaxed.json")
		content := `{
  // hand-edited by the user
  "mcpServers": {
    "github": {
      "command": "npx",
      "args": ["-y", "server-github"],
    },
  },
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		doc, err := a.Load(path)
		require.NoError(t, err)
		assert.True(t, doc.Existed)

		servers := a.ExtractServers(doc)
		require.Contains(t, servers, "github")
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"mcpServers": [}`), 0o644))

		_, err := a.Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDialect))

		var de *DialectError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "cursor", de.Agent)
		assert.Equal(t, path, de.Path)
	})

	t.Run("non-object root", func(t *testing.T) {
		path := filepath.Join(dir, "array.json")
		require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0o644))

		_, err := a.Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDialect))
	})
}

func TestExtractServersToleratesBadKey(t *testing.T) {
	a, err := ByName("claude")
	require.NoError(t, err)

	for name, root := range map[string]map[string]any{
		"missing":    {},
		"wrong type": {claudeServersKey: "not an object"},
		"null":       {claudeServersKey: nil},
	} {
		servers := a.ExtractServers(Document{Existed: true, Root: root})
		assert.NotNil(t, servers, name)
		assert.Empty(t, servers, name)
	}
}

func TestWithServersJSONPreservesForeignKeys(t *testing.T) {
	a, err := ByName("claude")
	require.NoError(t, err)

	doc := Document{Existed: true, Root: map[string]any{
		"numStartups":       float64(42),
		"hasCompletedSetup": true,
		"tipsHistory":       map[string]any{"memory": float64(1)},
		claudeServersKey:    map[string]any{"old": map[string]any{"type": "stdio", "command": "deno"}},
	}}

	updated, err := a.WithServers(doc, map[string]any{
		"new": map[string]any{"type": "stdio", "command": "npx"},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(42), updated.Root["numStartups"])
	assert.Equal(t, true, updated.Root["hasCompletedSetup"])
	assert.Contains(t, updated.Root, "tipsHistory")

	servers := a.ExtractServers(updated)
	assert.NotContains(t, servers, "old")
	assert.Contains(t, servers, "new")

	// Input document untouched.
	assert.Contains(t, a.ExtractServers(doc), "old")
}

func TestFormatJSONShape(t *testing.T) {
	a, err := ByName("vscode")
	require.NoError(t, err)

	doc := Document{Root: map[string]any{
		vscodeServersKey: map[string]any{
			"github": map[string]any{"type": "stdio", "command": "npx"},
		},
	}}

	out, err := a.Format(doc)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasSuffix(s, "\n"), "output ends with newline")
	assert.Contains(t, s, "  \"servers\"", "two-space indentation")

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Contains(t, back, vscodeServersKey)
}

func TestFormatJSONDoesNotEscapeHTML(t *testing.T) {
	a, err := ByName("cursor")
	require.NoError(t, err)

	doc := Document{Root: map[string]any{
		cursorServersKey: map[string]any{
			"remote": map[string]any{"type": "sse", "url": "https://x.test/sse?a=1&b=2"},
		},
	}}

	out, err := a.Format(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a=1&b=2")
	assert.NotContains(t, string(out), `&`)
}

func TestFormatJSONEmptyDocument(t *testing.T) {
	a, err := ByName("windsurf")
	require.NoError(t, err)

	out, err := a.Format(Document{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}
