package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/prism/internal/errors"
)

const sampleYAML = `version: 1
servers:
  fs:
    transport: stdio
    command: npx
    args: ["-y", "@modelcontextprotocol/server-filesystem"]
    env:
      FS_ROOT: /tmp
    enabledIn:
      codex: true
      cursor: false
    startup_timeout_sec: 30
  search:
    transport: sse
    url: https://search.example.com/sse
    headers:
      Authorization: env://SEARCH_TOKEN
skills:
  review:
    content: "Review code carefully."
  style:
    sourcePath: skills/style.md
    fileName: house-style.md
targets:
  claude:
    enabled: true
    deny: [search]
  vscode:
    skillsEnabled: false
    outputPath: /tmp/custom-mcp.json
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, cfg.Servers, 2)
	fs := cfg.Servers["fs"]
	assert.Equal(t, TransportStdio, fs.Transport)
	assert.Equal(t, "npx", fs.Command)
	assert.Equal(t, []string{"-y", "@modelcontextprotocol/server-filesystem"}, fs.Args)
	assert.Equal(t, "/tmp", fs.Env["FS_ROOT"])
	assert.Equal(t, 30, fs.StartupTimeoutSec)
	assert.False(t, fs.EnabledIn["cursor"])

	search := cfg.Servers["search"]
	assert.Equal(t, TransportSSE, search.Transport)
	assert.Equal(t, "https://search.example.com/sse", search.URL)
	assert.Equal(t, "env://SEARCH_TOKEN", search.Headers["Authorization"])

	require.Len(t, cfg.Skills, 2)
	assert.Equal(t, "Review code carefully.", cfg.Skills["review"].Content)
	assert.Equal(t, "house-style.md", cfg.Skills["style"].FileName)

	claude := cfg.Target("claude")
	require.NotNil(t, claude.Enabled)
	assert.True(t, *claude.Enabled)
	assert.Equal(t, []string{"search"}, claude.Deny)

	vscode := cfg.Target("vscode")
	require.NotNil(t, vscode.SkillsEnabled)
	assert.False(t, *vscode.SkillsEnabled)
	assert.Equal(t, "/tmp/custom-mcp.json", vscode.OutputPath)
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	_, err := Parse([]byte("version: 1\nserverz: {}\n"))
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestParse_BadVersion(t *testing.T) {
	_, err := Parse([]byte("version: 2\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
	assert.Contains(t, err.Error(), "version")
}

func TestLoad_Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadOrNew_Missing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrNew(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Empty(t, cfg.Servers)
}

func TestLoadOrNew_InvalidStillErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 9\n"), 0600))

	_, err := LoadOrNew(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "prism.yaml")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_InvalidNotPersisted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.yaml")

	cfg := New()
	cfg.Servers["bad"] = ServerSpec{Transport: "carrier-pigeon"}

	err := Save(cfg, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid config must not be written")
}

func TestServerIDs_Sorted(t *testing.T) {
	cfg := New()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		cfg.Servers[id] = ServerSpec{Transport: TransportStdio, Command: "x"}
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, cfg.ServerIDs())
}

func TestServerSpec_Clone(t *testing.T) {
	orig := ServerSpec{
		Transport: TransportStdio,
		Command:   "npx",
		Args:      []string{"-y", "pkg"},
		Env:       map[string]string{"A": "1"},
		EnabledIn: map[string]bool{"codex": true},
	}

	clone := orig.Clone()
	clone.Args[0] = "mutated"
	clone.Env["A"] = "mutated"
	clone.EnabledIn["codex"] = false

	assert.Equal(t, "-y", orig.Args[0])
	assert.Equal(t, "1", orig.Env["A"])
	assert.True(t, orig.EnabledIn["codex"])
}

func TestSkillSpec_EffectiveFileName(t *testing.T) {
	assert.Equal(t, "review.md", SkillSpec{Content: "x"}.EffectiveFileName("review"))
	assert.Equal(t, "custom.md", SkillSpec{Content: "x", FileName: "custom.md"}.EffectiveFileName("review"))
}
