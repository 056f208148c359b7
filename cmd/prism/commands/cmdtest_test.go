package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/logging"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/internal/settings"
)

// setupCmdTest points settings and all agent targets into a temp dir so
// command tests never touch real agent locations. It returns the dir.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	viper.Reset()
	settings.Init()
	viper.Set("config_path", filepath.Join(dir, "prism.yaml"))
	viper.Set("snapshot_dir", filepath.Join(dir, "snapshots"))
	viper.Set("notes_path", filepath.Join(dir, "notes.json"))

	configFlag = ""
	agentFlag = nil

	// Commands log through the slog default; route it into t.Log for
	// the test's duration, then park it on a discard logger so a
	// finished test's t never receives stray records.
	slog.SetDefault(logging.ForTest(t))

	t.Cleanup(func() {
		slog.SetDefault(logging.NewDiscard())
		viper.Reset()
		configFlag = ""
		agentFlag = nil
	})
	return dir
}

// writeTestConfig saves a config whose targets all point inside dir.
func writeTestConfig(t *testing.T, dir string, mutate func(*config.Config)) string {
	t.Helper()
	cfg := config.New()
	for _, name := range paths.Agents() {
		ext := ".json"
		if name == paths.AgentCodex {
			ext = ".toml"
		}
		cfg.Targets[name] = config.TargetPolicy{
			OutputPath:      filepath.Join(dir, "native", name+ext),
			SkillsOutputDir: filepath.Join(dir, "native", name+"-skills"),
		}
	}
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, "prism.yaml")
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("saving test config: %v", err)
	}
	return path
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
