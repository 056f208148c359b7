package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestInit_Defaults(t *testing.T) {
	viper.Reset()

	Init()

	if got := viper.GetInt("retention"); got != DefaultRetention {
		t.Errorf("retention default = %d, want %d", got, DefaultRetention)
	}
	if got := viper.GetString("config_path"); !strings.HasSuffix(got, "prism.yaml") {
		t.Errorf("config_path default = %q, want *prism.yaml", got)
	}
	if got := viper.GetString("snapshot_dir"); !strings.HasSuffix(got, "snapshots") {
		t.Errorf("snapshot_dir default = %q, want *snapshots", got)
	}
	if got := viper.GetString("notes_path"); !strings.HasSuffix(got, "notes.json") {
		t.Errorf("notes_path default = %q, want *notes.json", got)
	}
}

func TestLoad_NoSettingsFile(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	Init()

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no settings file should not error: %v", err)
	}
	if s.Retention != DefaultRetention {
		t.Errorf("retention = %d, want default %d", s.Retention, DefaultRetention)
	}
}

func TestLoad_WithSettingsFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := []byte("config_path: /tmp/custom.yaml\nretention: 5\n")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.ConfigPath != "/tmp/custom.yaml" {
		t.Errorf("config_path = %q, want /tmp/custom.yaml", s.ConfigPath)
	}
	if s.Retention != 5 {
		t.Errorf("retention = %d, want 5", s.Retention)
	}
	// Unset keys keep their defaults
	if s.SnapshotDir == "" {
		t.Error("snapshot_dir should fall back to default")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load("/non/existent/path/settings.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestLoad_NegativeRetention(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("retention: -3\n"), 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	_, err := Load(path)
	if err == nil {
		t.Error("Load() should reject negative retention")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("PRISM_RETENTION", "7")

	Init()

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Retention != 7 {
		t.Errorf("retention = %d, want env override 7", s.Retention)
	}
}
