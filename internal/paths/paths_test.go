package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestAgents_Order(t *testing.T) {
	want := []string{"codex", "claude", "windsurf", "vscode", "cursor"}
	got := Agents()
	if len(got) != len(want) {
		t.Fatalf("Agents() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Agents()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAgents_CopyIsIsolated(t *testing.T) {
	a := Agents()
	a[0] = "mutated"
	if Agents()[0] != "codex" {
		t.Error("mutating the returned slice leaked into the table")
	}
}

func TestValidAgent(t *testing.T) {
	tests := []struct {
		agent string
		want  bool
	}{
		{"codex", true},
		{"claude", true},
		{"windsurf", true},
		{"vscode", true},
		{"cursor", true},
		{"", false},
		{"Claude", false},
		{"zed", false},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			if got := ValidAgent(tt.agent); got != tt.want {
				t.Errorf("ValidAgent(%q) = %v, want %v", tt.agent, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/x/y", filepath.Join(home, "x", "y")},
		{"absolute untouched", "/etc/passwd", "/etc/passwd"},
		{"relative untouched", "x/y", "x/y"},
		{"tilde user untouched", "~other/x", "~other/x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.path)
			if err != nil {
				t.Fatalf("ExpandHome(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNativeConfigCandidates(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		agent string
		want  []string
	}{
		{"codex", []string{filepath.Join(home, ".codex", "config.toml")}},
		{"claude", []string{filepath.Join(home, ".claude.json")}},
		{"windsurf", []string{
			filepath.Join(home, ".codeium", "windsurf", "mcp_config.json"),
			filepath.Join(home, ".codeium", "windsurf-next", "mcp_config.json"),
		}},
		{"vscode", []string{filepath.Join(xdg.ConfigHome, "Code", "User", "mcp.json")}},
		{"cursor", []string{filepath.Join(home, ".cursor", "mcp.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			got := NativeConfigCandidates(tt.agent)
			if len(got) != len(tt.want) {
				t.Fatalf("candidates = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("candidates[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNativeConfigCandidates_Unknown(t *testing.T) {
	if got := NativeConfigCandidates("zed"); got != nil {
		t.Errorf("NativeConfigCandidates(zed) = %v, want nil", got)
	}
}

func TestSkillsDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		agent string
		want  string
	}{
		{"codex", filepath.Join(home, ".codex", "skills")},
		{"claude", filepath.Join(home, ".claude", "skills")},
		{"windsurf", filepath.Join(home, ".codeium", "windsurf", "skills")},
		{"vscode", filepath.Join(xdg.ConfigHome, "Code", "User", "skills")},
		{"cursor", filepath.Join(home, ".cursor", "skills")},
		{"zed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.agent, func(t *testing.T) {
			if got := SkillsDir(tt.agent); got != tt.want {
				t.Errorf("SkillsDir(%q) = %q, want %q", tt.agent, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stating dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}
	if perm := info.Mode().Perm(); perm != DefaultDirPerm {
		t.Errorf("permissions = %o, want %o", perm, DefaultDirPerm)
	}

	// Idempotent
	if err := EnsureDir(target, 0); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}
