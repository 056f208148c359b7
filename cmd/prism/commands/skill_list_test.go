package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/prism/internal/config"
)

func TestRunSkillListEmpty(t *testing.T) {
	dir := setupCmdTest(t)
	writeTestConfig(t, dir, nil)

	var out bytes.Buffer
	if err := runSkillListWithWriter(&out); err != nil {
		t.Fatalf("runSkillListWithWriter() error = %v", err)
	}
	if !strings.Contains(out.String(), "No skills configured") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunSkillListShowsFrontmatterDescription(t *testing.T) {
	dir := setupCmdTest(t)

	src := filepath.Join(dir, "review.md")
	content := "---\nname: review\ndescription: Reviews diffs before merge\n---\n\nBe thorough.\n"
	if err := os.WriteFile(src, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	writeTestConfig(t, dir, func(cfg *config.Config) {
		cfg.Skills["review"] = config.SkillSpec{SourcePath: "review.md"}
		cfg.Skills["plain"] = config.SkillSpec{Content: "No frontmatter here."}
	})

	var out bytes.Buffer
	if err := runSkillListWithWriter(&out); err != nil {
		t.Fatalf("runSkillListWithWriter() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Reviews diffs before merge") {
		t.Errorf("frontmatter description missing from output:\n%s", got)
	}
	if !strings.Contains(got, "review.md") {
		t.Errorf("source path missing from output:\n%s", got)
	}
	if !strings.Contains(got, "(inline)") {
		t.Errorf("inline skill should be marked as such:\n%s", got)
	}
}

func TestRunSkillAddRequiresExactlyOneSource(t *testing.T) {
	setupCmdTest(t)

	skillAddFile = ""
	skillAddContent = ""
	var out bytes.Buffer
	if err := runSkillAddWithWriter(&out, "x"); err == nil {
		t.Error("neither --file nor --content should be rejected")
	}

	skillAddFile = "a.md"
	skillAddContent = "text"
	t.Cleanup(func() {
		skillAddFile = ""
		skillAddContent = ""
	})
	if err := runSkillAddWithWriter(&out, "x"); err == nil {
		t.Error("both --file and --content should be rejected")
	}
}
