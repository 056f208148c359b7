package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/skills"
	"github.com/thoreinstein/prism/pkg/frontmatter"
)

func init() {
	skillCmd.AddCommand(skillListCmd)
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills in the unified config",
	Long: `List the configured skills with the file name each will be written as
and, when the content carries YAML frontmatter, its description.`,
	Args: cobra.NoArgs,
	RunE: runSkillList,
}

// skillMatter is the frontmatter shape read for display purposes.
type skillMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func runSkillList(cmd *cobra.Command, _ []string) error {
	return runSkillListWithWriter(cmd.OutOrStdout())
}

func runSkillListWithWriter(w io.Writer) error {
	cfg, path, err := loadConfigOrNew()
	if err != nil {
		return err
	}
	if len(cfg.Skills) == 0 {
		fmt.Fprintln(w, "No skills configured. Add one with 'prism skill add'.")
		return nil
	}
	configDir := filepath.Dir(path)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILE\tSOURCE\tDESCRIPTION")
	for _, id := range cfg.SkillIDs() {
		spec := cfg.Skills[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			id,
			spec.EffectiveFileName(id),
			skillSource(spec),
			truncate(skillDescription(id, spec, configDir), 60))
	}
	return tw.Flush()
}

func skillSource(spec config.SkillSpec) string {
	if spec.SourcePath != "" {
		return spec.SourcePath
	}
	return "(inline)"
}

// skillDescription pulls the description out of the skill content's
// frontmatter. Unresolvable content or plain markdown yields "-";
// listing never fails over a broken source file.
func skillDescription(id string, spec config.SkillSpec, configDir string) string {
	f, err := skills.Materialize(id, spec, configDir)
	if err != nil {
		return "-"
	}
	var matter skillMatter
	if _, err := frontmatter.MustParse(strings.NewReader(f.Content), &matter); err != nil {
		return "-"
	}
	if matter.Description == "" {
		return "-"
	}
	return matter.Description
}
