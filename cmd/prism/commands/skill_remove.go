package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
)

func init() {
	skillCmd.AddCommand(skillRemoveCmd)
}

var skillRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a skill from the unified config",
	Long: `Remove a skill definition. The next sync deletes its managed file from
every agent it was distributed to.`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillRemove,
}

func runSkillRemove(cmd *cobra.Command, args []string) error {
	return runSkillRemoveWithWriter(cmd.OutOrStdout(), args[0])
}

func runSkillRemoveWithWriter(w io.Writer, id string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RemoveSkill(id); err != nil {
		return errors.NewUserError(err, "Run 'prism skill list' to see configured skills")
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed skill %s. Run 'prism sync' to apply.\n", id)
	return nil
}
