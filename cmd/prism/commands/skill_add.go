package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
)

// Package-level flag variables for the skill add command.
var (
	skillAddFile      string
	skillAddContent   string
	skillAddName      string
	skillAddEnableIn  []string
	skillAddDisableIn []string
)

func init() {
	skillAddCmd.Flags().StringVar(&skillAddFile, "file", "",
		"path to the skill's source file (relative paths resolve against the config directory)")
	skillAddCmd.Flags().StringVar(&skillAddContent, "content", "",
		"inline skill content")
	skillAddCmd.Flags().StringVar(&skillAddName, "name", "",
		"file name to write in the skills directory (default: <id>.md)")
	skillAddCmd.Flags().StringSliceVar(&skillAddEnableIn, "enable-in", nil,
		"distribute this skill only to the named agent(s) (repeatable)")
	skillAddCmd.Flags().StringSliceVar(&skillAddDisableIn, "disable-in", nil,
		"do not distribute this skill to the named agent(s) (repeatable)")
	skillCmd.AddCommand(skillAddCmd)
}

var skillAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add or update a skill definition",
	Long: `Add a skill to the unified config, or replace an existing definition
with the same id. Exactly one of --file and --content is required: a
skill either references a source file, read fresh at every sync, or
carries its content inline.`,
	Example: `  # Reference a file next to the config
  prism skill add review --file skills/review.md

  # Inline content under a custom file name
  prism skill add greeting --content "Always greet the user." --name hello.md

  See Also:
    prism skill list
    prism skill remove`,
	Args: cobra.ExactArgs(1),
	RunE: runSkillAdd,
}

func runSkillAdd(cmd *cobra.Command, args []string) error {
	return runSkillAddWithWriter(cmd.OutOrStdout(), args[0])
}

func runSkillAddWithWriter(w io.Writer, id string) error {
	if skillAddFile == "" && skillAddContent == "" {
		return errors.NewUserError(errors.New("either --file or --content is required"),
			"Reference a source file with --file or pass the text with --content")
	}
	if skillAddFile != "" && skillAddContent != "" {
		return errors.NewUserError(errors.New("cannot specify both --file and --content"), "")
	}

	enabledIn, err := enabledInFromFlags(skillAddEnableIn, skillAddDisableIn)
	if err != nil {
		return err
	}

	spec := config.SkillSpec{
		Content:    skillAddContent,
		SourcePath: skillAddFile,
		FileName:   skillAddName,
		EnabledIn:  enabledIn,
	}

	cfg, path, err := loadConfigOrNew()
	if err != nil {
		return err
	}
	_, existed := cfg.Skills[id]

	if err := cfg.UpsertSkill(id, spec); err != nil {
		return errors.NewUserError(err, "Fix the skill definition and retry")
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	verb := "Added"
	if existed {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s skill %s (%s). Run 'prism sync' to apply.\n", verb, id, spec.EffectiveFileName(id))
	return nil
}
