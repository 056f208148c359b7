package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(skillCmd)
}

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage skills in the unified config",
	Long: `Add, list, and remove skill documents in the unified config. A skill
carries its content inline or references a source file; sync writes it
into each enabled agent's managed skills directory.`,
	Example: `  prism skill add review --file ./skills/review.md
  prism skill add greeting --content "Always greet the user." --name greeting.md
  prism skill list
  prism skill remove review

  See Also:
    prism sync - Apply the config to the agents`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
