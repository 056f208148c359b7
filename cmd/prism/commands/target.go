package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/agent"
	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
)

// targetSkills holds the value of the --skills flag on enable/disable.
var targetSkills bool

func init() {
	targetEnableCmd.Flags().BoolVar(&targetSkills, "skills", false,
		"toggle only skills distribution, not the whole agent")
	targetDisableCmd.Flags().BoolVar(&targetSkills, "skills", false,
		"toggle only skills distribution, not the whole agent")
	targetCmd.AddCommand(targetListCmd)
	targetCmd.AddCommand(targetEnableCmd)
	targetCmd.AddCommand(targetDisableCmd)
	rootCmd.AddCommand(targetCmd)
}

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Manage per-agent target policies",
	Long: `Inspect and toggle the per-agent policies that decide what the unified
config distributes where. Disabling an agent turns everything off for
it; --skills toggles only its skills distribution.`,
	Example: `  prism target list
  prism target disable vscode
  prism target disable codex --skills
  prism target enable vscode

  See Also:
    prism status - Current drift per agent`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var targetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents and their target policies",
	Args:  cobra.NoArgs,
	RunE:  runTargetList,
}

var targetEnableCmd = &cobra.Command{
	Use:   "enable <agent>",
	Short: "Enable distribution to an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTargetToggle(cmd.OutOrStdout(), args[0], true)
	},
}

var targetDisableCmd = &cobra.Command{
	Use:   "disable <agent>",
	Short: "Disable distribution to an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTargetToggle(cmd.OutOrStdout(), args[0], false)
	},
}

func runTargetList(cmd *cobra.Command, _ []string) error {
	return runTargetListWithWriter(cmd.OutOrStdout())
}

func runTargetListWithWriter(w io.Writer) error {
	cfg, _, err := loadConfigOrNew()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tENABLED\tSKILLS\tPATH\tCONSTRAINTS")
	for _, ad := range agent.All() {
		policy := cfg.Target(ad.Name())
		path, err := ad.ResolvePath(policy)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ad.Name(),
			onOff(policy.Enabled),
			onOff(policy.SkillsEnabled),
			path,
			policyConstraints(policy))
	}
	return tw.Flush()
}

func runTargetToggle(w io.Writer, name string, enabled bool) error {
	cfg, path, err := loadConfigOrNew()
	if err != nil {
		return err
	}

	if targetSkills {
		err = cfg.SetTargetSkillsEnabled(name, enabled)
	} else {
		err = cfg.SetTargetEnabled(name, enabled)
	}
	if err != nil {
		return errors.NewUserError(err, "Run 'prism target list' to see valid agents")
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	what := "agent"
	if targetSkills {
		what = "skills for agent"
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(w, "%s %s %s. Run 'prism sync' to apply.\n", state, what, name)
	return nil
}

func onOff(v *bool) string {
	if v != nil && !*v {
		return "off"
	}
	return "on"
}

// policyConstraints summarizes allow/deny lists for display.
func policyConstraints(p config.TargetPolicy) string {
	var parts []string
	if len(p.Allow) > 0 {
		parts = append(parts, "allow: "+strings.Join(p.Allow, ","))
	}
	if len(p.Deny) > 0 {
		parts = append(parts, "deny: "+strings.Join(p.Deny, ","))
	}
	if len(p.AllowSkills) > 0 {
		parts = append(parts, "allowSkills: "+strings.Join(p.AllowSkills, ","))
	}
	if len(p.DenySkills) > 0 {
		parts = append(parts, "denySkills: "+strings.Join(p.DenySkills, ","))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
