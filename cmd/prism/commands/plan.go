package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/plan"
)

// planResolveSecrets holds the value of the --resolve-secrets flag.
var planResolveSecrets bool

func init() {
	planCmd.Flags().BoolVar(&planResolveSecrets, "resolve-secrets", false,
		"resolve env:// references strictly (fail on missing variables)")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what sync would change, per agent",
	Long: `Compute the desired native configuration for each agent from the
unified config, diff it against the agent's current on-disk state, and
show the result. Nothing is written.

By default env:// secret references are left in place so the preview
shows them literally. With --resolve-secrets, references are resolved
exactly as sync would resolve them, and a missing variable is an error.`,
	Example: `  # Preview changes for all agents
  prism plan

  # Preview one agent with strict secret resolution
  prism plan --agent claude --resolve-secrets

  See Also:
    prism sync    - Apply the plan
    prism status  - One-line drift summary per agent`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, _ []string) error {
	return runPlanWithWriter(cmd.OutOrStdout())
}

func runPlanWithWriter(w io.Writer) error {
	plans, err := buildPlans(planResolveSecrets)
	if err != nil {
		return err
	}

	for _, p := range plans {
		fmt.Fprintf(w, "%s %s\n", colorHeading.Sprint(p.Adapter.DisplayName()), colorDim.Sprint(p.Path))
		fmt.Fprintf(w, "  servers: %s\n", formatDiff(p.ServerDiff))
		printDiffIDs(w, p.ServerDiff)
		fmt.Fprintf(w, "  skills:  %s\n", formatDiff(p.SkillDiff))
		printDiffIDs(w, p.SkillDiff)
	}

	if !plan.AnyDirty(plans) {
		fmt.Fprintln(w, "Everything is in sync.")
	}
	return nil
}

// buildPlans loads the unified config and computes plans for the agents
// selected by the global --agent flag.
func buildPlans(resolveSecrets bool) ([]*plan.AgentPlan, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	plans, err := plan.Build(cfg, plan.Options{
		Agents:         agentFlag,
		ConfigDir:      filepath.Dir(path),
		ResolveSecrets: resolveSecrets,
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}
