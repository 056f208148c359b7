package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "One-line drift summary per agent",
	Long: `Show, for each agent, where its native config lives, whether it exists,
and how far it has drifted from the unified config. Secret references
are left unresolved, so status works without any secrets exported.`,
	Example: `  prism status
  prism status --agent claude

  See Also:
    prism plan - Full per-id diff`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return runStatusWithWriter(cmd.OutOrStdout())
}

func runStatusWithWriter(w io.Writer) error {
	plans, err := buildPlans(false)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tCONFIG\tEXISTS\tSERVERS\tSKILLS\tDRIFT")
	for _, p := range plans {
		drift := colorDim.Sprint("in sync")
		if p.Dirty() {
			drift = colorChanged.Sprintf("%d change(s)", p.ServerDiff.Count()+p.SkillDiff.Count())
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%d/%d\t%d/%d\t%s\n",
			p.Agent,
			p.Path,
			p.Doc.Existed,
			len(p.CurrentServers), len(p.DesiredServers),
			len(p.CurrentSkills), len(p.DesiredSkills),
			drift)
	}
	return tw.Flush()
}
