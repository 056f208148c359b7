package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/settings"
)

// snapshotsPruneKeep holds the value of the --keep flag.
var snapshotsPruneKeep int

func init() {
	snapshotsPruneCmd.Flags().IntVar(&snapshotsPruneKeep, "keep", settings.DefaultRetention,
		"number of most recent snapshots to keep")
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Manage sync snapshots",
	Long: `List and prune the snapshots captured by sync. Each snapshot holds the
pre-sync state of every file that sync changed, and can be restored
with 'prism rollback'.`,
	Example: `  prism snapshots
  prism snapshots prune --keep 10

  See Also:
    prism rollback - Restore a snapshot`,
	Args: cobra.NoArgs,
	RunE: runSnapshotsList,
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsList,
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsPrune,
}

func runSnapshotsList(cmd *cobra.Command, _ []string) error {
	return runSnapshotsListWithWriter(cmd.OutOrStdout())
}

func runSnapshotsListWithWriter(w io.Writer) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	metas, err := newStore(s).List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(w, "No snapshots.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tAGENTS")
	for _, m := range metas {
		agents := make([]string, 0, len(m.Agents))
		for _, am := range m.Agents {
			agents = append(agents, am.Agent)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			m.ID,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			strings.Join(agents, ", "))
	}
	return tw.Flush()
}

func runSnapshotsPrune(cmd *cobra.Command, _ []string) error {
	return runSnapshotsPruneWithWriter(cmd.OutOrStdout())
}

func runSnapshotsPruneWithWriter(w io.Writer) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	pruned, err := newStore(s).Prune(snapshotsPruneKeep)
	if err != nil {
		return err
	}
	if len(pruned) == 0 {
		fmt.Fprintln(w, "Nothing to prune.")
		return nil
	}
	for _, id := range pruned {
		fmt.Fprintf(w, "  pruned %s\n", id)
	}
	fmt.Fprintf(w, "Pruned %d snapshot(s), kept %d.\n", len(pruned), snapshotsPruneKeep)
	return nil
}
