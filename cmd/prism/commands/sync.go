package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Package-level flag variables for the sync command.
var (
	syncDryRun bool
	syncYes    bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false,
		"show what would change without writing anything")
	syncCmd.Flags().BoolVarP(&syncYes, "yes", "y", false,
		"apply without asking for confirmation")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply the unified config to every agent",
	Long: `Project the unified config into each agent's native format and write
the result. Before any write, the current state of every file that will
change is backed up into a timestamped snapshot, so the sync can be
undone with 'prism rollback'.

Secret references (env://KEY) are resolved strictly: a missing
environment variable aborts the sync before anything is written.`,
	Example: `  # Sync all agents
  prism sync

  # Sync one agent without prompting
  prism sync --agent cursor --yes

  # See what would happen first
  prism sync --dry-run

  See Also:
    prism plan      - The same preview, standalone
    prism rollback  - Undo a sync`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	return runSyncWithWriter(cmd.OutOrStdout())
}

func runSyncWithWriter(w io.Writer) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	plans, err := buildPlans(true)
	if err != nil {
		return err
	}

	dirty := 0
	for _, p := range plans {
		if !p.Dirty() {
			continue
		}
		dirty++
		fmt.Fprintf(w, "%s %s\n", colorHeading.Sprint(p.Adapter.DisplayName()), colorDim.Sprint(p.Path))
		fmt.Fprintf(w, "  servers: %s\n", formatDiff(p.ServerDiff))
		printDiffIDs(w, p.ServerDiff)
		fmt.Fprintf(w, "  skills:  %s\n", formatDiff(p.SkillDiff))
		printDiffIDs(w, p.SkillDiff)
	}

	if dirty == 0 {
		fmt.Fprintln(w, "Everything is in sync; nothing to do.")
		return nil
	}
	if syncDryRun {
		fmt.Fprintf(w, "Dry run: %d agent(s) would be updated.\n", dirty)
		return nil
	}

	ok, err := confirm(fmt.Sprintf("Apply changes to %d agent(s)?", dirty), syncYes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Aborted.")
		return nil
	}

	store := newStore(s)
	meta, err := store.Apply(plans)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Synced %d agent(s). Snapshot: %s\n", len(meta.Agents), meta.ID)

	if pruned, err := store.Prune(s.Retention); err != nil {
		slog.Warn("pruning old snapshots failed", "error", err)
	} else if len(pruned) > 0 {
		slog.Info("pruned old snapshots", "count", len(pruned))
	}
	return nil
}
