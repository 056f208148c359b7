package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/logging"
	"github.com/thoreinstein/prism/internal/syncer"
)

// rollbackYes holds the value of the --yes flag.
var rollbackYes bool

func init() {
	rollbackCmd.Flags().BoolVarP(&rollbackYes, "yes", "y", false,
		"restore without asking for confirmation")
	rootCmd.AddCommand(rollbackCmd)
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback [snapshot-id]",
	Short: "Restore agent configs from a snapshot",
	Long: `Restore the pre-sync state captured in a snapshot. With no snapshot id,
an interactive picker over the available snapshots is shown.

Agents are restored independently: a failure restoring one agent does
not stop the others, and each agent's outcome is reported. Any failure
makes the command exit nonzero.`,
	Example: `  # Pick a snapshot interactively
  prism rollback

  # Restore a specific snapshot, one agent only
  prism rollback 20260824T101500 --agent claude

  See Also:
    prism snapshots - List available snapshots`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRollback,
}

func runRollback(cmd *cobra.Command, args []string) error {
	return runRollbackWithWriter(cmd.OutOrStdout(), args)
}

func runRollbackWithWriter(w io.Writer, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	store := newStore(s)

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		id, err = pickSnapshot(store)
		if err != nil {
			return err
		}
		if id == "" {
			return nil // aborted picker
		}
	}

	meta, err := store.Get(id)
	if err != nil {
		if errors.Is(err, syncer.ErrSnapshotNotFound) {
			return errors.NewUserError(err, "Run 'prism snapshots' to list available snapshots")
		}
		return err
	}

	ok, err := confirm(fmt.Sprintf("Restore snapshot %s (%d agent(s))?", id, len(meta.Agents)), rollbackYes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Aborted.")
		return nil
	}

	results, err := store.Rollback(id, agentFlag)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Restored {
			fmt.Fprintf(w, "  %s %s\n", colorAdded.Sprint("restored"), r.Agent)
			continue
		}
		failed++
		fmt.Fprintf(w, "  %s %s: %v\n", colorRemoved.Sprint("failed"), r.Agent, r.Err)
	}
	if failed > 0 {
		return errors.NewUserError(
			errors.Newf("%d of %d agent(s) failed to restore", failed, len(results)), "")
	}
	fmt.Fprintf(w, "Rolled back snapshot %s.\n", id)
	return nil
}

// pickSnapshot runs the interactive snapshot picker. It returns an
// empty id when the user aborts.
func pickSnapshot(store *syncer.Store) (string, error) {
	if !logging.IsTTY(os.Stdin) {
		return "", errors.NewUserError(
			errors.New("a snapshot id is required on a non-interactive terminal"),
			"Run 'prism snapshots' and pass an id")
	}

	metas, err := store.List()
	if err != nil {
		return "", err
	}
	if len(metas) == 0 {
		return "", errors.NewUserError(errors.New("no snapshots available"), "")
	}

	idx, err := fuzzyfinder.Find(
		metas,
		func(i int) string {
			return fmt.Sprintf("%s (%d agent(s))", metas[i].ID, len(metas[i].Agents))
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			m := metas[i]
			out := fmt.Sprintf("Snapshot: %s\nCreated:  %s\n\nAgents:\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			for _, am := range m.Agents {
				out += fmt.Sprintf("  %s  mcp:%v skills:%v\n", am.Agent, am.MCPChanged, am.SkillsChanged)
			}
			return out
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "selecting snapshot")
	}
	return metas[idx].ID, nil
}
