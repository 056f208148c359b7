package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/notes"
)

func init() {
	notesCmd.AddCommand(notesSetCmd)
	notesCmd.AddCommand(notesGetCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesRmCmd)
	rootCmd.AddCommand(notesCmd)
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Free-text notes attached to nothing in particular",
	Long: `A small key/value scratch pad stored next to prism's settings. Notes
are schema-free and live outside the unified config; they never
participate in validation or sync.`,
	Example: `  prism notes set fs "flaky on npx >= 11, pin to 10"
  prism notes get fs
  prism notes list
  prism notes rm fs`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var notesSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotesSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var notesGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotesGet(cmd.OutOrStdout(), args[0])
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List note keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runNotesList(cmd.OutOrStdout())
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotesRm(cmd.OutOrStdout(), args[0])
	},
}

// loadNotes opens the notes store at the settings-configured path.
func loadNotes() (*notes.Store, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return notes.Load(s.NotesPath)
}

func runNotesSet(w io.Writer, key, value string) error {
	store, err := loadNotes()
	if err != nil {
		return err
	}
	if err := store.Set(key, value); err != nil {
		return errors.NewUserError(err, "")
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Noted %s.\n", key)
	return nil
}

func runNotesGet(w io.Writer, key string) error {
	store, err := loadNotes()
	if err != nil {
		return err
	}
	v, ok := store.Get(key)
	if !ok {
		return errors.NewUserError(errors.Newf("no note for %q", key),
			"Run 'prism notes list' to see existing keys")
	}
	fmt.Fprintln(w, v)
	return nil
}

func runNotesList(w io.Writer) error {
	store, err := loadNotes()
	if err != nil {
		return err
	}
	keys := store.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "No notes.")
		return nil
	}
	for _, k := range keys {
		v, _ := store.Get(k)
		fmt.Fprintf(w, "%s\t%s\n", k, truncate(v, 72))
	}
	return nil
}

func runNotesRm(w io.Writer, key string) error {
	store, err := loadNotes()
	if err != nil {
		return err
	}
	if !store.Delete(key) {
		return errors.NewUserError(errors.Newf("no note for %q", key), "")
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Deleted note %s.\n", key)
	return nil
}
