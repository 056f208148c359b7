package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/importer"
	"github.com/thoreinstein/prism/pkg/fileutil"
)

// importSave holds the value of the --save flag.
var importSave bool

func init() {
	importCmd.Flags().BoolVar(&importSave, "save", false,
		"merge the detected servers into the unified config")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import MCP servers from a native config snippet",
	Long: `Parse a JSON snippet (an agent's native config, or just its servers
block) and convert it to unified server definitions. Comments and
trailing commas are tolerated.

Values that look like literal secrets are replaced with env://
references; the literal never enters the unified config. The preview
names the environment variables you need to export before syncing.

With no file argument, or with '-', the snippet is read from stdin.
Without --save this is a preview only.`,
	Example: `  # Preview servers found in a Claude config
  prism import ~/.claude.json

  # Pipe a snippet in and save it
  pbpaste | prism import --save

  See Also:
    prism server list
    prism sync`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	return runImportWithWriter(cmd.OutOrStdout(), cmd.InOrStdin(), args)
}

func runImportWithWriter(w io.Writer, stdin io.Reader, args []string) error {
	var raw []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(stdin)
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
	} else {
		raw, err = fileutil.ReadFileWithLimit(args[0])
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return errors.NewUserError(errors.Newf("file %s does not exist", args[0]), "")
			}
			return err
		}
	}

	servers, redactions, err := importer.Detect(raw)
	if err != nil {
		return errors.NewUserError(err, "Pass a JSON object containing MCP server definitions")
	}
	if len(servers) == 0 {
		fmt.Fprintln(w, "No MCP servers found in input.")
		return nil
	}

	out, err := yaml.Marshal(map[string]map[string]config.ServerSpec{"servers": servers})
	if err != nil {
		return errors.Wrap(err, "rendering preview")
	}
	fmt.Fprintf(w, "Detected %d server(s):\n\n%s", len(servers), string(out))

	if len(redactions) > 0 {
		fmt.Fprintf(w, "\n%s\n", colorHeading.Sprint("Redacted secrets — export these before syncing:"))
		for _, r := range redactions {
			fmt.Fprintf(w, "  %s (%s.%s)\n", r.EnvKey, r.ServerID, r.Field)
		}
	}

	if !importSave {
		fmt.Fprintln(w, "\nPreview only. Re-run with --save to merge into the unified config.")
		return nil
	}

	cfg, path, err := loadConfigOrNew()
	if err != nil {
		return err
	}
	for id, spec := range servers {
		if err := cfg.UpsertServer(id, spec); err != nil {
			return errors.NewUserError(errors.Wrapf(err, "imported server %s", id),
				"Fix the snippet and retry")
		}
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSaved %d server(s) to %s. Run 'prism sync' to apply.\n", len(servers), path)
	return nil
}
