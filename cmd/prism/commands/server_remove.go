package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
)

func init() {
	serverCmd.AddCommand(serverRemoveCmd)
}

var serverRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an MCP server from the unified config",
	Long: `Remove a server definition. The next sync removes it from every agent
it was distributed to.`,
	Args: cobra.ExactArgs(1),
	RunE: runServerRemove,
}

func runServerRemove(cmd *cobra.Command, args []string) error {
	return runServerRemoveWithWriter(cmd.OutOrStdout(), args[0])
}

func runServerRemoveWithWriter(w io.Writer, id string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RemoveServer(id); err != nil {
		return errors.NewUserError(err, "Run 'prism server list' to see configured servers")
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed server %s. Run 'prism sync' to apply.\n", id)
	return nil
}
