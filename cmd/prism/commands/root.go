// Package commands implements the CLI commands for prism.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/cmd"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/logging"
	"github.com/thoreinstein/prism/internal/paths"
	"github.com/thoreinstein/prism/internal/settings"
)

// configFlag holds the value of the --config flag.
var configFlag string

// agentFlag holds the value of the --agent flag.
var agentFlag []string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	cobra.OnInitialize(settings.Init)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to the unified config file (default: settings config_path)")
	rootCmd.PersistentFlags().StringSliceVarP(&agentFlag, "agent", "a", nil,
		`target agent(s): codex, claude, windsurf, vscode, cursor (default: all)`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("prism version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "One MCP/skills config, refracted into every agent",
	Long: `prism keeps a single unified description of your MCP servers and
skills, and projects it into the native configuration format of each
supported agent: Codex, Claude Code, Windsurf, VS Code, and Cursor.

Every sync first captures a snapshot of the files it is about to touch,
so any sync can be rolled back. Planning is read-only: 'prism plan'
shows exactly what 'prism sync' would write, per agent.`,
	Example: `  # Add a server to the unified config
  prism server add github --command "npx -y @modelcontextprotocol/server-github"

  # See what would change, then apply it
  prism plan
  prism sync

  # Undo the last sync
  prism rollback

  See Also: prism status, prism snapshots`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validateAgentFlag(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(
			errors.New("--quiet and --verbose are mutually exclusive"),
			"Drop one of the two flags")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("PRISM_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	})

	handler := logger.Handler()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// The file copy is always JSON, whatever the terminal format.
		handler = logging.NewMultiHandler(handler,
			slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// validateAgentFlag checks that all specified agents are valid.
func validateAgentFlag(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if len(agentFlag) == 0 {
		return nil
	}

	var invalid []string
	for _, a := range agentFlag {
		if !paths.ValidAgent(a) {
			invalid = append(invalid, a)
		}
	}
	if len(invalid) > 0 {
		err := errors.Newf("invalid agent(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Agents(), ", "))
		return errors.NewUserError(err, "Run 'prism --help' to see valid agents")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
