package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
)

// Sentinel errors for server add operations.
var (
	errServerAddMissingCommandOrURL = errors.New("either --command or --url is required")
	errServerAddBothCommandAndURL   = errors.New("cannot specify both --command and --url")
)

// Package-level flag variables for the server add command.
var (
	serverAddCommand   string
	serverAddURL       string
	serverAddTransport string
	serverAddEnv       []string
	serverAddHeaders   []string
	serverAddEnableIn  []string
	serverAddDisableIn []string
	serverAddTimeout   int
)

func init() {
	serverAddCmd.Flags().StringVar(&serverAddCommand, "command", "",
		"command line for a stdio server, quoted as one string")
	serverAddCmd.Flags().StringVar(&serverAddURL, "url", "",
		"endpoint for an sse or http server")
	serverAddCmd.Flags().StringVar(&serverAddTransport, "transport", "",
		"explicit transport: stdio, sse, http (default: inferred)")
	serverAddCmd.Flags().StringSliceVar(&serverAddEnv, "env", nil,
		"environment variables in KEY=VALUE format (repeatable, values may be env://NAME)")
	serverAddCmd.Flags().StringSliceVar(&serverAddHeaders, "header", nil,
		"HTTP headers in KEY=VALUE format (repeatable, values may be env://NAME)")
	serverAddCmd.Flags().StringSliceVar(&serverAddEnableIn, "enable-in", nil,
		"distribute this server only to the named agent(s) (repeatable)")
	serverAddCmd.Flags().StringSliceVar(&serverAddDisableIn, "disable-in", nil,
		"do not distribute this server to the named agent(s) (repeatable)")
	serverAddCmd.Flags().IntVar(&serverAddTimeout, "timeout", 0,
		"startup timeout in seconds (stdio only)")
	serverCmd.AddCommand(serverAddCmd)
}

var serverAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add or update an MCP server definition",
	Long: `Add an MCP server to the unified config, or replace an existing
definition with the same id.

A stdio server takes --command with the full command line as a single
quoted string; it is split with shell quoting rules. A remote server
takes --url, defaulting to the http transport unless --transport sse
is given. Values in --env and --header may be env://NAME references,
resolved from the environment at sync time and never written to disk.`,
	Example: `  # Local stdio server
  prism server add github --command "npx -y @modelcontextprotocol/server-github"

  # Remote server with a secret header, claude and cursor only
  prism server add api --url https://api.example.com/mcp \
    --header "Authorization=env://API_TOKEN" \
    --enable-in claude --enable-in cursor

  See Also:
    prism server list
    prism server remove`,
	Args: cobra.ExactArgs(1),
	RunE: runServerAdd,
}

func runServerAdd(cmd *cobra.Command, args []string) error {
	return runServerAddWithWriter(cmd.OutOrStdout(), args[0])
}

func runServerAddWithWriter(w io.Writer, id string) error {
	spec, err := serverSpecFromFlags()
	if err != nil {
		return err
	}

	cfg, path, err := loadConfigOrNew()
	if err != nil {
		return err
	}
	_, existed := cfg.Servers[id]

	if err := cfg.UpsertServer(id, spec); err != nil {
		return errors.NewUserError(err, "Fix the server definition and retry")
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}

	verb := "Added"
	if existed {
		verb = "Updated"
	}
	fmt.Fprintf(w, "%s server %s (%s). Run 'prism sync' to apply.\n", verb, id, spec.Transport)
	return nil
}

// serverSpecFromFlags assembles a ServerSpec from the add flags.
// Validation proper happens in UpsertServer; this only resolves the
// command/url split and the transport default.
func serverSpecFromFlags() (config.ServerSpec, error) {
	if serverAddCommand == "" && serverAddURL == "" {
		return config.ServerSpec{}, errors.NewUserError(errServerAddMissingCommandOrURL,
			"Use --command for a stdio server or --url for a remote one")
	}
	if serverAddCommand != "" && serverAddURL != "" {
		return config.ServerSpec{}, errors.NewUserError(errServerAddBothCommandAndURL,
			"A server has exactly one transport")
	}

	env, err := parseKVFlags("env", serverAddEnv)
	if err != nil {
		return config.ServerSpec{}, err
	}
	headers, err := parseKVFlags("header", serverAddHeaders)
	if err != nil {
		return config.ServerSpec{}, err
	}
	enabledIn, err := enabledInFromFlags(serverAddEnableIn, serverAddDisableIn)
	if err != nil {
		return config.ServerSpec{}, err
	}

	spec := config.ServerSpec{
		Env:               env,
		Headers:           headers,
		EnabledIn:         enabledIn,
		StartupTimeoutSec: serverAddTimeout,
	}

	if serverAddCommand != "" {
		words, err := shellquote.Split(serverAddCommand)
		if err != nil {
			return config.ServerSpec{}, errors.NewUserError(
				errors.Wrap(err, "parsing --command"),
				"Quote the command line as one string, e.g. --command \"npx -y pkg\"")
		}
		if len(words) == 0 {
			return config.ServerSpec{}, errors.NewUserError(
				errors.New("--command is empty"), "")
		}
		spec.Transport = config.TransportStdio
		spec.Command = words[0]
		if len(words) > 1 {
			spec.Args = words[1:]
		}
		if serverAddTransport != "" && serverAddTransport != config.TransportStdio {
			return config.ServerSpec{}, errors.NewUserError(
				errors.Newf("--command implies the stdio transport, not %q", serverAddTransport), "")
		}
		return spec, nil
	}

	spec.URL = serverAddURL
	spec.Transport = serverAddTransport
	if spec.Transport == "" {
		spec.Transport = config.TransportHTTP
	}
	return spec, nil
}

// enabledInFromFlags merges --enable-in and --disable-in into one
// enabledIn map. Absence from enabledIn means "on", so "only these
// agents" is expressed by marking every other agent false.
func enabledInFromFlags(enable, disable []string) (map[string]bool, error) {
	if len(enable) == 0 && len(disable) == 0 {
		return nil, nil
	}
	for _, a := range append(append([]string{}, enable...), disable...) {
		if !paths.ValidAgent(a) {
			return nil, errors.NewUserError(
				errors.Newf("unknown agent %q (valid: %s)", a, strings.Join(paths.Agents(), ", ")), "")
		}
	}

	out := make(map[string]bool)
	if len(enable) > 0 {
		wanted := make(map[string]bool, len(enable))
		for _, a := range enable {
			wanted[a] = true
			out[a] = true
		}
		for _, a := range paths.Agents() {
			if !wanted[a] {
				out[a] = false
			}
		}
	}
	for _, a := range disable {
		if out[a] {
			return nil, errors.NewUserError(
				errors.Newf("agent %s is both enabled and disabled", a), "")
		}
		out[a] = false
	}
	return out, nil
}
