package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/prism/internal/config"
)

func init() {
	serverCmd.AddCommand(serverListCmd)
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List MCP servers in the unified config",
	Args:  cobra.NoArgs,
	RunE:  runServerList,
}

func runServerList(cmd *cobra.Command, _ []string) error {
	return runServerListWithWriter(cmd.OutOrStdout())
}

func runServerListWithWriter(w io.Writer) error {
	cfg, _, err := loadConfigOrNew()
	if err != nil {
		return err
	}
	if len(cfg.Servers) == 0 {
		fmt.Fprintln(w, "No servers configured. Add one with 'prism server add'.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTRANSPORT\tTARGET\tRESTRICTIONS")
	for _, id := range cfg.ServerIDs() {
		spec := cfg.Servers[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			id, spec.Transport, serverTarget(spec), enabledInSummary(spec.EnabledIn))
	}
	return tw.Flush()
}

// serverTarget is the command line or URL, whichever the transport uses.
func serverTarget(spec config.ServerSpec) string {
	if spec.Transport == config.TransportStdio {
		return truncate(strings.Join(append([]string{spec.Command}, spec.Args...), " "), 48)
	}
	return truncate(spec.URL, 48)
}

// enabledInSummary renders an enabledIn map as "off: a, b" / "-".
func enabledInSummary(enabledIn map[string]bool) string {
	if len(enabledIn) == 0 {
		return "-"
	}
	var off []string
	for _, a := range sortedBoolKeys(enabledIn) {
		if !enabledIn[a] {
			off = append(off, a)
		}
	}
	if len(off) == 0 {
		return "-"
	}
	return "off: " + strings.Join(off, ", ")
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
