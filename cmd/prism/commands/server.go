package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage MCP servers in the unified config",
	Long: `Add, list, inspect, and remove MCP server definitions in the unified
config. These commands edit the config only; run 'prism sync' to push
the result to the agents.`,
	Example: `  prism server add github --command "npx -y @modelcontextprotocol/server-github"
  prism server add api --url https://api.example.com/mcp --header "Authorization=env://API_TOKEN"
  prism server list
  prism server remove github

  See Also:
    prism sync - Apply the config to the agents`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
