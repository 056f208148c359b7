package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/redact"
)

// serverShowSecrets holds the value of the --show-secrets flag.
var serverShowSecrets bool

func init() {
	serverShowCmd.Flags().BoolVar(&serverShowSecrets, "show-secrets", false,
		"print literal env and header values instead of masking them")
	serverCmd.AddCommand(serverShowCmd)
}

var serverShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one MCP server definition",
	Long: `Print a server's unified definition as YAML. Values under env and
headers whose keys look sensitive, and any password embedded in the
url, are masked unless --show-secrets is given; env:// references are
always shown literally, since they carry no secret themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: runServerShow,
}

func runServerShow(cmd *cobra.Command, args []string) error {
	return runServerShowWithWriter(cmd.OutOrStdout(), args[0])
}

func runServerShowWithWriter(w io.Writer, id string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	spec, ok := cfg.Servers[id]
	if !ok {
		return errors.NewUserError(errors.Newf("server %q not found", id),
			"Run 'prism server list' to see configured servers")
	}

	if !serverShowSecrets {
		spec = maskServerSpec(spec)
	}

	out, err := yaml.Marshal(map[string]config.ServerSpec{id: spec})
	if err != nil {
		return errors.Wrap(err, "rendering server")
	}
	fmt.Fprint(w, string(out))
	return nil
}

// maskServerSpec masks sensitive-looking literal values in env and
// headers, and any password embedded in the URL's userinfo. env://
// references pass through untouched.
func maskServerSpec(spec config.ServerSpec) config.ServerSpec {
	masked := spec.Clone()
	masked.Env = redact.MaskSecrets(masked.Env)
	masked.Headers = redact.MaskSecrets(masked.Headers)
	masked.URL = redact.MaskURL(masked.URL)
	return masked
}
