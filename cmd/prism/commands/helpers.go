package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/thoreinstein/prism/cmd"
	"github.com/thoreinstein/prism/internal/config"
	"github.com/thoreinstein/prism/internal/diff"
	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/logging"
	"github.com/thoreinstein/prism/internal/settings"
	"github.com/thoreinstein/prism/internal/syncer"
)

// Color helpers shared by command output.
var (
	colorAdded   = color.New(color.FgGreen)
	colorRemoved = color.New(color.FgRed)
	colorChanged = color.New(color.FgYellow)
	colorHeading = color.New(color.Bold)
	colorDim     = color.New(color.Faint)
)

// loadSettings reads the tool settings (not the unified config).
func loadSettings() (*settings.Settings, error) {
	s, err := settings.Load("")
	if err != nil {
		return nil, errors.NewSystemError(err, "Check your prism settings file")
	}
	return s, nil
}

// configPath returns the unified config path: the --config flag when
// given, the settings value otherwise.
func configPath(s *settings.Settings) string {
	if configFlag != "" {
		return configFlag
	}
	return s.ConfigPath
}

// loadConfig loads settings plus the unified config, which must exist.
func loadConfig() (*config.Config, string, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, "", err
	}
	path := configPath(s)
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, "", errors.NewUserError(err,
				"Run 'prism server add' or 'prism skill add' to create a config first")
		}
		return nil, "", errors.NewConfigError(err, path)
	}
	return cfg, path, nil
}

// loadConfigOrNew is loadConfig for editing commands: a missing file
// starts from an empty config instead of failing.
func loadConfigOrNew() (*config.Config, string, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, "", err
	}
	path := configPath(s)
	cfg, err := config.LoadOrNew(path)
	if err != nil {
		return nil, "", errors.NewConfigError(err, path)
	}
	return cfg, path, nil
}

// newStore builds the snapshot store from settings.
func newStore(s *settings.Settings) *syncer.Store {
	return syncer.New(s.SnapshotDir, syncer.WithVersion(cmd.Version))
}

// confirm asks the user to proceed. assumeYes short-circuits; on a
// non-interactive stdin the caller must have passed --yes.
func confirm(message string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !logging.IsTTY(os.Stdin) {
		return false, errors.NewUserError(
			errors.New("confirmation required on a non-interactive terminal"),
			"Re-run with --yes to skip the prompt")
	}
	var ok bool
	prompt := &survey.Confirm{Message: message, Default: false}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, errors.Wrap(err, "reading confirmation")
	}
	return ok, nil
}

// parseKVFlags parses repeated KEY=VALUE flag values into a map.
func parseKVFlags(flag string, pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.NewUserError(
				errors.Newf("invalid --%s value %q", flag, pair),
				fmt.Sprintf("Use --%s KEY=VALUE", flag))
		}
		out[k] = v
	}
	return out, nil
}

// formatDiff renders a diff as "+2 ~1 -0 (3 unchanged)", colorized.
func formatDiff(d diff.Result) string {
	if d.Empty() {
		return colorDim.Sprintf("in sync (%d unchanged)", d.Unchanged)
	}
	return fmt.Sprintf("%s %s %s %s",
		colorAdded.Sprintf("+%d", len(d.Added)),
		colorChanged.Sprintf("~%d", len(d.Changed)),
		colorRemoved.Sprintf("-%d", len(d.Removed)),
		colorDim.Sprintf("(%d unchanged)", d.Unchanged))
}

// printDiffIDs lists a diff's ids line by line under an indent.
func printDiffIDs(w io.Writer, d diff.Result) {
	for _, id := range d.Added {
		fmt.Fprintf(w, "    %s\n", colorAdded.Sprintf("+ %s", id))
	}
	for _, id := range d.Changed {
		fmt.Fprintf(w, "    %s\n", colorChanged.Sprintf("~ %s", id))
	}
	for _, id := range d.Removed {
		fmt.Fprintf(w, "    %s\n", colorRemoved.Sprintf("- %s", id))
	}
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
