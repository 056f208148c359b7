// Package settings manages prism's tool-level settings using Viper.
//
// Settings are the tool's own knobs (where the unified config lives,
// where snapshots go, how many to retain). The unified config itself is
// the managed document and is handled by internal/config.
package settings

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/prism/internal/errors"
	"github.com/thoreinstein/prism/internal/paths"
)

// AppName is the application name used for settings file naming.
const AppName = "prism"

// DefaultRetention is the number of snapshots kept by automatic pruning.
const DefaultRetention = 20

// Settings represents the tool-level settings structure.
type Settings struct {
	ConfigPath  string `mapstructure:"config_path" yaml:"config_path"`
	SnapshotDir string `mapstructure:"snapshot_dir" yaml:"snapshot_dir"`
	NotesPath   string `mapstructure:"notes_path" yaml:"notes_path"`
	Retention   int    `mapstructure:"retention" yaml:"retention"`
}

// Init initializes Viper with default settings.
// Call this once at application startup before accessing settings values.
func Init() {
	// Settings file
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (PRISM_CONFIG_PATH, PRISM_RETENTION, ...)
	viper.SetEnvPrefix("PRISM")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("config_path", paths.DefaultConfigPath())
	viper.SetDefault("snapshot_dir", paths.SnapshotsDir())
	viper.SetDefault("notes_path", paths.NotesPath())
	viper.SetDefault("retention", DefaultRetention)
}

// Load reads the settings file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns defaults when no file is found and no explicit path was given.
func Load(path string) (*Settings, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If the user specified a path, a missing file is an error
			if path != "" {
				return nil, errors.Wrapf(err, "settings file not found at %s", path)
			}
			// Otherwise defaults apply
		} else {
			return nil, errors.Wrap(err, "reading settings file")
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if s.Retention < 0 {
		return nil, errors.Newf("retention must be non-negative, got %d", s.Retention)
	}

	return &s, nil
}
