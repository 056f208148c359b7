// Package logging builds the slog loggers used across prism.
//
// New produces either a terminal-friendly text logger (see Handler) or
// a JSON logger for machine consumption. The text handler masks
// secret-looking attr values before they hit the terminal.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(verbosity),
//		Format: logging.FormatText,
//	})
//	logger.Info("applying", "agent", "claude")
//
// Tests use [ForTest], which routes lines through t.Log; quiet mode
// uses [NewDiscard].
package logging
