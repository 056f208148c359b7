// Package cmd holds build metadata stamped in via -ldflags at release
// time. Dev builds keep the defaults.
package cmd

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
