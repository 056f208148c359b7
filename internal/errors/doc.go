// Package errors provides error handling primitives for prism.
//
// It re-exports the subset of cockroachdb/errors that prism uses so the
// rest of the codebase imports a single errors package, and adds
// ExitError for mapping failures to process exit codes with optional
// user-facing suggestions.
//
// Exit code conventions:
//   - 0: success
//   - 1: user error (bad flag, invalid config, unknown id)
//   - 2: system error (I/O failure, unwritable target, internal bug)
package errors
