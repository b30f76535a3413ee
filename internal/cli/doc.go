// Package cli turns command-line arguments into an app.Config. It owns the
// cobra command definition, validates flag values, and reports usage errors
// as an ExitError carrying the process exit code.
package cli
