// Package cli turns command-line arguments and CONTENTGRID_ environment
// variables into an app.Config. Flags override the environment, which
// overrides defaults. Invalid input is reported as an ExitError.
package cli
