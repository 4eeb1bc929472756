package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/contentgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of the CONTENTGRID_*
// environment in environ (the process environment when nil). It returns a
// populated Config, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	defaults, err := app.ConfigFromEnv(environ)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("contentgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
ContentGrid - builds the content registry from moddable declaration files.

Usage:
  contentgrid [options] [MODULES_PATH]

Arguments:
  MODULES_PATH
    Directory whose immediate subdirectories are content modules.

Every option can also be set with a CONTENTGRID_ environment variable,
for example CONTENTGRID_LOG_LEVEL=debug.

Options:
`)
		flagSet.PrintDefaults()
	}

	modulesPathFlag := flagSet.String("modules-path", defaults.ModulesPath, "Path to the directory containing content modules.")
	mappingFlag := flagSet.String("mapping", defaults.MappingPath, "Path to the SQLite persistent mapping file. Empty disables it.")
	healthPortFlag := flagSet.Int("healthcheck-port", defaults.HealthcheckPort, "Port for the HTTP health and registry server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dumpFlag := flagSet.Bool("dump", defaults.Dump, "Print the registry after loading.")
	scriptsFlag := flagSet.Bool("scripts", defaults.ScriptsEnabled, "Run .lua scripts found in the modules.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *modulesPathFlag
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected at most one MODULES_PATH argument"}
	}
	if flagSet.NArg() == 1 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Modules path determined.", "path", path)

	config, err := app.NewConfig(app.Config{
		ModulesPath:     path,
		MappingPath:     *mappingFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       *logFormatFlag,
		LogLevel:        *logLevelFlag,
		Dump:            *dumpFlag,
		ScriptsEnabled:  *scriptsFlag,
		Telemetry:       defaults.Telemetry,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
