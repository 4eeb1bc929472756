package app

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/telemetry"
)

// EnvPrefix prefixes every environment variable the application reads.
const EnvPrefix = "CONTENTGRID_"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string `env:"MODULES_PATH" envDefault:"modules"` // module directories
	MappingPath string `env:"MAPPING_PATH"`                      // sqlite file, empty disables the cache

	LogFormat       string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	HealthcheckPort int    `env:"HEALTHCHECK_PORT"`
	Dump            bool   `env:"DUMP"`
	ScriptsEnabled  bool   `env:"SCRIPTS" envDefault:"true"`

	Telemetry telemetry.Config
}

// ConfigFromEnv reads the configuration from environ, or from the process
// environment when environ is nil. Unset variables take their defaults.
func ConfigFromEnv(environ map[string]string) (*Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, contenterr.Wrap(contenterr.CodeConfig, "invalid environment configuration", err)
	}
	return NewConfig(cfg)
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	if strings.TrimSpace(cfg.ModulesPath) == "" {
		return nil, contenterr.New(contenterr.CodeConfig, "ModulesPath is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, contenterr.New(contenterr.CodeConfig, "invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, contenterr.New(contenterr.CodeConfig, "invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, contenterr.Newf(contenterr.CodeConfig, "invalid healthcheck-port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
