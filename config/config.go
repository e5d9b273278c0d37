// Package config loads the YAML configuration file the CLI's -config flag
// points to (SPEC_FULL.md §6.1, §9).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// The global config, set once by SetGlobalConfig and read via LoadGlobal.
// A package-level configFile/SetGlobalConfig/LoadGlobal split lets
// cmd/analyze set the path from a flag without threading a *Config
// through every collaborator's constructor.
var configFile string

// SetGlobalConfig records the path a later LoadGlobal call will read.
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the file set by SetGlobalConfig. If none was set, it
// returns NewDefault with no error: an absent -config flag is not a
// misconfiguration.
func LoadGlobal() (*Config, error) {
	if configFile == "" {
		return NewDefault(), nil
	}
	return Load(configFile)
}

// Config holds everything the CLI's -config flag can override.
type Config struct {
	// LogLevel controls -v's verbosity, using the
	// Error<Warn<Info<Debug<Trace ordering from config/logging.go.
	LogLevel int `yaml:"log-level"`

	// Format is the diagnostic output format: "text" or "json".
	Format string `yaml:"format"`

	// RenderCFGDir, when non-empty, is where -render-cfg's DOT/PNG output
	// goes; a value here is equivalent to always passing -render-cfg.
	RenderCFGDir string `yaml:"render-cfg-dir"`

	// SuppressedKinds lists diagnostic Kinds that should never be reported,
	// regardless of what an analysis finds.
	SuppressedKinds []string `yaml:"suppressed-kinds"`

	// SeverityOverrides remaps a Kind's default severity ("error" or
	// "warning"), e.g. downgrading UseBeforeDef to a warning, or upgrading
	// PossibleDivisionByZero to an error.
	SeverityOverrides map[string]string `yaml:"severity-overrides"`

	sourceFile string
}

// NewDefault returns the configuration a CLI run uses when no -config file
// is given: text output, Info-level logging, no suppression or overrides.
func NewDefault() *Config {
	return &Config{
		LogLevel: int(InfoLevel),
		Format:   "text",
	}
}

// Load reads and parses filename as YAML into a Config seeded with
// NewDefault's values, so a partial file only overrides what it mentions.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.sourceFile = filename
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	return cfg, nil
}

// IsSuppressed reports whether kind should never be reported under this
// configuration.
func (c *Config) IsSuppressed(kind diag.Kind) bool {
	for _, k := range c.SuppressedKinds {
		if diag.Kind(k) == kind {
			return true
		}
	}
	return false
}

// SeverityOverride returns the overridden severity for kind and true, or
// (0, false) if this config doesn't override it.
func (c *Config) SeverityOverride(kind diag.Kind) (diag.Severity, bool) {
	s, ok := c.SeverityOverrides[string(kind)]
	if !ok {
		return 0, false
	}
	if s == "error" {
		return diag.Error, true
	}
	return diag.Warning, true
}

// Verbose reports whether the configured level is Debug or above.
func (c *Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
