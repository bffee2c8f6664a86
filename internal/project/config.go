// Package project loads the verdict.toml configuration that ties a
// directory of serialized trees to engine settings and per-descriptor
// severity policy.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"verdict/internal/diag"
	"verdict/internal/suppress"
)

// DefaultConfigName is the file the CLI looks for next to the input.
const DefaultConfigName = "verdict.toml"

// SeverityOff disables a descriptor in the [rules] section.
const SeverityOff = "off"

var (
	// ErrBadSeverity indicates an unrecognized severity value in [rules].
	ErrBadSeverity = errors.New("project: bad severity value")
)

// EngineSettings is the [engine] section.
type EngineSettings struct {
	Jobs           int  `toml:"jobs"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Cache          bool `toml:"cache"`
}

// RuleSetting is one [rules.<id>] entry. Severity is one of
// hidden|info|warning|error, or "off" to disable the descriptor.
type RuleSetting struct {
	Severity string `toml:"severity"`
}

// Config is the parsed verdict.toml.
type Config struct {
	Engine EngineSettings         `toml:"engine"`
	Rules  map[string]RuleSetting `toml:"rules"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Engine: EngineSettings{
			Jobs:           0, // auto
			MaxDiagnostics: 200,
			Cache:          false,
		},
		Rules: map[string]RuleSetting{},
	}
}

// LoadConfig parses a verdict.toml file. Unknown keys are rejected so
// typos surface instead of silently configuring nothing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// LoadConfigIfPresent loads path when it exists and falls back to
// defaults when it does not.
func LoadConfigIfPresent(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return LoadConfig(path)
}

// Suppression converts the [rules] section into the suppression
// layer's configuration, validating severity names.
func (c Config) Suppression() (*suppress.Config, error) {
	out := suppress.NewConfig()
	for id, setting := range c.Rules {
		if setting.Severity == SeverityOff {
			out.Disable(id)
			continue
		}
		sev, err := diag.ParseSeverity(setting.Severity)
		if err != nil {
			return nil, fmt.Errorf("%w: rules.%s = %q", ErrBadSeverity, id, setting.Severity)
		}
		out.Override(id, sev)
	}
	return out, nil
}
