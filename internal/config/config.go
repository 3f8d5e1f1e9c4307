package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvKeymap      = "KEYSTROKE_KEYMAP"
	EnvContext     = "KEYSTROKE_CONTEXT"
	EnvSimulateIME = "KEYSTROKE_SIMULATE_IME"
	EnvLogLevel    = "KEYSTROKE_LOG_LEVEL"
)

// Config is the tool configuration.
type Config struct {
	Keymap  KeymapConfig  `toml:"keymap"`
	Input   InputConfig   `toml:"input"`
	Logging LoggingConfig `toml:"logging"`
}

// KeymapConfig selects the user keymap.
type KeymapConfig struct {
	// Path is the user keymap file. Empty means defaults only.
	Path string `toml:"path"`

	// Context is the binding context used for matching.
	Context string `toml:"context"`
}

// InputConfig controls how presses are interpreted.
type InputConfig struct {
	// SimulateIME fills in IME text for typed chords before matching.
	SimulateIME bool `toml:"simulate_ime"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keystroke", "config.toml")
}

// Load reads the configuration file at path, applies environment
// overrides and validates the result. A missing file is not an error;
// defaults are used instead.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Keymap.Path = expandHome(cfg.Keymap.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadReader reads configuration from r without environment overrides.
func LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := decode("<reader>", data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}

// applyEnv overlays environment variables onto cfg. Variables that are
// unset or empty leave the file settings alone.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	env := func(name string) (string, bool) {
		v, ok := lookup(name)
		return v, ok && v != ""
	}

	if v, ok := env(EnvKeymap); ok {
		c.Keymap.Path = v
	}
	if v, ok := env(EnvContext); ok {
		c.Keymap.Context = v
	}
	if v, ok := env(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := env(EnvSimulateIME); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvSimulateIME, v)
		}
		c.Input.SimulateIME = b
	}
	return nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.Logging.Level)
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
