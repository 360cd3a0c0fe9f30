// Package config holds the run settings for the simulator.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/rvsim/emu"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config controls a simulation run.
type Config struct {
	// MaxInstructions limits the number of cycles a run may take.
	// Default: 1000000. Zero disables the limit.
	MaxInstructions uint64 `yaml:"max_instructions"`

	// StandardJAL links JAL to the address after the jump instead of the
	// address after the target.
	StandardJAL bool `yaml:"standard_jal"`

	// Trace prints the instruction and registers after every cycle.
	Trace bool `yaml:"trace"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// LogFormat is "text" or "json". Default: text.
	LogFormat string `yaml:"log_format"`

	// SyscallScript is an optional Starlark file that implements system
	// calls in place of the built-in terminate call.
	SyscallScript string `yaml:"syscall_script"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		MaxInstructions: 1_000_000,
		LogFormat:       LogFormatText,
	}
}

// Load reads a Config from a YAML (or JSON) file. Keys missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the Config to a YAML file.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log_format must be %q or %q, got %q",
			LogFormatText, LogFormatJSON, c.LogFormat)
	}
	return nil
}

// LinkMode returns the JAL link mode selected by StandardJAL.
func (c *Config) LinkMode() emu.LinkMode {
	if c.StandardJAL {
		return emu.LinkFromReturnAddress
	}
	return emu.LinkFromTarget
}

// Logger builds a slog logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EmulatorOptions converts the Config into emulator options. The logger is
// passed through to the emulator.
func (c *Config) EmulatorOptions(logger *slog.Logger) []emu.EmulatorOption {
	opts := []emu.EmulatorOption{
		emu.WithMaxInstructions(c.MaxInstructions),
		emu.WithLinkMode(c.LinkMode()),
	}
	if logger != nil {
		opts = append(opts, emu.WithLogger(logger))
	}
	return opts
}
