// Package config loads optional YAML defaults for the CLI. Flags always
// override values from the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults.
type Config struct {
	Unit     string    `yaml:"unit"`
	Extended bool      `yaml:"extended"`
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Unit: "ns",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file over the defaults. Unknown keys and
// unknown output units are rejected so typos surface at startup rather
// than as silently ignored settings.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		// io.EOF means an empty file, which is just the defaults
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Unit {
	case "", "ns", "us", "ms", "s", "m", "h":
	default:
		return fmt.Errorf("unknown output unit %q", cfg.Unit)
	}
	return nil
}
