// Package config loads optional TOML run configuration for the CLI.
// Flags always override file values; the file just moves defaults.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config defines the format of the toml file.
//
// Example:
//
//	format = "json"
//	color = false
//	show-map = false
type Config struct {
	// Output format: "text" or "json". Defaults to "text".
	Format string `toml:"format"`
	// Enable ANSI colors in text output. Defaults to true.
	Color bool `toml:"color"`
	// Print the memory map after every request. Defaults to true.
	ShowMap bool `toml:"show-map"`
	// Enable verbose progress output. Defaults to false.
	Verbose bool `toml:"verbose"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:  "text",
		Color:   true,
		ShowMap: true,
	}
}

// Load reads and validates a TOML config file, starting from Default so
// omitted keys keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}

	switch cfg.Format {
	case "text", "json":
	default:
		return cfg, errors.Errorf("config: unknown format %q (want \"text\" or \"json\")", cfg.Format)
	}
	return cfg, nil
}
