// Package config loads the settings of the pretty command. Sources are
// applied in order: defaults, TOML file, PRETTY_* environment, flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"

	"github.com/tipee-sa/pretty/internal/input"
)

const (
	// EnvPrefix is prepended to upper-cased setting names, e.g. PRETTY_MAX_DEPTH
	EnvPrefix = "PRETTY_"

	// ConfigEnv names the configuration file when -config is not given
	ConfigEnv = EnvPrefix + "CONFIG"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Format      string `toml:"format" mapstructure:"format"`
	Table       bool   `toml:"table" mapstructure:"table"`
	MaxDepth    int    `toml:"max_depth" mapstructure:"max_depth"`
	RawNames    bool   `toml:"raw_names" mapstructure:"raw_names"`
	Interactive bool   `toml:"interactive" mapstructure:"interactive"`
	History     string `toml:"history" mapstructure:"history"`
	Verbose     bool   `toml:"verbose" mapstructure:"verbose"`
}

// Default returns the settings used when no source overrides them.
func Default() Config {
	return Config{
		Format:  string(input.FormatAuto),
		History: ".pretty_history",
	}
}

// flagNames maps setting keys to flag names.
var flagNames = map[string]string{
	"format":      "format",
	"table":       "table",
	"max_depth":   "max-depth",
	"raw_names":   "raw-names",
	"interactive": "i",
	"history":     "history",
	"verbose":     "v",
}

// Load builds the configuration from args and the environment and returns
// it along with the remaining positional arguments.
func Load(args []string, lookupEnv func(string) (string, bool), usage io.Writer) (Config, []string, error) {
	defaults := Default()

	fs := flag.NewFlagSet("pretty", flag.ContinueOnError)
	fs.SetOutput(usage)
	configPath := fs.String("config", "", "TOML configuration `file`")
	fs.String(flagNames["format"], defaults.Format, "input format: auto, json, yaml or toml")
	fs.Bool(flagNames["table"], defaults.Table, "render top-level entries as a table")
	fs.Int(flagNames["max_depth"], defaults.MaxDepth, "maximum container nesting, 0 for no limit")
	fs.Bool(flagNames["raw_names"], defaults.RawNames, "print package-qualified type names")
	fs.Bool(flagNames["interactive"], defaults.Interactive, "read YAML values from an interactive prompt")
	fs.String(flagNames["history"], defaults.History, "history `file` of the interactive prompt")
	fs.Bool(flagNames["verbose"], defaults.Verbose, "log debug information to stderr")
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}

	settings := make(map[string]any)
	if err := mapstructure.Decode(defaults, &settings); err != nil {
		return Config{}, nil, fmt.Errorf("encoding defaults: %w", err)
	}

	path := *configPath
	if path == "" {
		path, _ = lookupEnv(ConfigEnv)
	}
	if path != "" {
		var file map[string]any
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return Config{}, nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		for key, value := range file {
			if _, known := flagNames[key]; !known {
				return Config{}, nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, key, path)
			}
			settings[key] = value
		}
	}

	for key := range flagNames {
		if value, ok := lookupEnv(EnvPrefix + strings.ToUpper(key)); ok {
			settings[key] = value
		}
	}

	keys := make(map[string]string, len(flagNames))
	for key, name := range flagNames {
		keys[name] = key
	}
	fs.Visit(func(f *flag.Flag) {
		if key, ok := keys[f.Name]; ok {
			settings[key] = f.Value.String()
		}
	})

	cfg := Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, nil, fmt.Errorf("creating decoder: %w", err)
	}
	if err := decoder.Decode(settings); err != nil {
		return Config{}, nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

// Validate checks values that decoding cannot.
func (c *Config) Validate() error {
	if _, err := input.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalid, c.MaxDepth)
	}
	return nil
}

// InputFormat returns the parsed Format setting.
func (c *Config) InputFormat() input.Format {
	f, _ := input.ParseFormat(c.Format)
	return f
}
