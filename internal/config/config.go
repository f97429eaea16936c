// Package config holds the tunable defaults for echo detection, loaded from
// an optional YAML file in the workspace. Command-line flags override these
// per invocation.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"echofinder/internal/echo"
	"echofinder/internal/workspace"
)

type Config struct {
	MinWords         int      `yaml:"min_words"`
	MaxWords         int      `yaml:"max_words"`
	StripPunctuation bool     `yaml:"strip_punctuation"`
	Whitelist        []string `yaml:"whitelist"`
	Policy           string   `yaml:"policy"`
	Preset           string   `yaml:"preset"`
	Workers          int      `yaml:"workers"`
}

func Default() Config {
	return Config{
		MinWords:         2,
		MaxWords:         8,
		StripPunctuation: true,
		Whitelist:        workspace.DefaultWhitelist(),
		Policy:           string(echo.MaximalSubstring),
		Preset:           string(echo.ByWordCount),
		Workers:          0,
	}
}

// Load reads the YAML config at path. A missing file is not an error; the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults and
// validates the result. Useful in tests where configs are string literals.
func LoadFromReader(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all failures found.
func Validate(cfg Config) error {
	var errs []error

	if cfg.MinWords < 1 {
		errs = append(errs, fmt.Errorf("min_words must be at least 1, got %d", cfg.MinWords))
	}
	if cfg.MaxWords < 1 {
		errs = append(errs, fmt.Errorf("max_words must be at least 1, got %d", cfg.MaxWords))
	}
	if !echo.Policy(cfg.Policy).Valid() {
		errs = append(errs, fmt.Errorf("policy %q is invalid; valid values: %s, %s",
			cfg.Policy, echo.MaximalSubstring, echo.NonOverlapping))
	}
	if !echo.Preset(cfg.Preset).Valid() {
		errs = append(errs, fmt.Errorf("preset %q is invalid; valid values: %s, %s",
			cfg.Preset, echo.ByWordCount, echo.ByRepetitionCount))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", cfg.Workers))
	}

	return errors.Join(errs...)
}
