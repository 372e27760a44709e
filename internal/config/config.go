// Package config loads rainstash settings from a YAML or TOML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	rserr "rainstash/internal/errors"
	"rainstash/internal/manifest"
	"rainstash/internal/matching"
)

const appDir = "rainstash"

// Scoring mirrors matching.Weights in file form.
type Scoring struct {
	AdjacencyBonus          int `yaml:"adjacency_bonus" toml:"adjacency_bonus"`
	SeparatorBonus          int `yaml:"separator_bonus" toml:"separator_bonus"`
	CamelBonus              int `yaml:"camel_bonus" toml:"camel_bonus"`
	LeadingLetterPenalty    int `yaml:"leading_letter_penalty" toml:"leading_letter_penalty"`
	MaxLeadingLetterPenalty int `yaml:"max_leading_letter_penalty" toml:"max_leading_letter_penalty"`
	UnmatchedLetterPenalty  int `yaml:"unmatched_letter_penalty" toml:"unmatched_letter_penalty"`
}

func (s Scoring) Weights() matching.Weights {
	return matching.Weights{
		AdjacencyBonus:          s.AdjacencyBonus,
		SeparatorBonus:          s.SeparatorBonus,
		CamelBonus:              s.CamelBonus,
		LeadingLetterPenalty:    s.LeadingLetterPenalty,
		MaxLeadingLetterPenalty: s.MaxLeadingLetterPenalty,
		UnmatchedLetterPenalty:  s.UnmatchedLetterPenalty,
	}
}

type Config struct {
	ManifestURL string  `yaml:"manifest_url" toml:"manifest_url"`
	CachePath   string  `yaml:"cache_path" toml:"cache_path"`
	Timeout     string  `yaml:"timeout" toml:"timeout"`
	Limit       int     `yaml:"limit" toml:"limit"`
	Workers     int     `yaml:"workers" toml:"workers"`
	LogLevel    string  `yaml:"log_level" toml:"log_level"`
	Scoring     Scoring `yaml:"scoring" toml:"scoring"`
}

func Default() Config {
	w := matching.DefaultWeights()
	return Config{
		ManifestURL: manifest.VanillaURL,
		CachePath:   DefaultCachePath(),
		Timeout:     "10s",
		Limit:       20,
		Workers:     runtime.NumCPU(),
		LogLevel:    "warn",
		Scoring: Scoring{
			AdjacencyBonus:          w.AdjacencyBonus,
			SeparatorBonus:          w.SeparatorBonus,
			CamelBonus:              w.CamelBonus,
			LeadingLetterPenalty:    w.LeadingLetterPenalty,
			MaxLeadingLetterPenalty: w.MaxLeadingLetterPenalty,
			UnmatchedLetterPenalty:  w.UnmatchedLetterPenalty,
		},
	}
}

// DefaultPath is RAINSTASH_CONFIG, or config.yaml in the user config dir.
func DefaultPath() string {
	if p := os.Getenv("RAINSTASH_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appDir, "config.yaml")
}

func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appDir, "itemManifest.json")
}

// Load reads path over the defaults and applies the environment. An empty
// path means DefaultPath, which is allowed to be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, err
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, rserr.WrapConfigFile(path, err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	case ".yaml", ".yml", "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return rserr.WrapInvalidConfig(fmt.Sprintf("unsupported config format %q", filepath.Ext(path)))
	}
	if err != nil {
		return rserr.WrapConfigFile(path, err)
	}
	return nil
}

// ApplyEnv overrides file values with RAINSTASH_* variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RAINSTASH_MANIFEST_URL"); v != "" {
		c.ManifestURL = v
	}
	if v := os.Getenv("RAINSTASH_CACHE"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("RAINSTASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return rserr.WrapInvalidConfig(fmt.Sprintf("timeout %q: %v", c.Timeout, err))
	}
	if d <= 0 {
		return rserr.WrapInvalidConfig("timeout must be positive")
	}
	if c.Limit < 0 {
		return rserr.WrapInvalidConfig("limit must not be negative")
	}
	if c.Workers < 1 {
		return rserr.WrapInvalidConfig("workers must be at least 1")
	}
	if c.CachePath == "" {
		return rserr.WrapInvalidConfig("cache_path is empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return rserr.WrapInvalidConfig(fmt.Sprintf("log_level %q", c.LogLevel))
	}

	s := c.Scoring
	if s.AdjacencyBonus < 0 || s.SeparatorBonus < 0 || s.CamelBonus < 0 {
		return rserr.WrapInvalidConfig("bonuses must not be negative")
	}
	if s.LeadingLetterPenalty > 0 || s.MaxLeadingLetterPenalty > 0 || s.UnmatchedLetterPenalty > 0 {
		return rserr.WrapInvalidConfig("penalties must not be positive")
	}
	if s.MaxLeadingLetterPenalty > s.LeadingLetterPenalty {
		return rserr.WrapInvalidConfig("max_leading_letter_penalty must not be above leading_letter_penalty")
	}
	return nil
}

// TimeoutDuration is Timeout parsed. Call after Validate.
func (c Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
