package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mrivaux/sift/internal/multiline"
)

type Config struct {
	DefaultDataset string `koanf:"default_dataset"` // CSV opened when none is given on the command line
	Icons          string `koanf:"icons"`           // "nerd", "unicode", or "none"

	// Multiline detection for the text value editor
	Detector DetectorConfig `koanf:"detector"`
}

// DetectorConfig tunes the multiline detector's hysteresis band.
// release_threshold must exceed threshold for the band to be sane; the
// configured values are passed through untouched, only unset
// (non-positive) values fall back to the detector defaults.
type DetectorConfig struct {
	Threshold        int `koanf:"threshold"`         // grow-trigger sensitivity
	ReleaseThreshold int `koanf:"release_threshold"` // shrink-trigger sensitivity
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Icons: "unicode",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultDataset != "" {
		cfg.DefaultDataset = expandPath(cfg.DefaultDataset)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/sift/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sift", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetDetectorConfig returns the detector configuration with defaults
// applied to unset values. Explicitly configured numbers are not
// reordered or corrected.
func (c *Config) GetDetectorConfig() DetectorConfig {
	cfg := c.Detector

	if cfg.Threshold <= 0 {
		cfg.Threshold = multiline.DefaultThreshold
	}
	if cfg.ReleaseThreshold <= 0 {
		cfg.ReleaseThreshold = multiline.DefaultReleaseThreshold
	}

	return cfg
}
