// Package config loads cc-line's TOML configuration. Values missing
// from the file keep their defaults; unknown keys produce warnings
// rather than errors so an old binary tolerates a newer config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Theme    ThemeConfig
	Gauge    GaugeConfig
	Forecast ForecastConfig
	Cache    CacheConfig
	Segments SegmentsConfig
}

type ThemeConfig struct {
	Name      string            `toml:"name"`
	Truecolor string            `toml:"truecolor"` // "auto" | "always" | "never"
	Overrides map[string]string `toml:"overrides"`
}

type GaugeConfig struct {
	Style      string `toml:"style"`       // "vertical" | "blocks" | "none"
	Width      int    `toml:"width"`       // horizontal form width in cells
	ContextBar bool   `toml:"context_bar"` // progress bar in the context segment
}

type ForecastConfig struct {
	HalfTrustHours float64 `toml:"half_trust_hours"`
	RelevanceCoeff float64 `toml:"relevance_coeff"`
}

type CacheConfig struct {
	DBPath     string `toml:"db_path"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

type SegmentsConfig struct {
	Order []string `toml:"order"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Theme: ThemeConfig{
			Name:      "dark",
			Truecolor: "auto",
		},
		Gauge: GaugeConfig{
			Style: "vertical",
			Width: 10,
		},
		Forecast: ForecastConfig{
			HalfTrustHours: 16,
			RelevanceCoeff: 1.4,
		},
		Cache: CacheConfig{
			DBPath:     defaultCachePath(),
			TTLSeconds: 120,
		},
		Segments: SegmentsConfig{
			Order: []string{"model", "context", "5h", "7d", "forecast"},
		},
	}
}

// knownSegments are the segment names accepted in segments.order.
var knownSegments = map[string]bool{
	"model":    true,
	"context":  true,
	"5h":       true,
	"7d":       true,
	"forecast": true,
}

type LoadResult struct {
	Config   Config
	Warnings []string
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cc-line", "config.toml")
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cc-line.db"
	}
	return filepath.Join(home, ".cache", "cc-line", "cc-line.db")
}

func Load() (*LoadResult, error) {
	return LoadFrom(defaultConfigPath())
}

func LoadFrom(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadResult{Config: DefaultConfig()}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromString(string(data))
}

// LoadFromString parses a config document, merging values present in
// the document over the defaults.
func LoadFromString(data string) (*LoadResult, error) {
	result := &LoadResult{Config: DefaultConfig()}
	if data == "" {
		return result, nil
	}

	var raw map[string]any
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	knownTopLevel := map[string]bool{
		"theme":    true,
		"gauge":    true,
		"forecast": true,
		"cache":    true,
		"segments": true,
	}
	for key := range raw {
		if !knownTopLevel[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown config key: %q", key))
		}
	}

	var tf tomlFile
	if _, err := toml.Decode(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	mergeFromRaw(&result.Config, &tf, raw)

	if err := validate(&result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

type tomlFile struct {
	Theme    *ThemeConfig    `toml:"theme"`
	Gauge    *GaugeConfig    `toml:"gauge"`
	Forecast *ForecastConfig `toml:"forecast"`
	Cache    *CacheConfig    `toml:"cache"`
	Segments *SegmentsConfig `toml:"segments"`
}

// mergeFromRaw copies only the keys actually present in the document,
// so a zero value in the file is distinguishable from an absent key.
func mergeFromRaw(cfg *Config, tf *tomlFile, raw map[string]any) {
	if tf.Theme != nil {
		if section, ok := rawSection(raw, "theme"); ok {
			if _, exists := section["name"]; exists {
				cfg.Theme.Name = tf.Theme.Name
			}
			if _, exists := section["truecolor"]; exists {
				cfg.Theme.Truecolor = tf.Theme.Truecolor
			}
			if _, exists := section["overrides"]; exists {
				cfg.Theme.Overrides = tf.Theme.Overrides
			}
		}
	}
	if tf.Gauge != nil {
		if section, ok := rawSection(raw, "gauge"); ok {
			if _, exists := section["style"]; exists {
				cfg.Gauge.Style = tf.Gauge.Style
			}
			if _, exists := section["width"]; exists {
				cfg.Gauge.Width = tf.Gauge.Width
			}
			if _, exists := section["context_bar"]; exists {
				cfg.Gauge.ContextBar = tf.Gauge.ContextBar
			}
		}
	}
	if tf.Forecast != nil {
		if section, ok := rawSection(raw, "forecast"); ok {
			if _, exists := section["half_trust_hours"]; exists {
				cfg.Forecast.HalfTrustHours = tf.Forecast.HalfTrustHours
			}
			if _, exists := section["relevance_coeff"]; exists {
				cfg.Forecast.RelevanceCoeff = tf.Forecast.RelevanceCoeff
			}
		}
	}
	if tf.Cache != nil {
		if section, ok := rawSection(raw, "cache"); ok {
			if _, exists := section["db_path"]; exists {
				cfg.Cache.DBPath = tf.Cache.DBPath
			}
			if _, exists := section["ttl_seconds"]; exists {
				cfg.Cache.TTLSeconds = tf.Cache.TTLSeconds
			}
		}
	}
	if tf.Segments != nil {
		if section, ok := rawSection(raw, "segments"); ok {
			if _, exists := section["order"]; exists {
				cfg.Segments.Order = tf.Segments.Order
			}
		}
	}
}

func rawSection(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Theme.Name == "" {
		errs = append(errs, "theme name must not be empty")
	}
	switch cfg.Theme.Truecolor {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Sprintf("theme truecolor must be auto, always, or never, got %q", cfg.Theme.Truecolor))
	}

	switch cfg.Gauge.Style {
	case "vertical", "blocks", "none":
	default:
		errs = append(errs, fmt.Sprintf("gauge style must be vertical, blocks, or none, got %q", cfg.Gauge.Style))
	}
	if cfg.Gauge.Width < 2 || cfg.Gauge.Width > 128 {
		errs = append(errs, fmt.Sprintf("gauge width must be 2-128, got %d", cfg.Gauge.Width))
	}

	if cfg.Forecast.HalfTrustHours <= 0 {
		errs = append(errs, fmt.Sprintf("forecast half_trust_hours must be positive, got %f", cfg.Forecast.HalfTrustHours))
	}
	if cfg.Forecast.RelevanceCoeff <= 0 {
		errs = append(errs, fmt.Sprintf("forecast relevance_coeff must be positive, got %f", cfg.Forecast.RelevanceCoeff))
	}

	if cfg.Cache.DBPath == "" {
		errs = append(errs, "cache db_path must not be empty")
	}
	if cfg.Cache.TTLSeconds < 1 {
		errs = append(errs, fmt.Sprintf("cache ttl_seconds must be positive, got %d", cfg.Cache.TTLSeconds))
	}

	for _, seg := range cfg.Segments.Order {
		if !knownSegments[seg] {
			errs = append(errs, fmt.Sprintf("unknown segment %q in segments.order", seg))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation error: %s", strings.Join(errs, "; "))
	}
	return nil
}
