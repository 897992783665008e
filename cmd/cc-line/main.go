package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nixlim/cc-line/internal/ansi"
	"github.com/nixlim/cc-line/internal/cache"
	"github.com/nixlim/cc-line/internal/config"
	"github.com/nixlim/cc-line/internal/forecast"
	"github.com/nixlim/cc-line/internal/input"
	"github.com/nixlim/cc-line/internal/segments"
	"github.com/nixlim/cc-line/internal/theme"
	"github.com/nixlim/cc-line/internal/usage"
)

func main() {
	setupFlag := flag.Bool("setup", false, "Install cc-line as the Claude Code statusLine command and exit")
	forceFlag := flag.Bool("force", false, "With -setup, replace an existing statusLine entry")
	configFlag := flag.String("config", "", "Config file path (default ~/.config/cc-line/config.toml)")
	storeUsageFlag := flag.Bool("store-usage", false, "Read a usage snapshot (JSON) from stdin, store it in the cache, and exit")
	flag.Parse()

	if *setupFlag {
		RunSetup(*forceFlag)
		return
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-line: config error: %v\n", err)
		os.Exit(1)
	}

	if *storeUsageFlag {
		if err := storeUsage(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "cc-line: %v\n", err)
			os.Exit(1)
		}
		return
	}

	th, err := theme.Resolve(cfg.Theme.Name, cfg.Theme.Overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-line: theme error: %v\n", err)
		os.Exit(1)
	}

	trueColor := resolveTrueColor(cfg.Theme.Truecolor)
	ansi.PinProfile(trueColor)

	// A bad payload only costs the payload-derived segments.
	payload, err := input.Parse(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-line: %v\n", err)
	}

	// One clock sample for the whole render pass.
	now := time.Now()

	line := segments.Compose(segments.Input{
		Payload: payload,
		Windows: loadWindows(cfg, now),
		Now:     now,
	}, th, segments.Options{
		Order:      cfg.Segments.Order,
		GaugeStyle: cfg.Gauge.Style,
		GaugeWidth: cfg.Gauge.Width,
		ContextBar: cfg.Gauge.ContextBar,
		TrueColor:  trueColor,
		Forecast: forecast.Config{
			HalfTrust:      time.Duration(cfg.Forecast.HalfTrustHours * float64(time.Hour)),
			RelevanceCoeff: cfg.Forecast.RelevanceCoeff,
		},
	})
	fmt.Println(line)
}

func loadConfig(path string) (config.Config, error) {
	var (
		result *config.LoadResult
		err    error
	)
	if path != "" {
		result, err = config.LoadFrom(path)
	} else {
		result, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "cc-line: config warning: %s\n", w)
	}
	return result.Config, nil
}

func resolveTrueColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return ansi.DetectTrueColor()
	}
}

// loadWindows reads the freshest unexpired usage snapshot from the
// cache. Any failure just means no usage segments this render.
func loadWindows(cfg config.Config, now time.Time) []usage.LabeledWindow {
	store, err := cache.Open(cfg.Cache.DBPath, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-line: %v\n", err)
		return nil
	}
	defer store.Close()

	data, ok := store.Get(cache.UsageKey, now)
	if !ok {
		return nil
	}
	snap, err := usage.ParseSnapshot(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cc-line: %v\n", err)
		return nil
	}
	return snap.Windows()
}

// storeUsage ingests a snapshot document from stdin so external
// fetchers can fill the cache without touching SQL.
func storeUsage(cfg config.Config) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading snapshot from stdin: %w", err)
	}
	if _, err := usage.ParseSnapshot(data); err != nil {
		return err
	}

	store, err := cache.Open(cfg.Cache.DBPath, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Put(cache.UsageKey, data, time.Now())
}
