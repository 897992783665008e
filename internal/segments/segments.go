// Package segments assembles the final statusline from its parts. The
// composer owns ordering and inclusion only; all color and glyph
// decisions live in the theme, gauge, and forecast packages.
package segments

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/cc-line/internal/forecast"
	"github.com/nixlim/cc-line/internal/gauge"
	"github.com/nixlim/cc-line/internal/input"
	"github.com/nixlim/cc-line/internal/theme"
	"github.com/nixlim/cc-line/internal/usage"
)

// Options controls composition.
type Options struct {
	Order      []string
	GaugeStyle string // "vertical" | "blocks" | "none"
	GaugeWidth int
	ContextBar bool // draw a gradient bar in the context segment
	TrueColor  bool
	Forecast   forecast.Config
}

// Input carries everything a single render pass needs. Now is sampled
// once by the caller and reused for every window.
type Input struct {
	Payload input.Payload
	Windows []usage.LabeledWindow
	Now     time.Time
}

// Compose renders the statusline. Segments without data are skipped;
// the remainder are joined with a dim separator.
func Compose(in Input, th *theme.Theme, opts Options) string {
	var parts []string
	for _, name := range opts.Order {
		if s := renderSegment(name, in, th, opts); s != "" {
			parts = append(parts, s)
		}
	}
	sep := styled(" │ ", th.Role(theme.RoleSeparator), opts.TrueColor)
	return strings.Join(parts, sep)
}

func renderSegment(name string, in Input, th *theme.Theme, opts Options) string {
	switch name {
	case "model":
		return renderModel(in.Payload, th, opts)
	case "context":
		return renderContext(in.Payload, th, opts)
	case "5h", "7d":
		return renderWindow(name, in, th, opts)
	case "forecast":
		return renderForecast(in, th, opts)
	default:
		return ""
	}
}

func renderModel(p input.Payload, th *theme.Theme, opts Options) string {
	if p.Model.DisplayName == "" {
		return ""
	}
	return styled(p.Model.DisplayName, th.Role(theme.RoleModel), opts.TrueColor)
}

// renderContext shows context-window consumption as a percentage
// colored along the theme gradient, with an optional progress bar in
// the same gradient color.
func renderContext(p input.Payload, th *theme.Theme, opts Options) string {
	pct, ok := p.ContextPercent()
	if !ok {
		return ""
	}
	label := styled("ctx ", th.Role(theme.RoleTextDim), opts.TrueColor)
	value := styled(fmt.Sprintf("%d%%", int(math.Round(pct))), th.Gradient(pct), opts.TrueColor)
	if !opts.ContextBar {
		return label + value
	}
	bar := gauge.Progress(pct, opts.GaugeWidth, th, opts.TrueColor)
	return label + bar + " " + value
}

// renderWindow shows one usage window: dim label, pace gauge, and the
// raw pace ratio colored by its tier.
func renderWindow(label string, in Input, th *theme.Theme, opts Options) string {
	w, ok := findWindow(in.Windows, label)
	if !ok {
		return ""
	}
	ratio := w.PaceRatio(in.Now)
	tier := gauge.Classify(ratio)

	var parts []string
	parts = append(parts, styled(label, th.Role(theme.RoleTextDim), opts.TrueColor))
	switch opts.GaugeStyle {
	case "vertical":
		parts = append(parts, gauge.Vertical(ratio, th, opts.TrueColor))
	case "blocks":
		parts = append(parts, gauge.Blocks(ratio, opts.GaugeWidth, th, opts.TrueColor))
	}
	parts = append(parts, styled(fmt.Sprintf("%.2f", ratio), th.Role(tier.Role()), opts.TrueColor))
	return strings.Join(parts, " ")
}

// renderForecast shows the most urgent depletion forecast across the
// windows, colored by that window's pace tier so message and gauge
// never disagree.
func renderForecast(in Input, th *theme.Theme, opts Options) string {
	msg, tier, ok := ForecastMessage(in.Windows, in.Now, opts.Forecast)
	if !ok {
		return ""
	}
	return styled(msg, th.Role(tier.Role()), opts.TrueColor)
}

// ForecastMessage picks the window predicted to deplete first and
// returns its message and color tier. ok is false when no window
// produces a forecast.
func ForecastMessage(windows []usage.LabeledWindow, now time.Time, cfg forecast.Config) (string, gauge.Tier, bool) {
	var (
		best     forecast.Result
		bestTier gauge.Tier
		found    bool
	)
	for _, lw := range windows {
		res, ok := lw.Window.Forecast(now, cfg)
		if !ok {
			continue
		}
		if !found || res.ToDepletion < best.ToDepletion {
			best = res
			bestTier = gauge.Classify(lw.Window.PaceRatio(now))
			found = true
		}
	}
	if !found {
		return "", 0, false
	}
	return best.Message(), bestTier, true
}

func findWindow(windows []usage.LabeledWindow, label string) (forecast.Window, bool) {
	for _, lw := range windows {
		if lw.Label == label {
			return lw.Window, true
		}
	}
	return forecast.Window{}, false
}

func styled(s string, c theme.Color, trueColor bool) string {
	return lipgloss.NewStyle().Foreground(c.Term(trueColor)).Render(s)
}
