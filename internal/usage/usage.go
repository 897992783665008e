// Package usage turns externally fetched rate-limit numbers into the
// forecast engine's window model. cc-line never fetches anything
// itself; a separate process parks the latest snapshot in the cache
// and this package reads it back.
package usage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nixlim/cc-line/internal/forecast"
)

// Window lengths of the two rolling budgets Claude Code enforces.
const (
	FiveHourLength = 5 * time.Hour
	SevenDayLength = 7 * 24 * time.Hour
)

// Snapshot is the cached rate-limit document: one entry per rolling
// window, as returned by the usage API.
type Snapshot struct {
	FiveHour WindowData `json:"five_hour"`
	SevenDay WindowData `json:"seven_day"`
}

// WindowData is the raw per-window pair: percent consumed and the
// RFC 3339 reset instant.
type WindowData struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    string  `json:"resets_at"`
}

// ParseSnapshot decodes a snapshot document.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding usage snapshot: %w", err)
	}
	return s, nil
}

// Windows converts the snapshot into labeled forecast windows. Entries
// without a well-formed reset instant are dropped rather than guessed
// at.
func (s Snapshot) Windows() []LabeledWindow {
	var out []LabeledWindow
	if w, ok := s.FiveHour.window(FiveHourLength); ok {
		out = append(out, LabeledWindow{Label: "5h", Window: w})
	}
	if w, ok := s.SevenDay.window(SevenDayLength); ok {
		out = append(out, LabeledWindow{Label: "7d", Window: w})
	}
	return out
}

// LabeledWindow pairs a forecast window with its display label.
type LabeledWindow struct {
	Label  string
	Window forecast.Window
}

func (d WindowData) window(length time.Duration) (forecast.Window, bool) {
	resetAt, err := time.Parse(time.RFC3339, d.ResetsAt)
	if err != nil {
		return forecast.Window{}, false
	}
	return forecast.NewWindow(length, d.Utilization, resetAt), true
}
