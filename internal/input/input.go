// Package input decodes the JSON payload Claude Code writes to a
// statusline command's stdin. Parsing is tolerant: a malformed or
// partial payload degrades to zero values and the affected segments
// are simply not rendered.
package input

import (
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the statusline input document.
type Payload struct {
	SessionID string        `json:"session_id"`
	Model     Model         `json:"model"`
	Context   ContextWindow `json:"context_window"`
	Cost      Cost          `json:"cost"`
}

// Model identifies the active model.
type Model struct {
	DisplayName string `json:"display_name"`
	ModelID     string `json:"model_id"`
}

// ContextWindow holds context sizing and consumption data.
type ContextWindow struct {
	Size           int      `json:"context_window_size"`
	UsedPercentage *float64 `json:"used_percentage,omitempty"`
	Usage          Usage    `json:"current_usage"`
}

// Usage holds the granular token counts for the current context.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

// Cost holds session cost data.
type Cost struct {
	TotalCostUSD    float64 `json:"total_cost_usd"`
	TotalDurationMS int     `json:"total_duration_ms"`
}

// Parse decodes a payload from r.
func Parse(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decoding statusline payload: %w", err)
	}
	return p, nil
}

// ContextPercent returns the context-window consumption percentage,
// clamped to [0, 100], and whether it is known. Newer payloads carry
// it precomputed; older ones are derived from token counts.
func (p Payload) ContextPercent() (float64, bool) {
	if p.Context.UsedPercentage != nil {
		return clampPct(*p.Context.UsedPercentage), true
	}
	if p.Context.Size <= 0 {
		return 0, false
	}
	used := p.Context.Usage.InputTokens +
		p.Context.Usage.CacheCreationInputTokens +
		p.Context.Usage.CacheReadInputTokens
	if used < 0 {
		return 0, false
	}
	return clampPct(float64(used) / float64(p.Context.Size) * 100), true
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
