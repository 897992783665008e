// Package gauge renders pace ratios and percentages as
// sub-character-precision glyph runs. Every encoding is a pure
// function of its inputs and the theme; rendering the same inputs
// twice yields byte-identical output.
package gauge

import "github.com/nixlim/cc-line/internal/theme"

// Tier is the qualitative pace band for a ratio. It is the single
// source of truth for gauge fill color and any accompanying text
// color; the two must never diverge.
type Tier int

const (
	TierCritical Tier = iota
	TierCaution
	TierOnTrack
	TierAhead
)

// aheadBoundary is the ratio above which pace counts as comfortably
// ahead: the reciprocal of the caution boundary, ~1.333.
const aheadBoundary = 1.0 / 0.75

// Classify returns the tier for a pace ratio.
func Classify(ratio float64) Tier {
	switch {
	case ratio >= aheadBoundary:
		return TierAhead
	case ratio >= 1.0:
		return TierOnTrack
	case ratio >= 0.75:
		return TierCaution
	default:
		return TierCritical
	}
}

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierAhead:
		return "ahead"
	case TierOnTrack:
		return "on-track"
	case TierCaution:
		return "caution"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Role returns the theme role carrying this tier's color.
func (t Tier) Role() theme.Role {
	switch t {
	case TierAhead:
		return theme.RoleGaugeAhead
	case TierOnTrack:
		return theme.RoleGaugeOnTrack
	case TierCaution:
		return theme.RoleGaugeCaution
	default:
		return theme.RoleGaugeCritical
	}
}
