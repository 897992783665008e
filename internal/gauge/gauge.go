package gauge

import (
	"math"
	"strings"

	"github.com/nixlim/cc-line/internal/theme"
)

// verticalEighths are the bottom-filling block glyphs, 1/8 through 8/8.
var verticalEighths = []rune("▁▂▃▄▅▆▇█")

// horizontalEighths are the left-filling block glyphs, blank through
// full: index n is filled n/8 from the left edge of the cell.
var horizontalEighths = []rune(" ▏▎▍▌▋▊▉█")

// MaxBlockWidth bounds the horizontal gauge width.
const MaxBlockWidth = 128

// Vertical renders a pace ratio as a single cell.
//
// At or above pace the fill grows from the top of the cell: the glyph
// is the complement of the bottom-filling one (index 7-i) drawn in the
// empty color over a background of the tier color, so the tier color
// shows through only at the top. Behind pace the fill grows from the
// bottom the usual way, caution-colored down to ratio 0.75 and
// critical below; a shortfall under an eighth of a cell is too small
// to show and renders as an empty cell.
func Vertical(ratio float64, th *theme.Theme, trueColor bool) string {
	empty := th.Role(theme.RoleGaugeEmpty)

	if ratio >= 1.0 {
		ahead := math.Min(1, ratio-1)
		i := eighthIndex(ahead)
		fill := th.Role(Classify(ratio).Role())
		return cell(verticalEighths[7-i], empty, fill, trueColor)
	}

	behind := math.Min(1, 1-ratio)
	i := eighthIndex(behind)
	warn := th.Role(theme.RoleGaugeCaution)
	if ratio < 0.75 {
		warn = th.Role(theme.RoleGaugeCritical)
	}
	glyph := verticalEighths[i]
	if i == 0 {
		glyph = ' '
	}
	return cell(glyph, warn, empty, trueColor)
}

// Blocks renders a pace ratio as a two-halved horizontal bar of the
// given even cell width. The left half fills right-to-left from the
// center with the ahead magnitude; the right half fills left-to-right
// with the behind magnitude. Only one half is ever non-empty.
func Blocks(ratio float64, width int, th *theme.Theme, trueColor bool) string {
	width = clampWidth(width)
	half := width / 2

	empty := th.Role(theme.RoleGaugeEmpty)
	tier := Classify(ratio)
	fill := th.Role(tier.Role())

	var ahead, behind float64
	if ratio > 1 {
		ahead = math.Min(1, ratio-1)
	} else if ratio < 1 {
		behind = math.Min(1, 1-ratio)
	}

	var b strings.Builder
	renderLeftHalf(&b, ahead, half, fill, empty, trueColor)
	renderRightHalf(&b, behind, half, fill, empty, trueColor)
	return b.String()
}

// renderLeftHalf writes the ahead half: empty cells, then at most one
// partial cell, then whole cells adjacent to the center. The partial
// glyph is the left-filling one for the complementary remainder with
// foreground and background swapped, which reads as a right-side fill.
func renderLeftHalf(b *strings.Builder, magnitude float64, half int, fill, empty theme.Color, trueColor bool) {
	whole, rem := splitEighths(magnitude, half)
	emptyCells := half - whole
	if rem > 0 {
		emptyCells--
	}
	for i := 0; i < emptyCells; i++ {
		b.WriteString(cell(' ', fill, empty, trueColor))
	}
	if rem > 0 {
		b.WriteString(cell(horizontalEighths[8-rem], empty, fill, trueColor))
	}
	for i := 0; i < whole; i++ {
		b.WriteString(cell(horizontalEighths[8], fill, empty, trueColor))
	}
}

// renderRightHalf writes the behind half: whole cells from the center,
// then at most one partial cell, then empty cells.
func renderRightHalf(b *strings.Builder, magnitude float64, half int, fill, empty theme.Color, trueColor bool) {
	whole, rem := splitEighths(magnitude, half)
	for i := 0; i < whole; i++ {
		b.WriteString(cell(horizontalEighths[8], fill, empty, trueColor))
	}
	if rem > 0 {
		b.WriteString(cell(horizontalEighths[rem], fill, empty, trueColor))
	}
	emptyCells := half - whole
	if rem > 0 {
		emptyCells--
	}
	for i := 0; i < emptyCells; i++ {
		b.WriteString(cell(' ', fill, empty, trueColor))
	}
}

// Progress renders a plain left-to-right fill of pct percent across
// the given cell width, colored by the theme gradient for that
// percentage. This is the context-window bar; unlike Blocks it has no
// center and the width may be odd.
func Progress(pct float64, width int, th *theme.Theme, trueColor bool) string {
	if width < 1 {
		width = 1
	} else if width > MaxBlockWidth {
		width = MaxBlockWidth
	}

	frac := pct / 100
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	fill := th.Gradient(pct)
	empty := th.Role(theme.RoleGaugeEmpty)
	whole, rem := splitEighths(frac, width)

	var b strings.Builder
	for i := 0; i < whole; i++ {
		b.WriteString(cell(horizontalEighths[8], fill, empty, trueColor))
	}
	emptyCells := width - whole
	if rem > 0 {
		b.WriteString(cell(horizontalEighths[rem], fill, empty, trueColor))
		emptyCells--
	}
	for i := 0; i < emptyCells; i++ {
		b.WriteString(cell(' ', fill, empty, trueColor))
	}
	return b.String()
}

// splitEighths quantizes a magnitude in [0, 1] across a span of cells
// at eighth-cell resolution, returning whole filled cells and the
// remaining eighths (0-7).
func splitEighths(magnitude float64, span int) (whole, rem int) {
	eighths := int(math.Round(magnitude * float64(span) * 8))
	return eighths / 8, eighths % 8
}

// eighthIndex maps a magnitude in [0, 1] to a glyph index 0-7. The
// 7.99 factor keeps magnitude 1.0 inside the top step instead of
// rounding out of range.
func eighthIndex(magnitude float64) int {
	i := int(math.Floor(magnitude * 7.99))
	if i < 0 {
		return 0
	}
	if i > 7 {
		return 7
	}
	return i
}

// clampWidth rounds the width down to even and bounds it to
// [2, MaxBlockWidth].
func clampWidth(width int) int {
	if width < 2 {
		return 2
	}
	if width > MaxBlockWidth {
		width = MaxBlockWidth
	}
	return width - width%2
}

// cell renders one glyph with the given foreground and background.
// The SGR run is assembled from the colors' stored channel values, so
// the emitted bytes equal the theme's literal colors.
func cell(glyph rune, fg, bg theme.Color, trueColor bool) string {
	return "\x1b[" + fg.Sequence(false, trueColor) + ";" + bg.Sequence(true, trueColor) + "m" +
		string(glyph) + "\x1b[0m"
}
