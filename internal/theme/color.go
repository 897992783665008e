package theme

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/nixlim/cc-line/internal/ansi"
)

// Color is a truecolor triple paired with its 256-palette fallback.
// The RGB part may be absent (malformed override input), in which case
// only the fallback index is ever emitted. The index is always valid.
type Color struct {
	R, G, B uint8
	HasRGB  bool
	Index   uint8
}

// Term returns the lipgloss color to emit for this Color under the
// given capability. Truecolor emission requires both the capability
// flag and a present RGB triple.
func (c Color) Term(trueColor bool) lipgloss.Color {
	if trueColor && c.HasRGB {
		return lipgloss.Color(c.Hex())
	}
	return lipgloss.Color(strconv.Itoa(int(c.Index)))
}

// Sequence returns the SGR parameter run selecting this color in the
// foreground or background position. Truecolor emission carries the
// stored channel values verbatim; the emitted bytes equal the theme's
// literal colors, with no converter in between.
func (c Color) Sequence(background, trueColor bool) string {
	plane := "38"
	if background {
		plane = "48"
	}
	if trueColor && c.HasRGB {
		return fmt.Sprintf("%s;2;%d;%d;%d", plane, c.R, c.G, c.B)
	}
	return fmt.Sprintf("%s;5;%d", plane, c.Index)
}

// Hex returns the #rrggbb form of the RGB triple. Only meaningful when
// HasRGB is true.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	out := [7]byte{'#'}
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		out[1+2*i] = digits[v>>4]
		out[2+2*i] = digits[v&0x0f]
	}
	return string(out[:])
}

// parseHex parses a #rrggbb (or #rgb) string into a Color, computing
// the palette fallback via the quantizer. The second return is false
// when the input is malformed; callers then keep their existing
// fallback index with the RGB triple marked absent.
func parseHex(s string) (Color, bool) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	r, g, b := cf.RGB255()
	return Color{
		R:      r,
		G:      g,
		B:      b,
		HasRGB: true,
		Index:  ansi.Quantize(r, g, b),
	}, true
}

// mustColor is parseHex for the built-in palette literals.
func mustColor(s string) Color {
	c, ok := parseHex(s)
	if !ok {
		panic("theme: bad built-in color " + s)
	}
	return c
}
