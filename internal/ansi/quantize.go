// Package ansi maps 24-bit colors onto the fixed 256-entry terminal
// palette and decides, once per process, which color profile the
// surrounding terminal supports. All functions are pure.
package ansi

import "math"

// The 256-entry palette layout this package targets:
//
//	0-15    classic ANSI colors (never produced here)
//	16-231  6x6x6 color cube, channel values {0, 95, 135, 175, 215, 255}
//	232-255 24-step grayscale ramp, 8, 18, ..., 238
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Quantize returns the palette index closest to the given RGB triple.
//
// The cube candidate is found per channel (nearest of the six cube
// levels, ties to the lower level). The grayscale candidate comes from
// the ITU-R 601 luminance estimate, snapped to the nearest ramp step.
// The gray ramp wins only when its squared distance is strictly
// smaller, so exact cube grid points always map to the cube.
func Quantize(r, g, b uint8) uint8 {
	ri := nearestCubeLevel(r)
	gi := nearestCubeLevel(g)
	bi := nearestCubeLevel(b)
	cubeDist := sqDist(r, cubeLevels[ri]) + sqDist(g, cubeLevels[gi]) + sqDist(b, cubeLevels[bi])

	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	grayIdx := int(math.Round((lum - 8) / 10))
	if grayIdx < 0 {
		grayIdx = 0
	} else if grayIdx > 23 {
		grayIdx = 23
	}
	grayVal := uint8(8 + 10*grayIdx)
	grayDist := sqDist(r, grayVal) + sqDist(g, grayVal) + sqDist(b, grayVal)

	if grayDist < cubeDist {
		return uint8(232 + grayIdx)
	}
	return uint8(16 + 36*ri + 6*gi + bi)
}

// nearestCubeLevel returns the index of the cube level closest to v.
// Ties resolve to the first (lower) level encountered.
func nearestCubeLevel(v uint8) int {
	best := 0
	bestDist := sqDist(v, cubeLevels[0])
	for i := 1; i < len(cubeLevels); i++ {
		d := sqDist(v, cubeLevels[i])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func sqDist(a, b uint8) int {
	d := int(a) - int(b)
	return d * d
}
