package ansi

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// DetectTrueColor reports whether the terminal advertises 24-bit color
// support. The answer is taken from the environment once at startup;
// rendering never re-probes it.
func DetectTrueColor() bool {
	return termenv.EnvColorProfile() == termenv.TrueColor
}

// PinProfile fixes the global lipgloss color profile so that rendered
// escape sequences depend only on the truecolor flag, never on the
// environment at render time. Tests pin it too.
func PinProfile(trueColor bool) {
	if trueColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}
