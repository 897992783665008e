// Package forecast models rolling usage budgets and predicts whether a
// budget will be exhausted before its natural reset. Everything here is
// a pure computation over explicitly supplied inputs: the caller
// provides "now" once and reuses it across windows so the two
// forecasts in a render pass cannot skew.
package forecast

import "time"

// Window is one rolling usage budget: a fixed length, the utilization
// consumed so far, and the instant at which utilization resets to
// zero. Windows are built fresh per invocation and never mutated.
type Window struct {
	Length      time.Duration
	Utilization float64 // percent consumed, clamped to [0, 100]
	ResetAt     time.Time
}

// NewWindow builds a Window, clamping utilization into [0, 100].
// Upstream numbers can drift slightly past 100 due to rounding.
func NewWindow(length time.Duration, utilization float64, resetAt time.Time) Window {
	if utilization < 0 {
		utilization = 0
	} else if utilization > 100 {
		utilization = 100
	}
	return Window{Length: length, Utilization: utilization, ResetAt: resetAt}
}

// Elapsed returns the time since the window started, derived from the
// reset instant and the window length.
func (w Window) Elapsed(now time.Time) time.Duration {
	return now.Sub(w.ResetAt.Add(-w.Length))
}

// PaceRatio returns remaining-budget-fraction over remaining-time-
// fraction. 1.0 means consumption lands on 100% exactly at reset;
// above 1.0 is ahead of pace, below is behind.
//
// When almost no time remains the division is not meaningful: any
// leftover budget counts as maximally ahead (2.0), and an exactly
// spent budget as exactly on pace (1.0), never as behind.
func (w Window) PaceRatio(now time.Time) float64 {
	remainingBudget := 100 - w.Utilization

	elapsedPct := 100.0
	if windowSec := w.Length.Seconds(); windowSec > 0 {
		elapsedPct = w.Elapsed(now).Seconds() / windowSec * 100
		if elapsedPct < 0 {
			elapsedPct = 0
		} else if elapsedPct > 100 {
			elapsedPct = 100
		}
	}

	remainingTime := 100 - elapsedPct
	if remainingTime > 0.1 {
		return remainingBudget / remainingTime
	}
	if remainingBudget > 0 {
		return 2.0
	}
	return 1.0
}
