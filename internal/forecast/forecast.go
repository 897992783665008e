package forecast

import (
	"math"
	"time"
)

// Config holds the tunable parameters of the depletion model.
type Config struct {
	// HalfTrust is the elapsed time at which the observed consumption
	// rate and the on-track rate are blended 50/50. Longer observation
	// shifts trust toward the observed rate.
	HalfTrust time.Duration

	// RelevanceCoeff is the exponent in the relevance filter
	// early >= days_until_reset^coeff hours. Higher values demand a
	// larger margin early in the window.
	RelevanceCoeff float64
}

// DefaultConfig returns the default model parameters.
func DefaultConfig() Config {
	return Config{
		HalfTrust:      16 * time.Hour,
		RelevanceCoeff: 1.4,
	}
}

// Mode selects how a forecast should be presented.
type Mode int

const (
	// ModeSoon: depletion within the hour. The message points at the
	// upcoming reset instead of dwelling on the near-immediate runout.
	ModeSoon Mode = iota

	// ModeCountdown: depletion between 1h and 48h out. The message
	// counts down the remaining usage time.
	ModeCountdown

	// ModePace: depletion 48h or more out, too far for a countdown.
	// The message states only how much sooner than scheduled.
	ModePace
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSoon:
		return "soon"
	case ModeCountdown:
		return "countdown"
	case ModePace:
		return "pace"
	default:
		return "unknown"
	}
}

// Result is a depletion forecast that survived the relevance filter.
type Result struct {
	ToDepletion time.Duration // predicted time until utilization hits 100%
	Early       time.Duration // how much sooner than the natural reset
	UntilReset  time.Duration // time until the natural reset
	Mode        Mode
}

// Forecast predicts early budget depletion for the window. It returns
// false when no forecast applies: the window is at or ahead of pace,
// nothing has been consumed or observed yet, the blended rate does not
// actually outrun the on-track rate, or the margin fails the relevance
// filter.
//
// The observed rate is blended toward the on-track rate with the
// hyperbolic trust weight f = elapsed / (halfTrust + elapsed), so
// early-window noise leans on the schedule and long observation leans
// on the measurement.
func (w Window) Forecast(now time.Time, cfg Config) (Result, bool) {
	if w.PaceRatio(now) >= 1.0 {
		return Result{}, false
	}

	elapsedSec := w.Elapsed(now).Seconds()
	windowSec := w.Length.Seconds()
	if elapsedSec <= 0 || windowSec <= 0 || w.Utilization <= 0 {
		return Result{}, false
	}

	observedRate := w.Utilization / elapsedSec
	onTrackRate := 100 / windowSec

	f := elapsedSec / (cfg.HalfTrust.Seconds() + elapsedSec)
	effectiveRate := observedRate*f + onTrackRate*(1-f)
	if effectiveRate <= onTrackRate {
		return Result{}, false
	}

	remainingBudget := 100 - w.Utilization
	toDepletionSec := remainingBudget / effectiveRate
	untilResetSec := w.ResetAt.Sub(now).Seconds()
	earlySec := untilResetSec - toDepletionSec
	if earlySec <= 0 {
		return Result{}, false
	}

	// Relevance filter: the further the reset, the larger the margin
	// must be before the forecast is worth surfacing.
	daysUntilReset := untilResetSec / 86400
	if earlySec < math.Pow(daysUntilReset, cfg.RelevanceCoeff)*3600 {
		return Result{}, false
	}

	mode := ModeCountdown
	switch {
	case toDepletionSec < 3600:
		mode = ModeSoon
	case toDepletionSec >= 48*3600:
		mode = ModePace
	}

	return Result{
		ToDepletion: secondsDuration(toDepletionSec),
		Early:       secondsDuration(earlySec),
		UntilReset:  secondsDuration(untilResetSec),
		Mode:        mode,
	}, true
}

// Message renders the forecast as plain text. The color tag for the
// message comes from the window's pace tier and is chosen by the
// caller, keeping text and gauge coloring in lockstep.
func (r Result) Message() string {
	switch r.Mode {
	case ModeSoon:
		if s := FormatDuration(r.UntilReset); s != "" {
			return "limit resets in " + s
		}
		return "limit resets soon"
	case ModePace:
		return "on pace to run out " + FormatDuration(r.Early) + " early"
	default:
		msg := FormatDuration(r.ToDepletion) + " of usage left"
		if r.Early > time.Hour {
			if wait := FormatDuration(r.Early); wait != "" {
				msg += ", then " + wait + " wait"
			}
		}
		return msg
	}
}

func secondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
