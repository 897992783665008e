package forecast

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// window builds a Window whose elapsed time at t0 is exactly elapsed.
func window(length, elapsed time.Duration, utilization float64) Window {
	return NewWindow(length, utilization, t0.Add(length-elapsed))
}

func TestPaceRatio(t *testing.T) {
	tests := []struct {
		name        string
		length      time.Duration
		elapsed     time.Duration
		utilization float64
		want        float64
	}{
		{name: "on pace", length: 10 * time.Hour, elapsed: 5 * time.Hour, utilization: 50, want: 1.0},
		{name: "ahead", length: 10 * time.Hour, elapsed: 5 * time.Hour, utilization: 25, want: 1.5},
		{name: "behind", length: 10 * time.Hour, elapsed: 5 * time.Hour, utilization: 75, want: 0.5},
		{name: "nothing used", length: 10 * time.Hour, elapsed: 5 * time.Hour, utilization: 0, want: 2.0},
		{name: "window over with budget left", length: 10 * time.Hour, elapsed: 10 * time.Hour, utilization: 80, want: 2.0},
		{name: "window over exactly spent", length: 10 * time.Hour, elapsed: 10 * time.Hour, utilization: 100, want: 1.0},
		{name: "zero-width window with budget", length: 0, elapsed: 0, utilization: 40, want: 2.0},
		{name: "zero-width window spent", length: 0, elapsed: 0, utilization: 100, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window(tt.length, tt.elapsed, tt.utilization)
			got := w.PaceRatio(t0)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PaceRatio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaceRatio_ScaleInvariant(t *testing.T) {
	// Doubling both elapsed and window length while holding
	// utilization fixed leaves the ratio unchanged.
	a := window(10*time.Hour, 3*time.Hour, 42).PaceRatio(t0)
	b := window(20*time.Hour, 6*time.Hour, 42).PaceRatio(t0)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("ratio not scale-invariant: %v vs %v", a, b)
	}
}

func TestPaceRatio_ClampsUtilization(t *testing.T) {
	// Upstream rounding can push utilization past 100.
	w := window(10*time.Hour, time.Hour, 104)
	if got := w.PaceRatio(t0); got != 0 {
		t.Errorf("PaceRatio with saturated budget = %v, want 0", got)
	}
}

func TestForecast_SevenDayWindow(t *testing.T) {
	// 7-day window, 2 days in, 60% consumed, half-trust 16h.
	// observed = 60/172800, on-track = 100/604800, f = 0.75; the
	// blend outruns the on-track rate, depletion lands ~36.8h out,
	// and the margin clears the (5 days)^1.4 hours filter.
	w := window(604800*time.Second, 172800*time.Second, 60)
	cfg := Config{HalfTrust: 57600 * time.Second, RelevanceCoeff: 1.4}

	res, ok := w.Forecast(t0, cfg)
	if !ok {
		t.Fatal("expected a forecast")
	}
	if res.Mode != ModeCountdown {
		t.Errorf("Mode = %s, want countdown", res.Mode)
	}

	// effective rate = 0.75*60/172800 + 0.25*100/604800 per second;
	// depletion = 40 / rate ~ 132559s.
	wantDepletion := 40.0 / (0.75*(60.0/172800) + 0.25*(100.0/604800))
	if got := res.ToDepletion.Seconds(); math.Abs(got-wantDepletion) > 1 {
		t.Errorf("ToDepletion = %vs, want ~%vs", got, wantDepletion)
	}
	wantEarly := 432000 - wantDepletion
	if got := res.Early.Seconds(); math.Abs(got-wantEarly) > 1 {
		t.Errorf("Early = %vs, want ~%vs", got, wantEarly)
	}
}

func TestForecast_NotBehindPace(t *testing.T) {
	cfg := DefaultConfig()
	w := window(10*time.Hour, 5*time.Hour, 40) // ahead
	if _, ok := w.Forecast(t0, cfg); ok {
		t.Error("forecast produced while ahead of pace")
	}
	w = window(10*time.Hour, 5*time.Hour, 50) // exactly on pace
	if _, ok := w.Forecast(t0, cfg); ok {
		t.Error("forecast produced while exactly on pace")
	}
}

func TestForecast_RequiresObservation(t *testing.T) {
	cfg := DefaultConfig()

	// Nothing consumed yet.
	w := window(10*time.Hour, 5*time.Hour, 0)
	if _, ok := w.Forecast(t0, cfg); ok {
		t.Error("forecast with zero utilization")
	}

	// Window has not started.
	w = NewWindow(10*time.Hour, 50, t0.Add(10*time.Hour))
	if _, ok := w.Forecast(t0, cfg); ok {
		t.Error("forecast with zero elapsed time")
	}
}

func TestForecast_BlendSuppressesEarlyNoise(t *testing.T) {
	// 30 minutes into a 7-day window with 0.5% consumed: the observed
	// rate is above on-track, but the trust weight is tiny
	// (1800 / (57600+1800) ~ 0.03), so the blended rate barely moves
	// and the projected margin of a few hours falls well short of the
	// ~15h the filter demands with seven days until reset. No forecast.
	w := window(7*24*time.Hour, 30*time.Minute, 0.5)
	cfg := Config{HalfTrust: 16 * time.Hour, RelevanceCoeff: 1.4}
	if res, ok := w.Forecast(t0, cfg); ok {
		t.Errorf("early-window noise produced a forecast: %+v", res)
	}
}

func TestForecast_RelevanceFilterLoosensNearReset(t *testing.T) {
	cfg := Config{HalfTrust: time.Hour, RelevanceCoeff: 1.4}

	// 4 hours into a 5-hour window, 95% consumed: depletion well
	// before the reset, and with under a day remaining the filter
	// threshold is below one hour.
	w := window(5*time.Hour, 4*time.Hour, 95)
	res, ok := w.Forecast(t0, cfg)
	if !ok {
		t.Fatal("expected a forecast near the end of the window")
	}
	if res.Mode != ModeSoon {
		t.Errorf("Mode = %s, want soon", res.Mode)
	}
}

func TestForecast_ModeSelection(t *testing.T) {
	// Force specific depletion horizons by picking utilization and
	// elapsed so the blended rate is fully observed-dominated.
	tests := []struct {
		name        string
		length      time.Duration
		elapsed     time.Duration
		utilization float64
		want        Mode
	}{
		{
			name:   "pace mode for far-out depletion",
			length: 14 * 24 * time.Hour, elapsed: 7 * 24 * time.Hour, utilization: 70,
			// observed 70%/7d: remaining 30% takes ~3 days.
			want: ModePace,
		},
		{
			name:   "countdown in between",
			length: 7 * 24 * time.Hour, elapsed: 2 * 24 * time.Hour, utilization: 80,
			// remaining 20% at ~40%/day: about half a day.
			want: ModeCountdown,
		},
	}
	cfg := Config{HalfTrust: time.Hour, RelevanceCoeff: 1.0}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window(tt.length, tt.elapsed, tt.utilization)
			res, ok := w.Forecast(t0, cfg)
			if !ok {
				t.Fatal("expected a forecast")
			}
			if res.Mode != tt.want {
				t.Errorf("Mode = %s, want %s", res.Mode, tt.want)
			}
		})
	}
}

func TestResult_Message(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "soon points at the reset",
			res:  Result{Mode: ModeSoon, UntilReset: 2 * time.Hour},
			want: "limit resets in 2h",
		},
		{
			name: "soon with imminent reset",
			res:  Result{Mode: ModeSoon, UntilReset: 10 * time.Minute},
			want: "limit resets soon",
		},
		{
			name: "pace states the early margin only",
			res:  Result{Mode: ModePace, Early: 72 * time.Hour},
			want: "on pace to run out 3 d early",
		},
		{
			name: "countdown without wait",
			res:  Result{Mode: ModeCountdown, ToDepletion: 5 * time.Hour, Early: 50 * time.Minute},
			want: "5h of usage left",
		},
		{
			name: "countdown with wait",
			res:  Result{Mode: ModeCountdown, ToDepletion: 5 * time.Hour, Early: 3 * time.Hour},
			want: "5h of usage left, then 3h wait",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
