package ansi

import "testing"

func TestQuantize_CubeGridPoints(t *testing.T) {
	// Every exact 6x6x6 grid point must map to its own cube index:
	// the cube distance is zero and the gray ramp only wins on a
	// strictly smaller distance.
	for ri, r := range cubeLevels {
		for gi, g := range cubeLevels {
			for bi, b := range cubeLevels {
				want := uint8(16 + 36*ri + 6*gi + bi)
				got := Quantize(r, g, b)
				if got != want {
					t.Errorf("Quantize(%d, %d, %d) = %d, want %d", r, g, b, got, want)
				}
			}
		}
	}
}

func TestQuantize_GrayRamp(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		// 128 sits exactly on ramp step 12 (value 128); the cube's
		// closest channel value is 135.
		{name: "mid gray on ramp step", r: 128, g: 128, b: 128, want: 244},
		// 8 is ramp step 0 exactly; cube nearest is 0 at distance 192.
		{name: "dark gray", r: 8, g: 8, b: 8, want: 232},
		// 238 is the last ramp step; cube nearest is 255.
		{name: "light gray", r: 238, g: 238, b: 238, want: 255},
		// Pure black is a cube grid point, so the cube wins outright.
		{name: "black stays cube", r: 0, g: 0, b: 0, want: 16},
		// Gray cube grid point: zero cube distance beats the ramp
		// (strictly-less rule), despite the input being pure gray.
		{name: "gray grid point stays cube", r: 95, g: 95, b: 95, want: 59},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("Quantize(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestQuantize_ChromaticColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		// Catppuccin red: cube candidate (255, 135, 175) = 211.
		{name: "saturated pink", r: 243, g: 139, b: 168, want: 211},
		// Dim desaturated navy: luminance ~52 puts ramp step 4
		// (value 48) much closer than the cube's (95, 95, 95).
		{name: "dim surface color", r: 49, g: 50, b: 68, want: 236},
		{name: "pure red", r: 255, g: 0, b: 0, want: 196},
		{name: "pure green", r: 0, g: 255, b: 0, want: 46},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantize(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("Quantize(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestQuantize_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Quantize(123, 45, 67); got != Quantize(123, 45, 67) {
			t.Fatalf("Quantize not deterministic: %d", got)
		}
	}
}
