// Package ui draws the heads-up display, controls and entity inspector.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI colours and metrics.
type Theme struct {
	Panel    rl.Color
	Border   rl.Color
	Header   rl.Color
	Label    rl.Color
	Value    rl.Color
	BarTrack rl.Color

	// Health bars blend from HealthEmpty at 0 through HealthMid to HealthFull
	HealthEmpty rl.Color
	HealthMid   rl.Color
	HealthFull  rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Panel:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		Border:      rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		BarTrack:    rl.Color{R: 40, G: 40, B: 40, A: 255},
		HealthEmpty: rl.Color{R: 200, G: 70, B: 70, A: 255},
		HealthMid:   rl.Color{R: 210, G: 180, B: 90, A: 255},
		HealthFull:  rl.Color{R: 90, G: 200, B: 110, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     76,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// HealthColor blends the health colours for a ratio in [0, 1].
func (t Theme) HealthColor(ratio float32) rl.Color {
	ratio = clamp01(ratio)
	if ratio < 0.5 {
		return lerpColor(t.HealthEmpty, t.HealthMid, ratio*2)
	}
	return lerpColor(t.HealthMid, t.HealthFull, (ratio-0.5)*2)
}

func lerpColor(a, b rl.Color, f float32) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*f + 0.5)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
