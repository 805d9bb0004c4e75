package ui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestHealthRatio(t *testing.T) {
	tests := []struct {
		name         string
		current, max float32
		want         float32
	}{
		{"full", 100, 100, 1},
		{"half", 50, 100, 0.5},
		{"over", 120, 100, 1},
		{"zero", 0, 100, 0},
		{"negative", -40, 100, 0},
		{"zero max", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HealthRatio(tt.current, tt.max); got != tt.want {
				t.Errorf("HealthRatio(%v, %v) = %v, want %v", tt.current, tt.max, got, tt.want)
			}
		})
	}
}

func TestHealthColor(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		ratio float32
		want  rl.Color
	}{
		{-1, th.HealthEmpty},
		{0, th.HealthEmpty},
		{0.5, th.HealthMid},
		{1, th.HealthFull},
		{2, th.HealthFull},
	}
	for _, tt := range tests {
		if got := th.HealthColor(tt.ratio); got != tt.want {
			t.Errorf("HealthColor(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}

	// Quarter health sits halfway between empty and mid
	q := th.HealthColor(0.25)
	if want := uint8((int(th.HealthEmpty.G) + int(th.HealthMid.G) + 1) / 2); q.G != want {
		t.Errorf("HealthColor(0.25).G = %d, want %d", q.G, want)
	}
}

func TestClampTicksPerFrame(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 5: 5, 10: 10, 99: 10} {
		if got := ClampTicksPerFrame(in); got != want {
			t.Errorf("ClampTicksPerFrame(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	d := HUDData{
		Title:           "circlesim",
		Tick:            42,
		MovingAlive:     10,
		MovingTotal:     12,
		StationaryAlive: 12,
		StationaryTotal: 12,
		Workers:         3,
		TicksPerFrame:   2,
		Paused:          true,
	}
	lines := d.Lines()
	if lines[0] != "circlesim" {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Moving: 10/12") {
		t.Errorf("population line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Tick: 42") || !strings.Contains(lines[2], "Workers: 3+1") {
		t.Errorf("tick line = %q", lines[2])
	}
	if lines[len(lines)-1] != "PAUSED" {
		t.Errorf("status = %q, want PAUSED", lines[len(lines)-1])
	}
}
