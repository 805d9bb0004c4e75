package renderer

import (
	"testing"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/scene"
)

func TestGridLines(t *testing.T) {
	tests := []struct {
		name              string
		min, max, spacing float32
		want              []float32
	}{
		{"spans origin", -250, 250, 100, []float32{-200, -100, 0, 100, 200}},
		{"inclusive ends", 0, 200, 100, []float32{0, 100, 200}},
		{"narrow", 10, 20, 100, nil},
		{"zero spacing", 0, 100, 0, nil},
		{"inverted", 100, 0, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GridLines(tt.min, tt.max, tt.spacing)
			if len(got) != len(tt.want) {
				t.Fatalf("GridLines = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("GridLines[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFillColor(t *testing.T) {
	sp := &scene.Sprite{Colour: components.Colour{R: 1, G: 2, B: 3}, Kind: components.KindStationary}

	if c := FillColor(sp, StyleEntity); c.R != 1 || c.G != 2 || c.B != 3 || c.A != 255 {
		t.Errorf("entity style color = %+v", c)
	}
	if c := FillColor(sp, StyleKind); c != stationaryColor {
		t.Errorf("kind style stationary color = %+v", c)
	}
	sp.Kind = components.KindMoving
	if c := FillColor(sp, StyleOutline); c != movingColor {
		t.Errorf("outline style moving color = %+v", c)
	}
}
