// Package renderer draws the simulated world with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/camera"
	"github.com/pthm-cable/circlesim/systems"
)

// BackgroundRenderer draws the world grid and the wall rectangle.
type BackgroundRenderer struct {
	GridSpacing float32
	GridColor   rl.Color
	WallColor   rl.Color
	BaseColor   rl.Color
}

// NewBackgroundRenderer creates a background renderer with the given base color.
func NewBackgroundRenderer(baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		GridSpacing: 100,
		GridColor:   rl.Color{R: 40, G: 46, B: 54, A: 255},
		WallColor:   rl.Color{R: 200, G: 80, B: 60, A: 255},
		BaseColor:   rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
	}
}

// Draw clears the screen and draws grid lines over the visible area.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.BaseColor)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	for _, x := range GridLines(minX, maxX, b.GridSpacing) {
		sx, _ := cam.WorldToScreen(x, 0)
		rl.DrawLineV(rl.Vector2{X: sx, Y: 0}, rl.Vector2{X: sx, Y: cam.ViewportH}, b.GridColor)
	}
	for _, y := range GridLines(minY, maxY, b.GridSpacing) {
		_, sy := cam.WorldToScreen(0, y)
		rl.DrawLineV(rl.Vector2{X: 0, Y: sy}, rl.Vector2{X: cam.ViewportW, Y: sy}, b.GridColor)
	}
}

// DrawWalls outlines the wall rectangle.
func (b *BackgroundRenderer) DrawWalls(cam *camera.Camera, walls systems.Bounds) {
	x, y, w, h := cam.ScreenRect(walls.MinX, walls.MinY, walls.MaxX, walls.MaxY)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, 2, b.WallColor)
}

// GridLines returns the multiples of spacing within [min, max].
// Returns nil when spacing is not positive.
func GridLines(min, max, spacing float32) []float32 {
	if spacing <= 0 || max < min {
		return nil
	}
	first := float32(math.Ceil(float64(min/spacing))) * spacing
	var lines []float32
	for x := first; x <= max; x += spacing {
		lines = append(lines, x)
	}
	return lines
}
