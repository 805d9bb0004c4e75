package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/camera"
	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/scene"
)

// Style selects how circles are colored.
type Style int

const (
	StyleEntity  Style = iota // Each circle's own color
	StyleKind                 // One color per population
	StyleOutline              // Outlines, one color per population
)

// minScreenRadius keeps far-zoomed circles visible.
const minScreenRadius = 1.0

var (
	movingColor     = rl.Color{R: 90, G: 200, B: 250, A: 255}
	stationaryColor = rl.Color{R: 230, G: 200, B: 90, A: 255}
)

// FillColor returns the draw color for a sprite in style.
func FillColor(sp *scene.Sprite, style Style) rl.Color {
	if style == StyleEntity {
		return rl.Color{R: sp.Colour.R, G: sp.Colour.G, B: sp.Colour.B, A: 255}
	}
	if sp.Kind == components.KindMoving {
		return movingColor
	}
	return stationaryColor
}

// CircleRenderer draws scene entities through a camera.
type CircleRenderer struct {
	drawn int
}

// NewCircleRenderer creates a circle renderer.
func NewCircleRenderer() *CircleRenderer {
	return &CircleRenderer{}
}

// Draw renders every visible scene entity inside the camera view.
func (r *CircleRenderer) Draw(sc *scene.Scene, cam *camera.Camera, style Style) {
	r.drawn = 0
	sc.Each(func(t *scene.Transform, sp *scene.Sprite) {
		if !cam.IsVisible(t.X, t.Y, sp.Radius) {
			return
		}
		sx, sy := cam.WorldToScreen(t.X, t.Y)
		radius := cam.WorldToScreenScale(sp.Radius)
		if radius < minScreenRadius {
			radius = minScreenRadius
		}
		center := rl.Vector2{X: sx, Y: sy}
		color := FillColor(sp, style)
		if style == StyleOutline {
			rl.DrawCircleLinesV(center, radius, color)
		} else {
			rl.DrawCircleV(center, radius, color)
		}
		r.drawn++
	})
}

// Drawn returns how many circles the last Draw rendered.
func (r *CircleRenderer) Drawn() int { return r.drawn }
