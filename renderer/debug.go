package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/camera"
	"github.com/pthm-cable/circlesim/components"
)

// velocityScale is seconds of travel shown by a velocity vector.
const velocityScale = 0.25

// DrawVelocities draws a short vector along each alive moving circle's velocity.
func DrawVelocities(moving *components.Population, cam *camera.Camera) {
	color := rl.Color{R: 255, G: 255, B: 255, A: 140}
	for i, c := range moving.Circles {
		if !moving.Alive[i] || !cam.IsVisible(c.X, c.Y, c.Radius) {
			continue
		}
		v := moving.Velocities[i]
		x0, y0 := cam.WorldToScreen(c.X, c.Y)
		x1, y1 := cam.WorldToScreen(c.X+v.X*velocityScale, c.Y+v.Y*velocityScale)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, color)
	}
}

// DrawBroadPhase shades the x-band the broad phase inspects for a circle:
// its own interval widened by the largest stationary radius.
func DrawBroadPhase(c components.Circle, reach float32, cam *camera.Camera) {
	x0, _ := cam.WorldToScreen(c.MinX()-reach, 0)
	x1, _ := cam.WorldToScreen(c.MaxX()+reach, 0)
	rl.DrawRectangleRec(rl.Rectangle{X: x0, Y: 0, Width: x1 - x0, Height: cam.ViewportH},
		rl.Color{R: 120, G: 255, B: 120, A: 40})

	sx, sy := cam.WorldToScreen(c.X, c.Y)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, cam.WorldToScreenScale(c.Radius)+3, rl.Green)
}
