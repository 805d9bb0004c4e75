package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/ui"
)

// panSpeed is the camera pan in screen pixels per frame.
const panSpeed = 8.0

// pickSlackPx widens the pick radius so tiny circles stay clickable.
const pickSlackPx = 4.0

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.controls.Paused = !g.controls.Paused
	}

	// Ticks-per-frame control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.controls.TicksPerFrame = ui.ClampTicksPerFrame(g.controls.TicksPerFrame - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.controls.TicksPerFrame = ui.ClampTicksPerFrame(g.controls.TicksPerFrame + 1)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.overPanel(rl.GetMousePosition()) {
		mouse := rl.GetMousePosition()
		wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
		g.selection, g.hasSelection = Pick(g.store, wx, wy, pickSlackPx/g.camera.Zoom)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.hasSelection = false
	}
}

// overPanel reports whether a screen point lies over the right-hand UI column.
func (g *Game) overPanel(p rl.Vector2) bool {
	return g.overlays.IsEnabled(ui.OverlayControlPanel) && p.X >= g.screenWidth-240
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.controlsPanel.SetPosition(int32(w)-230, 10)
	g.inspector.SetPosition(int32(w)-230, 150)
}

// handleCameraInput processes camera pan/zoom controls: WASD or arrows pan,
// Q/E zoom about the centre, the mouse wheel about the cursor.
func (g *Game) handleCameraInput() {
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if rl.IsKeyDown(rl.KeyE) {
		g.camera.ZoomBy(1.03)
	}
	if rl.IsKeyDown(rl.KeyQ) {
		g.camera.ZoomBy(1 / 1.03)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(1+wheel*0.1, mouse.X, mouse.Y)
	}

	if rl.IsKeyPressed(rl.KeyHome) || g.controls.ResetCamera {
		g.controls.ResetCamera = false
		g.camera.Reset()
	}
}
