package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxTicksPerFrame bounds the speed slider.
const MaxTicksPerFrame = 10

// ControlsState is what the controls panel edits.
type ControlsState struct {
	Paused        bool
	TicksPerFrame int
	Step          bool // advance one tick while paused
	ResetCamera   bool
}

// ClampTicksPerFrame keeps n within the slider range.
func ClampTicksPerFrame(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxTicksPerFrame {
		return MaxTicksPerFrame
	}
	return n
}

// ControlsPanel renders the raygui controls panel.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and applies clicks to state. Step and ResetCamera
// are one-shot requests; the consumer clears them.
func (c *ControlsPanel) Draw(state *ControlsState) {

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, 130)

	x := float32(c.x + pad)
	y := float32(r.DrawSectionHeader(c.x+pad, c.y+pad, "Controls"))
	half := float32(c.width-pad*3) / 2

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, label) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: 24}, "Step") {
		state.Step = true
	}
	y += 32

	rl.DrawText("Ticks per frame", int32(x), int32(y), r.Theme.FontSize, r.Theme.Label)
	y += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: float32(c.width-pad*2) - 48, Height: 16},
		"1", "10",
		float32(state.TicksPerFrame), 1, MaxTicksPerFrame,
	)
	state.TicksPerFrame = ClampTicksPerFrame(int(speed + 0.5))
	y += 24

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: float32(c.width - pad*2), Height: 24}, "Reset camera") {
		state.ResetCamera = true
	}
}
