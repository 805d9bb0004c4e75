package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title           string
	Tick            int64
	MovingAlive     int
	MovingTotal     int
	StationaryAlive int
	StationaryTotal int
	Collisions      int
	Workers         int
	TicksPerFrame   int
	AvgTickUS       int64
	FPS             int32
	Zoom            float32
	Paused          bool
}

// Lines returns the HUD text, one entry per line.
func (d HUDData) Lines() []string {
	status := "Running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		d.Title,
		fmt.Sprintf("Moving: %d/%d | Stationary: %d/%d", d.MovingAlive, d.MovingTotal, d.StationaryAlive, d.StationaryTotal),
		fmt.Sprintf("Tick: %d | Collisions: %d | Workers: %d+1", d.Tick, d.Collisions, d.Workers),
		fmt.Sprintf("Tick: %dus | Speed: %dx | FPS: %d | Zoom: %.2f", d.AvgTickUS, d.TicksPerFrame, d.FPS, d.Zoom),
		status,
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	lines := data.Lines()
	rl.DrawText(lines[0], 10, 10, 20, rl.White)
	y := int32(35)
	for _, line := range lines[1 : len(lines)-1] {
		rl.DrawText(line, 10, y, 16, rl.LightGray)
		y += 20
	}
	rl.DrawText(lines[len(lines)-1], 10, y, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
