package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/renderer"
	"github.com/pthm-cable/circlesim/systems"
	"github.com/pthm-cable/circlesim/ui"
)

const controlsLegend = "Space pause | , . speed | WASD pan | Q E zoom | Home reset | Click inspect, right-click clear | "

// Draw renders the game.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()

	g.background.Draw(g.camera)
	if g.overlays.IsEnabled(ui.OverlayWalls) {
		g.background.DrawWalls(g.camera, g.sim.Walls())
	}

	if g.hasSelection && g.selection.Kind == components.KindMoving && g.overlays.IsEnabled(ui.OverlayBroadPhase) {
		c := g.store.Moving.Circles[g.selection.Index]
		renderer.DrawBroadPhase(c, systems.MaxRadius(g.store.Stationary.Circles), g.camera)
	}

	g.circles.Draw(g.scene, g.camera, g.circleStyle())

	if g.overlays.IsEnabled(ui.OverlayVelocities) {
		renderer.DrawVelocities(&g.store.Moving, g.camera)
	}

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) circleStyle() renderer.Style {
	switch {
	case g.overlays.IsEnabled(ui.OverlayOutlines):
		return renderer.StyleOutline
	case g.overlays.IsEnabled(ui.OverlayKindColors):
		return renderer.StyleKind
	default:
		return renderer.StyleEntity
	}
}

func (g *Game) drawUI() {
	perf := g.perf.Stats()
	g.hud.Draw(ui.HUDData{
		Title:           "circlesim",
		Tick:            g.sim.Tick(),
		MovingAlive:     g.store.Moving.AliveCount(),
		MovingTotal:     g.store.Moving.Len(),
		StationaryAlive: g.store.Stationary.AliveCount(),
		StationaryTotal: g.store.Stationary.Len(),
		Collisions:      g.collisions,
		Workers:         g.sim.Workers(),
		TicksPerFrame:   g.controls.TicksPerFrame,
		AvgTickUS:       perf.AvgTickDuration.Microseconds(),
		FPS:             rl.GetFPS(),
		Zoom:            g.camera.Zoom,
		Paused:          g.controls.Paused,
	})
	rl.DrawText(fmt.Sprintf("Drawn: %d", g.circles.Drawn()), 10, 135, 14, rl.Gray)

	if g.overlays.IsEnabled(ui.OverlayControlPanel) {
		g.controlsPanel.Draw(&g.controls)
	}
	if g.hasSelection {
		g.inspector.Draw(Inspect(g.store, g.selection, g.cfg.Derived.Health32, g.lifetimes))
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend+g.overlays.Legend())
}
