package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/circlesim/camera"
	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/config"
	"github.com/pthm-cable/circlesim/renderer"
	"github.com/pthm-cable/circlesim/scene"
	"github.com/pthm-cable/circlesim/telemetry"
	"github.com/pthm-cable/circlesim/ui"
)

// hallOfFameSize is how many entities per population are ranked at the end of a run.
const hallOfFameSize = 10

// Options configures a Game.
type Options struct {
	Seed           int64
	Headless       bool
	LogCollisions  bool   // Emit one log record per collision
	LogStats       bool   // Log window stats and perf at each window end
	OutputDir      string // CSV and config output; empty disables
	StepsPerUpdate int    // Ticks per Update call
	Factory        Factory
}

// Game ties a Simulation to its telemetry and, when not headless, to the
// scene, camera and UI.
type Game struct {
	cfg   *config.Config
	sim   *Simulation
	store *components.Store

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	timer     *telemetry.TickTimer
	bookmarks *telemetry.BookmarkDetector
	lifetimes *telemetry.LifetimeTracker
	logStats  bool

	headless bool
	controls ui.ControlsState

	// Visual mode only
	scene         *scene.Scene
	camera        *camera.Camera
	background    *renderer.BackgroundRenderer
	circles       *renderer.CircleRenderer
	hud           *ui.HUD
	controlsPanel *ui.ControlsPanel
	inspector     *ui.Inspector
	overlays      *ui.OverlayRegistry
	selection     Selection
	hasSelection  bool
	screenWidth   float32
	screenHeight  float32
	collisions    int
}

// NewGameWithOptions builds the initial population, starts the simulation
// and, in visual mode, the scene it drives. Uses config.Cfg().
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	factory := opts.Factory
	if factory == nil {
		factory = NewRandomFactory(opts.Seed)
	}
	store, err := factory.Populate(cfg)
	if err != nil {
		return nil, fmt.Errorf("populating world: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		store:     store,
		collector: telemetry.NewCollector(cfg.Telemetry.PerfInterval, cfg.Derived.DT32),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:    output,
		timer:     telemetry.NewTickTimer(0),
		bookmarks: telemetry.NewBookmarkDetector(10),
		lifetimes: telemetry.NewLifetimeTracker(),
		logStats:  opts.LogStats,
		headless:  opts.Headless || !cfg.Modes.Visualize,
		controls: ui.ControlsState{
			TicksPerFrame: ui.ClampTicksPerFrame(opts.StepsPerUpdate),
		},
	}
	if g.headless {
		// Headless runs are not bound by the slider range
		g.controls.TicksPerFrame = max(opts.StepsPerUpdate, 1)
	}

	sinks := telemetry.MultiSink{g.collector, g.lifetimes}
	if output != nil {
		sinks = append(sinks, output)
	}
	if opts.LogCollisions || cfg.Modes.LogCollisions {
		sinks = append(sinks, telemetry.NewSlogSink(nil))
	}
	if !g.headless {
		sinks = append(sinks, telemetry.SinkFunc(g.countCollisions))
	}

	g.sim, err = NewSimulation(cfg, store, SimulationOptions{Sink: sinks, Perf: g.perf})
	if err != nil {
		output.Close()
		return nil, err
	}

	if !g.headless {
		if err := g.initVisual(); err != nil {
			g.sim.Close()
			output.Close()
			return nil, err
		}
	}

	slog.Info("simulation initialised",
		"seed", opts.Seed,
		"moving", store.Moving.Len(),
		"stationary", store.Stationary.Len(),
		"workers", g.sim.Workers(),
		"headless", g.headless,
		"death", cfg.Modes.Death,
		"walls", cfg.Modes.Walls,
	)
	return g, nil
}

// initVisual creates the scene and UI. Requires an open raylib window for
// drawing, but not for construction.
func (g *Game) initVisual() error {
	if err := g.attachScene(); err != nil {
		return err
	}

	g.screenWidth = float32(g.cfg.Screen.Width)
	g.screenHeight = float32(g.cfg.Screen.Height)
	walls := g.sim.Walls()
	g.camera = camera.New(g.screenWidth, g.screenHeight, walls.MinX, walls.MinY, walls.MaxX, walls.MaxY)
	g.background = renderer.NewBackgroundRenderer(16, 20, 26)
	g.circles = renderer.NewCircleRenderer()
	g.hud = ui.NewHUD()
	g.controlsPanel = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
	g.inspector = ui.NewInspector(int32(g.screenWidth)-230, 150, 220)
	g.overlays = ui.NewOverlayRegistry()
	return nil
}

// attachScene builds the visual proxies and hands them to the simulation.
func (g *Game) attachScene() error {
	sc := scene.New(g.store)
	moving, stationary := sc.Proxies()
	if err := g.sim.AttachProxies(moving, stationary); err != nil {
		return fmt.Errorf("attaching scene: %w", err)
	}
	g.scene = sc
	return nil
}

// Update advances the simulation by the configured number of ticks,
// honouring pause and single-step controls.
func (g *Game) Update() error {
	if !g.headless {
		g.handleInput()
	}

	switch {
	case g.controls.Step:
		g.controls.Step = false
		return g.step()
	case g.controls.Paused:
		return nil
	}
	for i := 0; i < g.controls.TicksPerFrame; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// UpdateHeadless is Update without input handling.
func (g *Game) UpdateHeadless() error {
	for i := 0; i < g.controls.TicksPerFrame; i++ {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// step runs one simulation tick and its telemetry.
func (g *Game) step() error {
	g.timer.Begin()
	err := g.sim.Step(g.cfg.Derived.DT32)
	g.timer.End()
	if err != nil {
		return err
	}

	movingDead, stationaryDead := g.sim.LastRetired()
	if movingDead > 0 {
		g.collector.RecordDeaths(components.KindMoving, movingDead)
	}
	if stationaryDead > 0 {
		g.collector.RecordDeaths(components.KindStationary, stationaryDead)
	}

	g.flushTelemetry()
	return nil
}

// flushTelemetry emits window stats and perf when a window completes.
func (g *Game) flushTelemetry() {
	tick := g.sim.Tick()
	if g.cfg.Telemetry.PerfInterval <= 0 || !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.store)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	bookmarks := g.bookmarks.Check(stats)
	for _, b := range bookmarks {
		b.LogBookmark()
	}
	if err := g.output.WriteBookmarks(bookmarks); err != nil {
		slog.Error("failed to write bookmarks", "error", err)
	}
}

func (g *Game) countCollisions(events []telemetry.CollisionEvent) error {
	g.collisions += len(events)
	return nil
}

// Summary returns tick timing over the run so far.
func (g *Game) Summary() telemetry.RunSummary {
	return g.timer.Summary()
}

// Unload stops the workers, logs the run summary and closes output files.
func (g *Game) Unload() {
	g.sim.Close()

	summary := g.Summary()
	movingDead, stationaryDead := g.sim.TotalRetired()
	slog.Info("run complete",
		"summary", summary,
		"moving_alive", g.store.Moving.AliveCount(),
		"stationary_alive", g.store.Stationary.AliveCount(),
		"moving_dead", movingDead,
		"stationary_dead", stationaryDead,
	)

	if err := g.output.WriteSummary(summary); err != nil {
		slog.Error("failed to write summary", "error", err)
	}

	hof := telemetry.BuildHallOfFame(g.lifetimes, hallOfFameSize)
	hof.Log()
	if err := g.output.WriteHallOfFame(hof.All()); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Headless reports whether the game runs without a window.
func (g *Game) Headless() bool {
	return g.headless
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Simulation returns the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}
