package game

import (
	"context"
	"errors"
	"testing"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/config"
	"github.com/pthm-cable/circlesim/systems"
	"github.com/pthm-cable/circlesim/telemetry"
)

const testDT = 0.1

type recordingSink struct {
	events  []telemetry.CollisionEvent
	batches int
	err     error
}

func (r *recordingSink) Consume(events []telemetry.CollisionEvent) error {
	r.events = append(r.events, events...)
	r.batches++
	return r.err
}

type recordingProxy struct {
	x, y   float32
	hidden bool
}

func (p *recordingProxy) SetPosition(x, y float32) { p.x, p.y = x, y }
func (p *recordingProxy) Hide()                    { p.hidden = true }

func testConfig(t *testing.T, workers int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Workers.Count = workers
	cfg.Modes.Death = false
	cfg.Modes.Walls = true
	if err := cfg.Recompute(); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	return cfg
}

// pairStore is one moving circle and one stationary circle.
func pairStore(mover components.Circle, v components.Velocity, target components.Circle) *components.Store {
	s := components.NewStore(1, 1)
	s.Moving.Circles[0] = mover
	s.Moving.Velocities[0] = v
	s.Moving.States[0] = components.CollisionState{Label: "mover", Health: 100}
	s.Stationary.Circles[0] = target
	s.Stationary.States[0] = components.CollisionState{Label: "target", Health: 100}
	return s
}

func newTestSimulation(t *testing.T, cfg *config.Config, store *components.Store, sink telemetry.Sink) *Simulation {
	t.Helper()
	sim, err := NewSimulation(cfg, store, SimulationOptions{Sink: sink})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	t.Cleanup(sim.Close)
	return sim
}

func TestHeadOnCollision(t *testing.T) {
	for _, workers := range []int{0, 1, 3} {
		cfg := testConfig(t, workers)
		store := pairStore(
			components.Circle{Radius: 5, X: 0, Y: 0},
			components.Velocity{X: 10, Y: 0},
			components.Circle{Radius: 5, X: 15, Y: 0},
		)
		sink := &recordingSink{}
		sim := newTestSimulation(t, cfg, store, sink)

		if err := sim.Run(context.Background(), 20, testDT); err != nil {
			t.Fatalf("Run: %v", err)
		}

		v := store.Moving.Velocities[0]
		if v.X >= 0 {
			t.Errorf("workers=%d: vx = %v, want negative after reflection", workers, v.X)
		}
		if got := store.Moving.States[0].Health; got != 80 {
			t.Errorf("workers=%d: moving health = %d, want 80", workers, got)
		}
		if got := store.Stationary.States[0].Health; got != 80 {
			t.Errorf("workers=%d: stationary health = %d, want 80", workers, got)
		}
		if len(sink.events) != 1 {
			t.Fatalf("workers=%d: got %d events, want 1", workers, len(sink.events))
		}
		e := sink.events[0]
		if e.LabelA != "mover" || e.LabelB != "target" || e.HealthA != 80 || e.HealthB != 80 {
			t.Errorf("workers=%d: event = %+v", workers, e)
		}
		if e.Tick != 6 {
			t.Errorf("workers=%d: collision at tick %d, want 6", workers, e.Tick)
		}
		if sim.Tick() != 20 {
			t.Errorf("workers=%d: Tick = %d, want 20", workers, sim.Tick())
		}
	}
}

func TestLeftWallClamp(t *testing.T) {
	cfg := testConfig(t, 2)
	store := components.NewStore(1, 0)
	store.Moving.Circles[0] = components.Circle{Radius: 5, X: cfg.Derived.WallMinX + 6, Y: 0}
	store.Moving.Velocities[0] = components.Velocity{X: -20, Y: 3}
	sim := newTestSimulation(t, cfg, store, nil)

	if err := sim.Step(testDT); err != nil {
		t.Fatalf("Step: %v", err)
	}

	c := store.Moving.Circles[0]
	v := store.Moving.Velocities[0]
	if want := cfg.Derived.WallMinX + 5 + 1; c.X != want {
		t.Errorf("x = %v, want %v", c.X, want)
	}
	if v.X != 20 {
		t.Errorf("vx = %v, want 20", v.X)
	}
	if v.Y != 3 {
		t.Errorf("vy = %v, want unchanged 3", v.Y)
	}
}

func TestWallsDisabled(t *testing.T) {
	cfg := testConfig(t, 0)
	cfg.Modes.Walls = false
	store := components.NewStore(1, 0)
	store.Moving.Circles[0] = components.Circle{Radius: 5, X: cfg.Derived.WallMinX, Y: 0}
	store.Moving.Velocities[0] = components.Velocity{X: -10}
	sim := newTestSimulation(t, cfg, store, nil)

	if err := sim.Step(testDT); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if v := store.Moving.Velocities[0]; v.X != -10 {
		t.Errorf("vx = %v, want -10 with walls off", v.X)
	}
}

func TestDeathRetiresMover(t *testing.T) {
	cfg := testConfig(t, 1)
	cfg.Modes.Death = true
	store := pairStore(
		components.Circle{Radius: 5, X: 0, Y: 0},
		components.Velocity{X: 10, Y: 0},
		components.Circle{Radius: 5, X: 15, Y: 0},
	)
	store.Moving.States[0].Health = 20
	sink := &recordingSink{}
	sim := newTestSimulation(t, cfg, store, sink)

	mp := &recordingProxy{}
	sp := &recordingProxy{}
	if err := sim.AttachProxies([]systems.Proxy{mp}, []systems.Proxy{sp}); err != nil {
		t.Fatalf("AttachProxies: %v", err)
	}

	if err := sim.Run(context.Background(), 6, testDT); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.Moving.Alive[0] {
		t.Fatal("mover still alive at health 0")
	}
	if m, s := sim.LastRetired(); m != 1 || s != 0 {
		t.Errorf("LastRetired = %d,%d, want 1,0", m, s)
	}
	if v := store.Moving.Velocities[0]; v != (components.Velocity{}) {
		t.Errorf("velocity = %+v, want zero", v)
	}
	if !mp.hidden {
		t.Error("mover proxy not hidden")
	}
	// Stationary deaths are off by default
	if !store.Stationary.Alive[0] || sp.hidden {
		t.Error("stationary entity retired with death_stationary off")
	}
	if sp.x != 15 {
		t.Errorf("stationary proxy x = %v, want 15", sp.x)
	}

	frozen := store.Moving.Circles[0]
	if err := sim.Run(context.Background(), 10, testDT); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.Moving.Circles[0] != frozen {
		t.Errorf("dead mover moved: %+v -> %+v", frozen, store.Moving.Circles[0])
	}
	if len(sink.events) != 1 {
		t.Errorf("got %d events, want 1", len(sink.events))
	}
	if m, _ := sim.TotalRetired(); m != 1 {
		t.Errorf("TotalRetired moving = %d, want 1", m)
	}
}

func TestDeathStationary(t *testing.T) {
	cfg := testConfig(t, 0)
	cfg.Modes.Death = true
	cfg.Modes.DeathStationary = true
	store := pairStore(
		components.Circle{Radius: 5, X: 0, Y: 0},
		components.Velocity{X: 10, Y: 0},
		components.Circle{Radius: 5, X: 15, Y: 0},
	)
	store.Stationary.States[0].Health = 20
	sim := newTestSimulation(t, cfg, store, nil)

	if err := sim.Run(context.Background(), 6, testDT); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.Stationary.Alive[0] {
		t.Error("stationary entity alive at health 0")
	}
	if !store.Moving.Alive[0] {
		t.Error("mover retired at health 80")
	}
	if _, s := sim.TotalRetired(); s != 1 {
		t.Errorf("TotalRetired stationary = %d, want 1", s)
	}
}

func TestHealthNonIncreasingAndEventsMatchDamage(t *testing.T) {
	cfg := testConfig(t, 3)
	cfg.Population.Total = 600
	cfg.Population.Moving = 300
	cfg.World.MinX, cfg.World.MaxX = -100, 100
	cfg.World.MinY, cfg.World.MaxY = -100, 100
	if err := cfg.Recompute(); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	store, err := NewRandomFactory(7).Populate(cfg)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	sink := &recordingSink{}
	sim := newTestSimulation(t, cfg, store, sink)

	prevMoving := healthOf(&store.Moving)
	prevStationary := healthOf(&store.Stationary)
	for tick := 0; tick < 60; tick++ {
		if err := sim.Step(cfg.Derived.DT32); err != nil {
			t.Fatalf("Step: %v", err)
		}
		checkNonIncreasing(t, "moving", prevMoving, healthOf(&store.Moving))
		checkNonIncreasing(t, "stationary", prevStationary, healthOf(&store.Stationary))
		prevMoving = healthOf(&store.Moving)
		prevStationary = healthOf(&store.Stationary)
	}

	var lost int64
	for _, h := range prevMoving {
		lost += int64(100 - h)
	}
	if want := int64(len(sink.events)) * 20; lost != want {
		t.Errorf("moving health lost = %d, want 20 x %d events = %d", lost, len(sink.events), want)
	}
	if len(sink.events) == 0 {
		t.Error("dense world produced no collisions")
	}

	for i := 1; i < len(sink.events); i++ {
		if sink.events[i].Tick < sink.events[i-1].Tick {
			t.Fatalf("event %d tick %d after tick %d", i, sink.events[i].Tick, sink.events[i-1].Tick)
		}
	}
}

func TestWorkerCountsAgree(t *testing.T) {
	run := func(workers int) (*components.Store, []telemetry.CollisionEvent) {
		cfg := testConfig(t, workers)
		cfg.Population.Total = 2000
		cfg.Population.Moving = 0
		cfg.World.MinX, cfg.World.MaxX = -200, 200
		cfg.World.MinY, cfg.World.MaxY = -200, 200
		cfg.Modes.Death = true
		cfg.Modes.DeathStationary = true
		if err := cfg.Recompute(); err != nil {
			t.Fatalf("Recompute: %v", err)
		}
		store, err := NewRandomFactory(42).Populate(cfg)
		if err != nil {
			t.Fatalf("Populate: %v", err)
		}
		sink := &recordingSink{}
		sim := newTestSimulation(t, cfg, store, sink)
		if err := sim.Run(context.Background(), 40, cfg.Derived.DT32); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return store, sink.events
	}

	base, baseEvents := run(0)
	for _, workers := range []int{1, 3, 7} {
		got, events := run(workers)
		for i := range base.Moving.Circles {
			if got.Moving.Circles[i] != base.Moving.Circles[i] ||
				got.Moving.Velocities[i] != base.Moving.Velocities[i] ||
				got.Moving.States[i] != base.Moving.States[i] ||
				got.Moving.Alive[i] != base.Moving.Alive[i] {
				t.Fatalf("workers=%d: moving %d diverged", workers, i)
			}
		}
		for i := range base.Stationary.States {
			if got.Stationary.States[i] != base.Stationary.States[i] ||
				got.Stationary.Alive[i] != base.Stationary.Alive[i] {
				t.Fatalf("workers=%d: stationary %d diverged", workers, i)
			}
		}
		if len(events) != len(baseEvents) {
			t.Fatalf("workers=%d: %d events, want %d", workers, len(events), len(baseEvents))
		}
		for i := range events {
			if events[i].Tick != baseEvents[i].Tick || events[i].LabelA != baseEvents[i].LabelA || events[i].LabelB != baseEvents[i].LabelB {
				t.Fatalf("workers=%d: event %d order differs", workers, i)
			}
		}
	}
}

func TestSinkErrorStopsRun(t *testing.T) {
	cfg := testConfig(t, 1)
	store := pairStore(
		components.Circle{Radius: 5, X: 0, Y: 0},
		components.Velocity{X: 10, Y: 0},
		components.Circle{Radius: 5, X: 15, Y: 0},
	)
	boom := errors.New("disk full")
	sim := newTestSimulation(t, cfg, store, &recordingSink{err: boom})

	err := sim.Run(context.Background(), 20, testDT)
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want %v", err, boom)
	}
	if sim.Tick() != 6 {
		t.Errorf("stopped at tick %d, want 6", sim.Tick())
	}
}

func TestRunHonoursContext(t *testing.T) {
	cfg := testConfig(t, 2)
	store := components.NewStore(4, 4)
	sim := newTestSimulation(t, cfg, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sim.Run(ctx, 0, testDT); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if sim.Tick() != 0 {
		t.Errorf("Tick = %d, want 0", sim.Tick())
	}
}

func TestNewSimulationSortsStationary(t *testing.T) {
	cfg := testConfig(t, 0)
	store := components.NewStore(0, 3)
	for i, x := range []float32{30, -10, 5} {
		store.Stationary.Circles[i] = components.Circle{Radius: 1, X: x}
	}
	sim := newTestSimulation(t, cfg, store, nil)

	xs := sim.Store().Stationary.Circles
	if xs[0].X != -10 || xs[1].X != 5 || xs[2].X != 30 {
		t.Errorf("stationary not sorted: %+v", xs)
	}
}

func TestAttachProxiesLengthMismatch(t *testing.T) {
	cfg := testConfig(t, 0)
	sim := newTestSimulation(t, cfg, components.NewStore(2, 2), nil)

	if err := sim.AttachProxies(make([]systems.Proxy, 1), nil); err == nil {
		t.Error("expected error for short moving proxy slice")
	}
	if err := sim.AttachProxies(nil, make([]systems.Proxy, 3)); err == nil {
		t.Error("expected error for long stationary proxy slice")
	}
}

func healthOf(p *components.Population) []int32 {
	out := make([]int32, p.Len())
	for i := range p.States {
		out[i] = p.States[i].Health
	}
	return out
}

func checkNonIncreasing(t *testing.T, name string, before, after []int32) {
	t.Helper()
	for i := range before {
		if after[i] > before[i] {
			t.Fatalf("%s %d health rose %d -> %d", name, i, before[i], after[i])
		}
	}
}
