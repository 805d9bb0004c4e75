package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/config"
	"github.com/pthm-cable/circlesim/systems"
	"github.com/pthm-cable/circlesim/telemetry"
)

// SimulationOptions configures optional simulation collaborators.
type SimulationOptions struct {
	// Sink receives collision events in chunk order after every tick.
	// Nil disables event emission entirely.
	Sink telemetry.Sink
	// Perf, if set, is fed per-phase timings.
	Perf *telemetry.PerfCollector
}

// collisionTask is one moving-population chunk for the collision pool.
type collisionTask struct {
	span systems.Span
}

// modelTask is one chunk of each population for the model pool.
type modelTask struct {
	moving     systems.Span
	stationary systems.Span
}

// Simulation owns the entity store, both worker pools and the per-tick
// pipeline. It is driven from a single goroutine.
type Simulation struct {
	cfg   *config.Config
	store *components.Store

	walls systems.Bounds
	reach float32
	clock *telemetry.Clock
	sink  telemetry.Sink
	perf  *telemetry.PerfCollector

	workers         int
	collisionPool   *Pool[collisionTask]
	modelPool       *Pool[modelTask]
	movingSpans     []systems.Span
	stationarySpans []systems.Span

	// Per-chunk scratch, indexed by worker id; the last slot is the
	// orchestrator's own chunk.
	eventBufs [][]telemetry.CollisionEvent
	retired   [][2]int

	// Tick parameters, published to workers by the Submit channel send.
	params systems.CollisionParams

	movingProxies     []systems.Proxy
	stationaryProxies []systems.Proxy

	tick         int64
	lastRetired  [2]int
	totalRetired [2]int
}

// NewSimulation sorts the stationary population, validates the store and
// starts both worker pools.
func NewSimulation(cfg *config.Config, store *components.Store, opts SimulationOptions) (*Simulation, error) {
	store.SortStationary()
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store: %w", err)
	}

	workers := cfg.Workers.Count
	if workers < 0 {
		workers = DefaultWorkerCount()
	}

	s := &Simulation{
		cfg:   cfg,
		store: store,
		walls: systems.Bounds{
			MinX: cfg.Derived.WallMinX,
			MaxX: cfg.Derived.WallMaxX,
			MinY: cfg.Derived.WallMinY,
			MaxY: cfg.Derived.WallMaxY,
		},
		reach:     systems.MaxRadius(store.Stationary.Circles),
		clock:     telemetry.NewClock(),
		sink:      opts.Sink,
		perf:      opts.Perf,
		workers:   workers,
		eventBufs: make([][]telemetry.CollisionEvent, workers+1),
		retired:   make([][2]int, workers+1),
	}
	s.collisionPool = NewPool(workers, s.collisionWork)
	s.modelPool = NewPool(workers, s.modelWork)

	slog.Debug("simulation ready",
		"moving", store.Moving.Len(),
		"stationary", store.Stationary.Len(),
		"workers", workers,
		"reach", s.reach,
	)
	return s, nil
}

// AttachProxies binds one proxy per entity. Either slice may be nil.
func (s *Simulation) AttachProxies(moving, stationary []systems.Proxy) error {
	if moving != nil && len(moving) != s.store.Moving.Len() {
		return fmt.Errorf("moving proxies: got %d, want %d", len(moving), s.store.Moving.Len())
	}
	if stationary != nil && len(stationary) != s.store.Stationary.Len() {
		return fmt.Errorf("stationary proxies: got %d, want %d", len(stationary), s.store.Stationary.Len())
	}
	s.movingProxies = moving
	s.stationaryProxies = stationary
	return nil
}

// Step advances the simulation by one tick of dt seconds. The collision
// pass over every chunk completes before the model pass starts, and both
// complete before Step returns.
func (s *Simulation) Step(dt float32) error {
	s.startTick()
	s.tick++

	s.params = systems.CollisionParams{
		DT:       dt,
		Backstep: s.cfg.Derived.Backstep32,
		Damage:   s.cfg.Derived.Damage32,
		Reach:    s.reach,
		Tick:     s.tick,
	}
	if s.sink != nil {
		s.params.Clock = s.clock
	}

	s.phase(telemetry.PhaseCollision)
	s.movingSpans = systems.PartitionInto(s.movingSpans, s.store.Moving.Len(), s.workers+1)
	for w := 0; w < s.workers; w++ {
		s.collisionPool.Submit(w, collisionTask{span: s.movingSpans[w]})
	}
	s.collisionWork(s.workers, collisionTask{span: s.movingSpans[s.workers]})
	s.collisionPool.Wait()

	s.phase(telemetry.PhaseEvents)
	err := s.flushEvents()

	s.lastRetired = [2]int{}
	if s.needsModelPass() {
		s.phase(telemetry.PhaseModelSync)
		s.stationarySpans = systems.PartitionInto(s.stationarySpans, s.store.Stationary.Len(), s.workers+1)
		for w := 0; w < s.workers; w++ {
			s.modelPool.Submit(w, modelTask{moving: s.movingSpans[w], stationary: s.stationarySpans[w]})
		}
		s.modelWork(s.workers, modelTask{moving: s.movingSpans[s.workers], stationary: s.stationarySpans[s.workers]})
		s.modelPool.Wait()

		for i := range s.retired {
			s.lastRetired[0] += s.retired[i][0]
			s.lastRetired[1] += s.retired[i][1]
		}
		s.totalRetired[0] += s.lastRetired[0]
		s.totalRetired[1] += s.lastRetired[1]
	}

	s.endTick()
	return err
}

// Run steps until ticks have elapsed or ctx is done. ticks <= 0 runs until
// ctx is done. Returns the first sink error, or ctx's error if cancelled.
func (s *Simulation) Run(ctx context.Context, ticks int64, dt float32) error {
	for n := int64(0); ticks <= 0 || n < ticks; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(dt); err != nil {
			return fmt.Errorf("tick %d: %w", s.tick, err)
		}
	}
	return nil
}

// Close stops both worker pools. Safe to call more than once.
func (s *Simulation) Close() {
	s.collisionPool.Close()
	s.modelPool.Close()
}

// collisionWork runs the collision and wall passes for one moving chunk.
func (s *Simulation) collisionWork(worker int, task collisionTask) {
	s.eventBufs[worker] = systems.ResolveCollisions(
		&s.store.Moving, task.span, &s.store.Stationary, s.params, s.eventBufs[worker][:0])
	if s.cfg.Modes.Walls {
		systems.ResolveWalls(&s.store.Moving, task.span, s.walls)
	}
}

// modelWork applies the death policy and pushes positions to proxies for one
// chunk of each population.
func (s *Simulation) modelWork(worker int, task modelTask) {
	var r [2]int
	if s.cfg.Modes.Death {
		r[0] = systems.RetireDead(&s.store.Moving, task.moving, s.movingProxies)
		if s.cfg.Modes.DeathStationary {
			r[1] = systems.RetireDead(&s.store.Stationary, task.stationary, s.stationaryProxies)
		}
	}
	s.retired[worker] = r
	systems.SyncProxies(&s.store.Moving, task.moving, s.movingProxies)
	systems.SyncProxies(&s.store.Stationary, task.stationary, s.stationaryProxies)
}

// flushEvents hands every chunk's events to the sink in chunk order.
func (s *Simulation) flushEvents() error {
	if s.sink == nil {
		return nil
	}
	for _, buf := range s.eventBufs {
		if len(buf) == 0 {
			continue
		}
		if err := s.sink.Consume(buf); err != nil {
			return fmt.Errorf("consuming events: %w", err)
		}
	}
	return nil
}

func (s *Simulation) needsModelPass() bool {
	return s.movingProxies != nil || s.stationaryProxies != nil || s.cfg.Modes.Death
}

func (s *Simulation) startTick() {
	if s.perf != nil {
		s.perf.StartTick()
	}
}

func (s *Simulation) phase(name telemetry.Phase) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

func (s *Simulation) endTick() {
	if s.perf != nil {
		s.perf.EndTick()
	}
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 { return s.tick }

// Store returns the entity store. Callers must not mutate it during Step.
func (s *Simulation) Store() *components.Store { return s.store }

// Workers returns the number of pool workers (excluding the orchestrator).
func (s *Simulation) Workers() int { return s.workers }

// Walls returns the wall rectangle.
func (s *Simulation) Walls() systems.Bounds { return s.walls }

// Clock returns the clock used to stamp collision events.
func (s *Simulation) Clock() *telemetry.Clock { return s.clock }

// LastRetired returns how many moving and stationary entities died in the
// most recent tick.
func (s *Simulation) LastRetired() (moving, stationary int) {
	return s.lastRetired[0], s.lastRetired[1]
}

// TotalRetired returns cumulative deaths per population.
func (s *Simulation) TotalRetired() (moving, stationary int) {
	return s.totalRetired[0], s.totalRetired[1]
}
