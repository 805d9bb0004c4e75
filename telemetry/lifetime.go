package telemetry

import "github.com/pthm-cable/circlesim/components"

// LifetimeStats tracks one entity's collision history, keyed by label.
type LifetimeStats struct {
	Kind  components.Kind
	Label string

	Collisions int
	FirstTick  int64
	LastTick   int64

	Health       int32 // Health after the latest collision
	DepletedTick int64 // Tick health first reached zero; 0 while positive
}

// LifetimeTracker accumulates per-entity stats from collision events.
// It is a Sink and must only be fed from one goroutine. A nil tracker
// records nothing and reports nothing.
type LifetimeTracker struct {
	stats [2]map[string]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: [2]map[string]*LifetimeStats{
			components.KindMoving:     make(map[string]*LifetimeStats),
			components.KindStationary: make(map[string]*LifetimeStats),
		},
	}
}

// Consume records both participants of every event.
func (lt *LifetimeTracker) Consume(events []CollisionEvent) error {
	if lt == nil {
		return nil
	}
	for _, e := range events {
		lt.record(components.KindMoving, e.LabelA, e.HealthA, e.Tick)
		lt.record(components.KindStationary, e.LabelB, e.HealthB, e.Tick)
	}
	return nil
}

func (lt *LifetimeTracker) record(kind components.Kind, label string, health int32, tick int64) {
	s := lt.stats[kind][label]
	if s == nil {
		s = &LifetimeStats{Kind: kind, Label: label, FirstTick: tick}
		lt.stats[kind][label] = s
	}
	s.Collisions++
	s.LastTick = tick
	s.Health = health
	if health <= 0 && s.DepletedTick == 0 {
		s.DepletedTick = tick
	}
}

// Get returns the stats for an entity, or nil if it has never collided.
func (lt *LifetimeTracker) Get(kind components.Kind, label string) *LifetimeStats {
	if lt == nil {
		return nil
	}
	return lt.stats[kind][label]
}

// All returns every tracked entity of kind.
func (lt *LifetimeTracker) All(kind components.Kind) map[string]*LifetimeStats {
	if lt == nil {
		return nil
	}
	return lt.stats[kind]
}

// Count returns the number of tracked entities of kind.
func (lt *LifetimeTracker) Count(kind components.Kind) int {
	if lt == nil {
		return 0
	}
	return len(lt.stats[kind])
}
