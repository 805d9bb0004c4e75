package telemetry

import (
	"testing"

	"github.com/pthm-cable/circlesim/components"
)

func TestLifetimeTrackerConsume(t *testing.T) {
	lt := NewLifetimeTracker()
	events := []CollisionEvent{
		{Tick: 4, LabelA: "m1", HealthA: 80, LabelB: "s1", HealthB: 80},
		{Tick: 7, LabelA: "m1", HealthA: 60, LabelB: "s2", HealthB: 80},
		{Tick: 9, LabelA: "m2", HealthA: 80, LabelB: "s1", HealthB: 60},
	}
	if err := lt.Consume(events); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	m1 := lt.Get(components.KindMoving, "m1")
	if m1 == nil || m1.Collisions != 2 || m1.FirstTick != 4 || m1.LastTick != 7 || m1.Health != 60 {
		t.Errorf("m1 = %+v", m1)
	}
	s1 := lt.Get(components.KindStationary, "s1")
	if s1 == nil || s1.Collisions != 2 || s1.Health != 60 || s1.Kind != components.KindStationary {
		t.Errorf("s1 = %+v", s1)
	}
	if lt.Get(components.KindMoving, "s1") != nil {
		t.Error("populations share label space")
	}
	if lt.Count(components.KindMoving) != 2 || lt.Count(components.KindStationary) != 2 {
		t.Errorf("counts = %d/%d", lt.Count(components.KindMoving), lt.Count(components.KindStationary))
	}
}

func TestLifetimeTrackerDepletedTick(t *testing.T) {
	lt := NewLifetimeTracker()
	_ = lt.Consume([]CollisionEvent{{Tick: 5, LabelA: "m", HealthA: 20, LabelB: "s", HealthB: 80}})
	_ = lt.Consume([]CollisionEvent{{Tick: 8, LabelA: "m", HealthA: 0, LabelB: "s", HealthB: 60}})
	_ = lt.Consume([]CollisionEvent{{Tick: 12, LabelA: "m", HealthA: -20, LabelB: "s", HealthB: 40}})

	m := lt.Get(components.KindMoving, "m")
	if m.DepletedTick != 8 {
		t.Errorf("DepletedTick = %d, want 8", m.DepletedTick)
	}
	if s := lt.Get(components.KindStationary, "s"); s.DepletedTick != 0 {
		t.Errorf("stationary DepletedTick = %d, want 0", s.DepletedTick)
	}
}

func TestNilLifetimeTrackerInMultiSink(t *testing.T) {
	var lt *LifetimeTracker
	sinks := MultiSink{NewCollector(5, 0.1), lt}
	events := []CollisionEvent{{Tick: 1, LabelA: "m1", HealthA: 80, LabelB: "s1", HealthB: 80}}
	if err := sinks.Consume(events); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if lt.Get(components.KindMoving, "m1") != nil || lt.Count(components.KindMoving) != 0 {
		t.Error("nil tracker reported stats")
	}
	if hof := BuildHallOfFame(lt, 10); len(hof.All()) != 0 {
		t.Errorf("hall from nil tracker = %v", hof.All())
	}
}
