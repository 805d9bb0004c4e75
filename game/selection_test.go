package game

import (
	"testing"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/telemetry"
)

func selectionStore() *components.Store {
	s := components.NewStore(2, 2)
	s.Moving.Circles[0] = components.Circle{Radius: 5, X: 0, Y: 0}
	s.Moving.Circles[1] = components.Circle{Radius: 5, X: 100, Y: 0}
	s.Moving.Velocities[1] = components.Velocity{X: 3, Y: -4}
	s.Moving.States[1] = components.CollisionState{Label: "mover", Health: 60}
	s.Stationary.Circles[0] = components.Circle{Radius: 10, X: 4, Y: 0}
	s.Stationary.Circles[1] = components.Circle{Radius: 2, X: 50, Y: 50}
	return s
}

func TestPick(t *testing.T) {
	store := selectionStore()

	tests := []struct {
		name   string
		wx, wy float32
		slack  float32
		want   Selection
		ok     bool
	}{
		{"moving centre", 100, 1, 0, Selection{components.KindMoving, 1}, true},
		{"overlap prefers nearest centre", 3, 0, 0, Selection{components.KindStationary, 0}, true},
		{"overlap other side", -1, 0, 0, Selection{components.KindMoving, 0}, true},
		{"miss", 50, 10, 0, Selection{}, false},
		{"slack reaches", 50, 54, 3, Selection{components.KindStationary, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(store, tt.wx, tt.wy, tt.slack)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Pick(%v,%v) = %+v,%v; want %+v,%v", tt.wx, tt.wy, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPickSkipsDead(t *testing.T) {
	store := selectionStore()
	store.Moving.Alive[1] = false

	if _, ok := Pick(store, 100, 0, 0); ok {
		t.Error("picked a dead entity")
	}
}

func TestInspect(t *testing.T) {
	store := selectionStore()

	d := Inspect(store, Selection{components.KindMoving, 1}, 100, nil)
	if d.State.Label != "mover" || d.State.Health != 60 || d.InitialHealth != 100 {
		t.Errorf("moving inspect = %+v", d)
	}
	if d.Velocity != (components.Velocity{X: 3, Y: -4}) {
		t.Errorf("velocity = %+v", d.Velocity)
	}

	d = Inspect(store, Selection{components.KindStationary, 1}, 100, nil)
	if d.Circle.X != 50 || d.Velocity != (components.Velocity{}) || !d.Alive {
		t.Errorf("stationary inspect = %+v", d)
	}
}

func TestInspectWithLifetimes(t *testing.T) {
	store := selectionStore()
	lt := telemetry.NewLifetimeTracker()
	_ = lt.Consume([]telemetry.CollisionEvent{
		{Tick: 3, LabelA: "mover", HealthA: 80, LabelB: "x", HealthB: 80},
		{Tick: 9, LabelA: "mover", HealthA: 60, LabelB: "y", HealthB: 80},
	})

	d := Inspect(store, Selection{components.KindMoving, 1}, 100, lt)
	if d.Collisions != 2 || d.LastCollision != 9 {
		t.Errorf("collisions = %d last = %d, want 2 9", d.Collisions, d.LastCollision)
	}
}
