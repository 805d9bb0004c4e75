package game

import (
	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/telemetry"
	"github.com/pthm-cable/circlesim/ui"
)

// Selection identifies one entity by population and index.
type Selection struct {
	Kind  components.Kind
	Index int
}

// Pick returns the alive entity whose circle, grown by slack, contains
// (wx, wy), preferring the one whose centre is closest.
func Pick(store *components.Store, wx, wy, slack float32) (Selection, bool) {
	best := Selection{}
	bestDist := float32(-1)

	scan := func(p *components.Population) {
		for i, c := range p.Circles {
			if !p.Alive[i] {
				continue
			}
			dx, dy := c.X-wx, c.Y-wy
			d2 := dx*dx + dy*dy
			r := c.Radius + slack
			if d2 > r*r {
				continue
			}
			if bestDist < 0 || d2 < bestDist {
				bestDist = d2
				best = Selection{Kind: p.Kind, Index: i}
			}
		}
	}
	scan(&store.Moving)
	scan(&store.Stationary)

	return best, bestDist >= 0
}

// Inspect collects inspector data for sel. lifetimes may be nil.
func Inspect(store *components.Store, sel Selection, initialHealth int32, lifetimes *telemetry.LifetimeTracker) ui.InspectorData {
	p := &store.Moving
	if sel.Kind == components.KindStationary {
		p = &store.Stationary
	}
	d := ui.InspectorData{
		Kind:          sel.Kind,
		Index:         sel.Index,
		Circle:        p.Circles[sel.Index],
		State:         p.States[sel.Index],
		Colour:        p.Colours[sel.Index],
		Alive:         p.Alive[sel.Index],
		InitialHealth: initialHealth,
	}
	if p.Velocities != nil {
		d.Velocity = p.Velocities[sel.Index]
	}
	if lifetimes != nil {
		if lt := lifetimes.Get(sel.Kind, d.State.Label); lt != nil {
			d.Collisions = lt.Collisions
			d.LastCollision = lt.LastTick
		}
	}
	return d
}
