package systems

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/telemetry"
)

// maxBackstepIterations bounds the iterative depenetration before it falls
// back to a closed-form projection.
const maxBackstepIterations = 256

// projectionSlack keeps a projected circle strictly outside after float32 rounding.
const projectionSlack = 1.0001

// CollisionParams holds per-tick collision parameters.
type CollisionParams struct {
	DT       float32
	Backstep float32 // Depenetration step as a multiple of v*dt
	Damage   int32
	Reach    float32 // Largest stationary radius
	Tick     int64

	// Clock stamps events; nil disables event emission.
	Clock *telemetry.Clock
}

// ResolveCollisions integrates every alive moving entity in span and resolves
// at most one collision each against the x-sorted stationary population.
// Events are appended to events and the extended slice is returned.
//
// Moving data outside span is not touched. Stationary circles are only read;
// stationary health is decremented atomically so concurrent callers on
// disjoint spans are safe.
func ResolveCollisions(moving *components.Population, span Span, stationary *components.Population, p CollisionParams, events []telemetry.CollisionEvent) []telemetry.CollisionEvent {
	circles := moving.Circles
	vels := moving.Velocities
	stat := stationary.Circles
	statAlive := stationary.Alive

	for i := span.Start; i < span.End; i++ {
		if !moving.Alive[i] {
			continue
		}
		c := &circles[i]
		v := &vels[i]
		vx, vy := v.X, v.Y

		c.X += vx * p.DT
		c.Y += vy * p.DT

		mx, my, mr := c.X, c.Y, c.Radius
		minX, maxX := mx-mr, mx+mr

		cand := FindCandidate(stat, p.Reach, minX, maxX)
		if cand < 0 {
			continue
		}

		hit := -1
		for j := cand; j < len(stat) && maxX > stat[j].X-p.Reach; j++ {
			if statAlive[j] && circlesOverlap(mx, my, mr, stat[j]) {
				hit = j
				break
			}
		}
		if hit < 0 {
			for j := cand - 1; j >= 0 && minX < stat[j].X+p.Reach; j-- {
				if statAlive[j] && circlesOverlap(mx, my, mr, stat[j]) {
					hit = j
					break
				}
			}
		}
		if hit < 0 {
			continue
		}

		b := stat[hit]
		Depenetrate(c, vx, vy, p.Backstep*p.DT, b)
		nv, degenerate := ReflectOffCircle(vx, vy, mx, my, b)
		*v = nv

		moving.States[i].Health -= p.Damage
		healthB := atomic.AddInt32(&stationary.States[hit].Health, -p.Damage)

		if p.Clock != nil {
			events = append(events, telemetry.CollisionEvent{
				Tick:        p.Tick,
				TimestampUS: p.Clock.SinceStartUS(),
				LabelA:      moving.States[i].Label,
				HealthA:     moving.States[i].Health,
				LabelB:      stationary.States[hit].Label,
				HealthB:     healthB,
				Degenerate:  degenerate,
			})
		}
	}
	return events
}

// circlesOverlap is the narrow-phase test: distance < ra + rb.
func circlesOverlap(x, y, r float32, b components.Circle) bool {
	dx := b.X - x
	dy := b.Y - y
	sum := r + b.Radius
	return dx*dx+dy*dy < sum*sum
}

// Distance returns the distance between two circle centres.
func Distance(a, b components.Circle) float32 {
	return float32(r2.Norm(r2.Sub(vec(a.X, a.Y), vec(b.X, b.Y))))
}

// Depenetrate steps a backwards along (vx, vy) scaled by step until it no
// longer overlaps b. The first step is always taken. A zero step, or a step
// that fails to separate within maxBackstepIterations, falls back to
// projecting a out along the b->a direction.
func Depenetrate(a *components.Circle, vx, vy, step float32, b components.Circle) {
	sx, sy := -vx*step, -vy*step
	sum := a.Radius + b.Radius
	if sx == 0 && sy == 0 {
		project(a, b, vx, vy)
		return
	}
	for i := 0; i < maxBackstepIterations; i++ {
		a.X += sx
		a.Y += sy
		if Distance(*a, b) >= sum {
			return
		}
	}
	project(a, b, vx, vy)
}

// project places a just outside b along the b->a direction, or against the
// velocity when the centres coincide, or along +X when both are zero.
func project(a *components.Circle, b components.Circle, vx, vy float32) {
	d := r2.Sub(vec(a.X, a.Y), vec(b.X, b.Y))
	var n r2.Vec
	switch {
	case r2.Norm(d) > 0:
		n = r2.Unit(d)
	case vx != 0 || vy != 0:
		n = r2.Scale(-1, r2.Unit(vec(vx, vy)))
	default:
		n = r2.Vec{X: 1}
	}
	dist := float64(a.Radius+b.Radius) * projectionSlack
	p := r2.Add(vec(b.X, b.Y), r2.Scale(dist, n))
	a.X, a.Y = float32(p.X), float32(p.Y)
}

// ReflectOffCircle reflects (vx, vy) across the unit normal from (x, y) to b's
// centre: v' = v - 2(v.n)n. When the centres coincide the normal falls back to
// the direction of travel (v' = -v) and degenerate is true; a zero velocity is
// returned unchanged.
func ReflectOffCircle(vx, vy, x, y float32, b components.Circle) (v components.Velocity, degenerate bool) {
	vel := vec(vx, vy)
	d := r2.Sub(vec(b.X, b.Y), vec(x, y))

	var n r2.Vec
	if r2.Norm(d) > 0 {
		n = r2.Unit(d)
	} else {
		degenerate = true
		if r2.Norm(vel) == 0 {
			return components.Velocity{X: vx, Y: vy}, degenerate
		}
		n = r2.Unit(vel)
	}

	r := Reflect(vel, n)
	return components.Velocity{X: float32(r.X), Y: float32(r.Y)}, degenerate
}

// Reflect reflects v across unit normal n.
func Reflect(v, n r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(2*r2.Dot(v, n), n))
}

// Speed returns the magnitude of a velocity.
func Speed(v components.Velocity) float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

func vec(x, y float32) r2.Vec {
	return r2.Vec{X: float64(x), Y: float64(y)}
}
