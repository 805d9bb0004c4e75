package telemetry

import "github.com/pthm-cable/circlesim/components"

// Collector accumulates collision events within tick windows and produces
// WindowStats. It implements Sink so it can sit alongside other sinks.
// Not safe for concurrent use; the simulation feeds it from one goroutine.
type Collector struct {
	windowTicks int64
	dt          float32

	windowStartTick int64

	collisions       int
	degenerate       int
	movingDeaths     int
	stationaryDeaths int
}

// NewCollector creates a collector flushing every windowTicks ticks.
// dt is seconds per tick, used for tick-to-time conversion.
func NewCollector(windowTicks int, dt float32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: int64(windowTicks),
		dt:          dt,
	}
}

// Consume counts the events of one batch.
func (c *Collector) Consume(events []CollisionEvent) error {
	c.collisions += len(events)
	for i := range events {
		if events[i].Degenerate {
			c.degenerate++
		}
	}
	return nil
}

// RecordDeaths records n entities of kind retired this tick.
func (c *Collector) RecordDeaths(kind components.Kind, n int) {
	if kind == components.KindMoving {
		c.movingDeaths += n
	} else {
		c.stationaryDeaths += n
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats from the counters and the current store and
// resets the counters for the next window.
func (c *Collector) Flush(currentTick int64, store *components.Store) WindowStats {
	ticks := currentTick - c.windowStartTick
	var rate float64
	if ticks > 0 && c.dt > 0 {
		rate = float64(c.collisions) / (float64(ticks) * float64(c.dt))
	}

	movMean, movP10, movP50, movP90 := ComputeHealthStats(aliveHealth(&store.Moving))
	statMean, statP10, statP50, statP90 := ComputeHealthStats(aliveHealth(&store.Stationary))

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		MovingAlive:     store.Moving.AliveCount(),
		StationaryAlive: store.Stationary.AliveCount(),

		Collisions:       c.collisions,
		Degenerate:       c.degenerate,
		MovingDeaths:     c.movingDeaths,
		StationaryDeaths: c.stationaryDeaths,
		CollisionsPerSec: rate,

		MovingHealthMean: movMean,
		MovingHealthP10:  movP10,
		MovingHealthP50:  movP50,
		MovingHealthP90:  movP90,

		StationaryHealthMean: statMean,
		StationaryHealthP10:  statP10,
		StationaryHealthP50:  statP50,
		StationaryHealthP90:  statP90,
	}

	c.windowStartTick = currentTick
	c.collisions = 0
	c.degenerate = 0
	c.movingDeaths = 0
	c.stationaryDeaths = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

func aliveHealth(p *components.Population) []float64 {
	out := make([]float64, 0, p.Len())
	for i := range p.States {
		if p.Alive[i] {
			out = append(out, float64(p.States[i].Health))
		}
	}
	return out
}
