package game

import (
	"math/rand"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/config"
)

// Factory produces the initial entity data for a run.
type Factory interface {
	Populate(cfg *config.Config) (*components.Store, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(cfg *config.Config) (*components.Store, error)

// Populate calls f.
func (f FactoryFunc) Populate(cfg *config.Config) (*components.Store, error) {
	return f(cfg)
}

// RandomFactory fills a store with uniformly random attributes inside the
// configured bounds.
type RandomFactory struct {
	rng *rand.Rand
}

// NewRandomFactory creates a factory seeded with seed.
func NewRandomFactory(seed int64) *RandomFactory {
	return &RandomFactory{rng: rand.New(rand.NewSource(seed))}
}

// Populate creates both populations. The stationary population is left
// unsorted; the simulation sorts it before the first tick.
func (f *RandomFactory) Populate(cfg *config.Config) (*components.Store, error) {
	s := components.NewStore(cfg.Derived.MovingCount, cfg.Derived.StationaryCount)
	f.fill(cfg, &s.Moving)
	f.fill(cfg, &s.Stationary)
	return s, nil
}

func (f *RandomFactory) fill(cfg *config.Config, p *components.Population) {
	for i := range p.Circles {
		p.Circles[i] = components.Circle{
			Radius: f.radius(cfg),
			X:      f.uniform(cfg.World.MinX, cfg.World.MaxX),
			Y:      f.uniform(cfg.World.MinY, cfg.World.MaxY),
		}
		p.States[i] = components.CollisionState{
			Label:  f.label(cfg.Collision.LabelLength),
			Health: cfg.Derived.Health32,
		}
		p.Colours[i] = components.Colour{
			R: uint8(f.rng.Intn(255)),
			G: uint8(f.rng.Intn(255)),
			B: uint8(f.rng.Intn(255)),
		}
		if p.Velocities != nil {
			p.Velocities[i] = components.Velocity{
				X: f.uniform(cfg.Velocity.MinX, cfg.Velocity.MaxX),
				Y: f.uniform(cfg.Velocity.MinY, cfg.Velocity.MaxY),
			}
		}
	}
}

func (f *RandomFactory) radius(cfg *config.Config) float32 {
	if !cfg.Modes.RandomRadius {
		return float32(cfg.Radius.Fixed)
	}
	return f.uniform(cfg.Radius.Min, cfg.Radius.Max)
}

func (f *RandomFactory) uniform(lo, hi float64) float32 {
	return float32(lo + f.rng.Float64()*(hi-lo))
}

// label returns n random lowercase letters.
func (f *RandomFactory) label(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + f.rng.Intn(26))
	}
	return string(b)
}
