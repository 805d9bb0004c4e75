package components

import (
	"fmt"
	"sort"
)

// Population holds one entity population as parallel slices indexed by entity.
// Velocities is nil for stationary populations.
type Population struct {
	Kind       Kind
	Circles    []Circle
	Velocities []Velocity
	States     []CollisionState
	Colours    []Colour
	Alive      []bool
}

// NewPopulation allocates a population of n alive entities with zero values.
func NewPopulation(kind Kind, n int) Population {
	p := Population{
		Kind:    kind,
		Circles: make([]Circle, n),
		States:  make([]CollisionState, n),
		Colours: make([]Colour, n),
		Alive:   make([]bool, n),
	}
	if kind == KindMoving {
		p.Velocities = make([]Velocity, n)
	}
	for i := range p.Alive {
		p.Alive[i] = true
	}
	return p
}

// Len returns the number of entities.
func (p *Population) Len() int { return len(p.Circles) }

// AliveCount returns the number of entities not yet retired.
func (p *Population) AliveCount() int {
	n := 0
	for _, a := range p.Alive {
		if a {
			n++
		}
	}
	return n
}

// Validate checks that all parallel slices have the same length.
func (p *Population) Validate() error {
	n := len(p.Circles)
	if len(p.States) != n || len(p.Colours) != n || len(p.Alive) != n {
		return fmt.Errorf("%s population: parallel slice lengths differ (circles=%d states=%d colours=%d alive=%d)",
			p.Kind, n, len(p.States), len(p.Colours), len(p.Alive))
	}
	if p.Kind == KindMoving && len(p.Velocities) != n {
		return fmt.Errorf("moving population: velocities=%d, circles=%d", len(p.Velocities), n)
	}
	if p.Kind == KindStationary && p.Velocities != nil {
		return fmt.Errorf("stationary population must not carry velocities")
	}
	return nil
}

// Store owns both populations for a simulation run.
type Store struct {
	Moving     Population
	Stationary Population
}

// NewStore allocates a store with the given population sizes.
func NewStore(moving, stationary int) *Store {
	return &Store{
		Moving:     NewPopulation(KindMoving, moving),
		Stationary: NewPopulation(KindStationary, stationary),
	}
}

// SortStationary orders the stationary population ascending by X,
// permuting every parallel slice together. Must run before the first tick.
func (s *Store) SortStationary() {
	sort.Sort(byX{&s.Stationary})
}

// Validate checks slice lengths and the stationary sort order.
func (s *Store) Validate() error {
	if err := s.Moving.Validate(); err != nil {
		return err
	}
	if err := s.Stationary.Validate(); err != nil {
		return err
	}
	c := s.Stationary.Circles
	for i := 1; i < len(c); i++ {
		if c[i].X < c[i-1].X {
			return fmt.Errorf("stationary population not sorted by x at index %d (%v < %v)", i, c[i].X, c[i-1].X)
		}
	}
	return nil
}

// byX sorts a stationary population by circle X.
type byX struct{ p *Population }

func (b byX) Len() int           { return len(b.p.Circles) }
func (b byX) Less(i, j int) bool { return b.p.Circles[i].X < b.p.Circles[j].X }
func (b byX) Swap(i, j int) {
	p := b.p
	p.Circles[i], p.Circles[j] = p.Circles[j], p.Circles[i]
	p.States[i], p.States[j] = p.States[j], p.States[i]
	p.Colours[i], p.Colours[j] = p.Colours[j], p.Colours[i]
	p.Alive[i], p.Alive[j] = p.Alive[j], p.Alive[i]
}
