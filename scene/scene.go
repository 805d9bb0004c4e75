// Package scene holds the visual stand-ins for simulated entities in an ECS world.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/circlesim/components"
	"github.com/pthm-cable/circlesim/systems"
)

// Transform is the drawn position of an entity.
type Transform struct {
	X, Y float32
}

// Sprite describes how an entity is drawn.
type Sprite struct {
	Radius  float32
	Colour  components.Colour
	Kind    components.Kind
	Visible bool
}

// Scene is an ECS world with one entity per simulated circle.
// The entity set is fixed at construction; nothing is added or removed
// afterwards, which keeps component pointers held by handles valid.
type Scene struct {
	world      *ecs.World
	mapper     *ecs.Map2[Transform, Sprite]
	filter     *ecs.Filter2[Transform, Sprite]
	transforms *ecs.Map1[Transform]
	sprites    *ecs.Map1[Sprite]

	moving     []Handle
	stationary []Handle
}

// New builds a scene mirroring both populations of store.
func New(store *components.Store) *Scene {
	world := ecs.NewWorld()
	s := &Scene{
		world:      world,
		mapper:     ecs.NewMap2[Transform, Sprite](world),
		filter:     ecs.NewFilter2[Transform, Sprite](world),
		transforms: ecs.NewMap1[Transform](world),
		sprites:    ecs.NewMap1[Sprite](world),
	}

	movingEntities := s.spawn(&store.Moving)
	stationaryEntities := s.spawn(&store.Stationary)

	// Resolve pointers only once every entity exists
	s.moving = s.handles(movingEntities)
	s.stationary = s.handles(stationaryEntities)
	return s
}

func (s *Scene) spawn(p *components.Population) []ecs.Entity {
	entities := make([]ecs.Entity, p.Len())
	for i, c := range p.Circles {
		t := Transform{X: c.X, Y: c.Y}
		sp := Sprite{
			Radius:  c.Radius,
			Colour:  p.Colours[i],
			Kind:    p.Kind,
			Visible: p.Alive[i],
		}
		entities[i] = s.mapper.NewEntity(&t, &sp)
	}
	return entities
}

func (s *Scene) handles(entities []ecs.Entity) []Handle {
	out := make([]Handle, len(entities))
	for i, e := range entities {
		out[i] = Handle{
			entity:    e,
			transform: s.transforms.Get(e),
			sprite:    s.sprites.Get(e),
		}
	}
	return out
}

// Proxies returns one proxy per entity of each population, in store order.
func (s *Scene) Proxies() (moving, stationary []systems.Proxy) {
	return proxies(s.moving), proxies(s.stationary)
}

func proxies(hs []Handle) []systems.Proxy {
	out := make([]systems.Proxy, len(hs))
	for i := range hs {
		out[i] = &hs[i]
	}
	return out
}

// Each calls fn for every visible entity. Must not run concurrently with a
// simulation step that writes through this scene's proxies.
func (s *Scene) Each(fn func(t *Transform, sp *Sprite)) {
	query := s.filter.Query()
	for query.Next() {
		t, sp := query.Get()
		if !sp.Visible {
			continue
		}
		fn(t, sp)
	}
}

// Visible returns the number of visible entities.
func (s *Scene) Visible() int {
	n := 0
	s.Each(func(*Transform, *Sprite) { n++ })
	return n
}

// Len returns the total number of entities.
func (s *Scene) Len() int { return len(s.moving) + len(s.stationary) }

// Moving returns the handle for moving entity i.
func (s *Scene) Moving(i int) *Handle { return &s.moving[i] }

// Stationary returns the handle for stationary entity i.
func (s *Scene) Stationary(i int) *Handle { return &s.stationary[i] }

// Handle is the proxy for one scene entity. Distinct handles may be written
// from different goroutines.
type Handle struct {
	entity    ecs.Entity
	transform *Transform
	sprite    *Sprite
}

// SetPosition moves the entity.
func (h *Handle) SetPosition(x, y float32) {
	h.transform.X = x
	h.transform.Y = y
}

// Hide stops the entity being drawn.
func (h *Handle) Hide() {
	h.sprite.Visible = false
}

// Entity returns the underlying ECS entity.
func (h *Handle) Entity() ecs.Entity { return h.entity }

// Transform returns the entity's current transform.
func (h *Handle) Transform() Transform { return *h.transform }

// Sprite returns the entity's current sprite.
func (h *Handle) Sprite() Sprite { return *h.sprite }
