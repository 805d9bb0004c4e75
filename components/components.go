// Package components defines the structure-of-arrays entity data for the simulation.
// An entity is identified by its index; parallel slices of a population are
// always permuted together.
package components

// Circle is the collision shape and position of an entity.
type Circle struct {
	Radius float32
	X, Y   float32
}

// MinX returns the left edge of the circle's x-interval.
func (c Circle) MinX() float32 { return c.X - c.Radius }

// MaxX returns the right edge of the circle's x-interval.
func (c Circle) MaxX() float32 { return c.X + c.Radius }

// Velocity represents a moving entity's velocity in world units per second.
type Velocity struct {
	X, Y float32
}

// CollisionState holds the identity and health of an entity.
// Health of stationary entities is decremented atomically during the collision phase.
type CollisionState struct {
	Label  string
	Health int32
}

// Colour is an entity's display tint.
type Colour struct {
	R, G, B uint8
}

// Kind distinguishes the two populations.
type Kind uint8

const (
	KindMoving Kind = iota
	KindStationary
)

func (k Kind) String() string {
	switch k {
	case KindMoving:
		return "moving"
	case KindStationary:
		return "stationary"
	}
	return "unknown"
}
