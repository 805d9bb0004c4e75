package systems

import "github.com/pthm-cable/circlesim/components"

// Bounds is an axis-aligned wall rectangle.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// Contains reports whether (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// wallMargin is the extra distance a clamped circle is pushed inside the wall.
const wallMargin = 1.0

// ResolveWalls clamps alive moving entities in span back inside the walls.
// Sides are checked left, right, bottom, top and only the first penetrated
// side is corrected per entity per call, so a circle in a corner has one
// axis fixed per tick. The corrected axis has its velocity negated.
func ResolveWalls(moving *components.Population, span Span, walls Bounds) {
	circles := moving.Circles
	vels := moving.Velocities

	for i := span.Start; i < span.End; i++ {
		if !moving.Alive[i] {
			continue
		}
		c := &circles[i]
		v := &vels[i]

		switch {
		case c.X-c.Radius <= walls.MinX:
			c.X = walls.MinX + c.Radius + wallMargin
			v.X = -v.X
		case c.X+c.Radius >= walls.MaxX:
			c.X = walls.MaxX - c.Radius - wallMargin
			v.X = -v.X
		case c.Y-c.Radius <= walls.MinY:
			c.Y = walls.MinY + c.Radius + wallMargin
			v.Y = -v.Y
		case c.Y+c.Radius >= walls.MaxY:
			c.Y = walls.MaxY - c.Radius - wallMargin
			v.Y = -v.Y
		}
	}
}
