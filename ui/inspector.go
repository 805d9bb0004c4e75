package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/circlesim/components"
)

// InspectorData describes the selected entity.
type InspectorData struct {
	Kind          components.Kind
	Index         int
	Circle        components.Circle
	Velocity      components.Velocity
	State         components.CollisionState
	Colour        components.Colour
	Alive         bool
	InitialHealth int32

	Collisions    int
	LastCollision int64 // Tick of the latest collision; 0 if none
}

// Inspector renders the entity inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	pad := r.Theme.Padding
	r.DrawPanel(ins.x, ins.y, ins.width, 190)

	x := ins.x + pad
	y := r.DrawSectionHeader(x, ins.y+pad, fmt.Sprintf("%s #%d", data.Kind, data.Index))

	rl.DrawRectangle(ins.x+ins.width-pad-12, ins.y+pad, 12, 12,
		rl.Color{R: data.Colour.R, G: data.Colour.G, B: data.Colour.B, A: 255})

	y = r.DrawLabelValue(x, y, "Label", data.State.Label)
	y = r.DrawHealthBar(x, y, "Health", float32(data.State.Health), float32(data.InitialHealth), ins.width-pad*2)
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("(%.1f, %.1f)", data.Circle.X, data.Circle.Y))
	y = r.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.2f", data.Circle.Radius))
	if data.Kind == components.KindMoving {
		y = r.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("(%.1f, %.1f)", data.Velocity.X, data.Velocity.Y))
	}
	y = r.DrawLabelValue(x, y, "Collisions", fmt.Sprintf("%d", data.Collisions))
	if data.Collisions > 0 {
		y = r.DrawLabelValue(x, y, "Last hit", fmt.Sprintf("tick %d", data.LastCollision))
	}
	status := "alive"
	if !data.Alive {
		status = "dead"
	}
	r.DrawLabelValue(x, y, "Status", status)
}
