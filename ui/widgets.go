package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed UI primitives. Each Draw method that lays out a
// line returns the y of the next line.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.Panel)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.Border)
}

// DrawSectionHeader draws a panel title.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.Header)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label:" followed by value in the value column.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}

// DrawHealthBar draws a labelled bar filled to current/full with the numeric
// value to its right. Non-positive health draws an empty bar.
func (r *Renderer) DrawHealthBar(x, y int32, label string, current, full float32, width int32) int32 {
	th := r.Theme
	ratio := HealthRatio(current, full)

	barX := x + th.LabelWidth
	barW := width - th.LabelWidth - 60

	rl.DrawText(label+":", x, y, th.FontSize, th.Label)
	rl.DrawRectangle(barX, y+2, barW, th.BarHeight, th.BarTrack)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*ratio), th.BarHeight, th.HealthColor(ratio))
	rl.DrawText(fmt.Sprintf("%.0f/%.0f", current, full), barX+barW+5, y, th.FontSize, th.Value)

	return y + th.LineHeight + 2
}

// HealthRatio returns current/full clamped to [0, 1]; 0 when full <= 0.
func HealthRatio(current, full float32) float32 {
	if full <= 0 {
		return 0
	}
	return clamp01(current / full)
}
