package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable visual layer.
type OverlayID string

const (
	OverlayKindColors   OverlayID = "kind_colors"
	OverlayOutlines     OverlayID = "outlines"
	OverlayWalls        OverlayID = "walls"
	OverlayVelocities   OverlayID = "velocities"
	OverlayBroadPhase   OverlayID = "broad_phase"
	OverlayControlPanel OverlayID = "control_panel"
)

// OverlayDescriptor describes one overlay and the key that toggles it.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // shown in the legend
	Default   bool   // enabled at startup
	Exclusive []OverlayID
}

// defaultOverlays in legend order. Kind colours and outlines are alternative
// fill styles, so each switches the other off.
var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayKindColors, Name: "Kind Colors", Key: rl.KeyK, KeyLabel: "K", Exclusive: []OverlayID{OverlayOutlines}},
	{ID: OverlayOutlines, Name: "Outlines", Key: rl.KeyO, KeyLabel: "O", Exclusive: []OverlayID{OverlayKindColors}},
	{ID: OverlayWalls, Name: "Walls", Key: rl.KeyB, KeyLabel: "B", Default: true},
	{ID: OverlayVelocities, Name: "Velocities", Key: rl.KeyV, KeyLabel: "V"},
	{ID: OverlayBroadPhase, Name: "Broad Phase", Key: rl.KeyG, KeyLabel: "G"},
	{ID: OverlayControlPanel, Name: "Controls", Key: rl.KeyTab, KeyLabel: "Tab", Default: true},
}

// OverlayRegistry tracks which overlays are on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the default overlays in
// their startup state.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay in its default state.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	r.descriptors = append(r.descriptors, d)
	r.enabled[d.ID] = d.Default
}

func (r *OverlayRegistry) lookup(id OverlayID) (OverlayDescriptor, bool) {
	for _, d := range r.descriptors {
		if d.ID == id {
			return d, true
		}
	}
	return OverlayDescriptor{}, false
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	on := !r.enabled[id]
	r.SetEnabled(id, on)
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Enabling switches off its exclusives.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	d, ok := r.lookup(id)
	if !ok {
		return
	}
	r.enabled[id] = on
	if !on {
		return
	}
	for _, other := range d.Exclusive {
		r.enabled[other] = false
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns the registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key. Returns the overlay, its
// new state and whether any overlay was bound to key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, d := range r.descriptors {
		if d.Key != 0 && d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}

// Legend returns a one-line key legend such as "K Kind Colors | B Walls".
func (r *OverlayRegistry) Legend() string {
	parts := make([]string, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if d.KeyLabel != "" {
			parts = append(parts, d.KeyLabel+" "+d.Name)
		}
	}
	return strings.Join(parts, " | ")
}
