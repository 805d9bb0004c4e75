package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/circlesim/components"
)

// HallEntry is one ranked entity.
type HallEntry struct {
	Kind         string `csv:"kind"`
	Rank         int    `csv:"rank"`
	Label        string `csv:"label"`
	Collisions   int    `csv:"collisions"`
	FirstTick    int64  `csv:"first_tick"`
	LastTick     int64  `csv:"last_tick"`
	Health       int32  `csv:"health"`
	DepletedTick int64  `csv:"depleted_tick"`
}

// HallOfFame keeps the most-collided entities of each population.
// Halls are indexed by components.Kind.
type HallOfFame struct {
	halls   [2][]HallEntry
	maxSize int
}

// NewHallOfFame creates a new hall of fame with the given capacity per population.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{maxSize: maxSize}
}

// BuildHallOfFame ranks every entity the tracker has seen.
func BuildHallOfFame(lt *LifetimeTracker, maxSize int) *HallOfFame {
	hof := NewHallOfFame(maxSize)
	for _, kind := range []components.Kind{components.KindMoving, components.KindStationary} {
		for _, s := range lt.All(kind) {
			hof.Consider(s)
		}
	}
	return hof
}

// Consider evaluates an entity for entry. Returns true if it was added.
func (hof *HallOfFame) Consider(s *LifetimeStats) bool {
	entry := HallEntry{
		Kind:         s.Kind.String(),
		Label:        s.Label,
		Collisions:   s.Collisions,
		FirstTick:    s.FirstTick,
		LastTick:     s.LastTick,
		Health:       s.Health,
		DepletedTick: s.DepletedTick,
	}
	hall := &hof.halls[s.Kind]
	var added bool
	*hall, added = hof.insertEntry(*hall, entry)
	if added {
		for i := range *hall {
			(*hall)[i].Rank = i + 1
		}
	}
	return added
}

// ranksAbove orders by collisions descending, then label for stable output.
func ranksAbove(a, b HallEntry) bool {
	if a.Collisions != b.Collisions {
		return a.Collisions > b.Collisions
	}
	return a.Label < b.Label
}

// insertEntry adds an entry to the hall, maintaining rank order.
// If the hall is full, the lowest-ranked entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) ([]HallEntry, bool) {
	idx := sort.Search(len(hall), func(i int) bool {
		return ranksAbove(entry, hall[i])
	})

	// Full and the entry would land past the end
	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall, false
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall, true
}

// Entries returns the ranked entries of kind.
func (hof *HallOfFame) Entries(kind components.Kind) []HallEntry {
	return hof.halls[kind]
}

// All returns both halls, moving first.
func (hof *HallOfFame) All() []HallEntry {
	out := make([]HallEntry, 0, len(hof.halls[0])+len(hof.halls[1]))
	out = append(out, hof.halls[components.KindMoving]...)
	return append(out, hof.halls[components.KindStationary]...)
}

// Log writes the top entry of each population.
func (hof *HallOfFame) Log() {
	for _, hall := range hof.halls {
		if len(hall) == 0 {
			continue
		}
		top := hall[0]
		slog.Info("hall of fame",
			"kind", top.Kind,
			"label", top.Label,
			"collisions", top.Collisions,
			"health", top.Health,
			"entries", len(hall),
		)
	}
}
