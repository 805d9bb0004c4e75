package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType names the kind of moment a bookmark marks.
type BookmarkType string

const (
	BookmarkCollisionSurge BookmarkType = "collision_surge"
	BookmarkMovingCrash    BookmarkType = "moving_crash"
	BookmarkExtinction     BookmarkType = "extinction"
	BookmarkSettled        BookmarkType = "settled"
)

// Bookmark marks a tick worth looking at after the run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark emits b at info level.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark", "type", string(b.Type), "tick", b.Tick, "description", b.Description)
}

const (
	settledWindows = 5 // consecutive steady checks before a run counts as settled
	settledSpan    = 4 // windows compared by each steady check
	surgeFactor    = 2.0
	surgeMinimum   = 10
	crashFraction  = 0.30
	crashMinimum   = 10
)

// BookmarkDetector watches successive window stats for notable moments.
type BookmarkDetector struct {
	rates    []float64 // collision rate per window, oldest first
	capacity int

	movingPeak   int
	extinct      bool
	steadyChecks int
}

// NewBookmarkDetector keeps up to capacity windows of history.
func NewBookmarkDetector(capacity int) *BookmarkDetector {
	capacity = max(capacity, settledSpan)
	return &BookmarkDetector{
		rates:    make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Check compares stats against the history and returns whatever fired.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	emit := func(b Bookmark, ok bool) {
		if ok {
			out = append(out, b)
		}
	}

	if len(bd.rates) > 0 {
		emit(bd.surge(stats))
		emit(bd.crash(stats))
	}
	emit(bd.extinction(stats))

	bd.push(stats.CollisionsPerSec)
	emit(bd.settled(stats))

	bd.movingPeak = max(bd.movingPeak, stats.MovingAlive)
	return out
}

func (bd *BookmarkDetector) push(rate float64) {
	if len(bd.rates) == bd.capacity {
		copy(bd.rates, bd.rates[1:])
		bd.rates = bd.rates[:len(bd.rates)-1]
	}
	bd.rates = append(bd.rates, rate)
}

func (bd *BookmarkDetector) surge(stats WindowStats) (Bookmark, bool) {
	if len(bd.rates) < 3 {
		return Bookmark{}, false
	}
	avg := stat.Mean(bd.rates, nil)
	if avg == 0 || stats.CollisionsPerSec <= avg*surgeFactor || stats.Collisions < surgeMinimum {
		return Bookmark{}, false
	}
	return Bookmark{
		Type: BookmarkCollisionSurge,
		Tick: stats.WindowEndTick,
		Description: fmt.Sprintf("Collision rate %.1f/s is %.1fx average (%.1f/s)",
			stats.CollisionsPerSec, stats.CollisionsPerSec/avg, avg),
	}, true
}

// crash resets the peak when it fires so one decline is reported once.
func (bd *BookmarkDetector) crash(stats WindowStats) (Bookmark, bool) {
	peak := bd.movingPeak
	if peak == 0 {
		return Bookmark{}, false
	}
	drop := 1 - float64(stats.MovingAlive)/float64(peak)
	if drop <= crashFraction || stats.MovingAlive >= peak-crashMinimum {
		return Bookmark{}, false
	}
	bd.movingPeak = stats.MovingAlive
	return Bookmark{
		Type:        BookmarkMovingCrash,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Moving population fell %.0f%% from %d to %d", drop*100, peak, stats.MovingAlive),
	}, true
}

func (bd *BookmarkDetector) extinction(stats WindowStats) (Bookmark, bool) {
	if bd.extinct || stats.MovingAlive > 0 || stats.MovingDeaths == 0 {
		return Bookmark{}, false
	}
	bd.extinct = true
	return Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: "No moving entities remain",
	}, true
}

// settled fires once the collision rate has held a coefficient of variation
// under 20% across settledSpan windows for settledWindows checks in a row.
func (bd *BookmarkDetector) settled(stats WindowStats) (Bookmark, bool) {
	if len(bd.rates) < settledSpan || stats.Collisions == 0 {
		bd.steadyChecks = 0
		return Bookmark{}, false
	}
	mean, variance := stat.PopMeanVariance(bd.rates[len(bd.rates)-settledSpan:], nil)
	if mean > 0 && variance/(mean*mean) < 0.04 {
		bd.steadyChecks++
	} else {
		bd.steadyChecks = 0
	}
	if bd.steadyChecks != settledWindows {
		return Bookmark{}, false
	}
	return Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Collision rate steady near %.1f/s", mean),
	}, true
}
