// Package systems provides the per-tick collision, wall, death and proxy systems.
package systems

import "github.com/pthm-cable/circlesim/components"

// MaxRadius returns the largest radius in circles, or 0 when empty.
// It is the reach used to navigate the x-sorted array.
func MaxRadius(circles []components.Circle) float32 {
	var r float32
	for i := range circles {
		if circles[i].Radius > r {
			r = circles[i].Radius
		}
	}
	return r
}

// FindCandidate returns the index of a circle in the x-sorted slice whose
// x-interval overlaps [minX, maxX], or -1 when none does.
//
// The search narrows [s, e) by comparing the query against each midpoint's
// reach interval [X-reach, X+reach]; reach must be >= every radius in the slice.
// Reach intervals are monotonic in both endpoints, so discarding a half never
// skips an overlap. Once a midpoint is within reach the neighbours are expanded
// right then left until a true interval overlap is found. Touching intervals
// do not overlap.
func FindCandidate(circles []components.Circle, reach, minX, maxX float32) int {
	s, e := 0, len(circles)
	mid := -1
	for s < e {
		m := s + (e-s)/2
		x := circles[m].X
		if maxX <= x-reach {
			e = m
		} else if minX >= x+reach {
			s = m + 1
		} else {
			mid = m
			break
		}
	}
	if mid < 0 {
		return -1
	}

	for j := mid; j < len(circles) && maxX > circles[j].X-reach; j++ {
		if overlapsX(circles[j], minX, maxX) {
			return j
		}
	}
	for j := mid - 1; j >= 0 && minX < circles[j].X+reach; j-- {
		if overlapsX(circles[j], minX, maxX) {
			return j
		}
	}
	return -1
}

// BruteForceCandidate scans every circle and returns the first x-overlap, or -1.
func BruteForceCandidate(circles []components.Circle, minX, maxX float32) int {
	for j := range circles {
		if overlapsX(circles[j], minX, maxX) {
			return j
		}
	}
	return -1
}

func overlapsX(c components.Circle, minX, maxX float32) bool {
	return maxX > c.MinX() && minX < c.MaxX()
}
