package tiling

import "math"

// MaxDistanceInContentSpace is the margin, in content pixels, by which the
// viewport is inflated to find the tiles that receive live priorities.
const MaxDistanceInContentSpace = 4096

// Resolution classifies what a tiling is intended for. Schedulers use it to
// break ties between tiles of otherwise equal priority.
type Resolution uint8

const (
	// NonIdealResolution marks a tiling kept around only as a fallback.
	NonIdealResolution Resolution = iota

	// HighResolution marks the tiling matching the ideal contents scale.
	HighResolution

	// LowResolution marks the coarse tiling painted first while scrolling.
	LowResolution
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case HighResolution:
		return "high"
	case LowResolution:
		return "low"
	case NonIdealResolution:
		return "non-ideal"
	default:
		return "unknown"
	}
}

// Tree identifies the render-tree role a priority applies to.
type Tree uint8

const (
	// ActiveTree is the committed tree currently being drawn.
	ActiveTree Tree = iota

	// PendingTree is the provisional tree being prepared for activation.
	PendingTree

	numTrees
)

// String returns the tree name.
func (t Tree) String() string {
	switch t {
	case ActiveTree:
		return "active"
	case PendingTree:
		return "pending"
	default:
		return "unknown"
	}
}

// Priority is the scheduling priority of a tile for one tree.
//
// The zero value is not a valid live priority; use NotLive for tiles that
// are not tracked.
type Priority struct {
	Resolution Resolution

	// TimeToVisible is the time in seconds until the tile is expected to
	// become visible. +Inf when it is not moving towards the viewport.
	TimeToVisible float64

	// DistanceToVisible is the Manhattan distance in screen pixels from
	// the tile to the viewport. Zero when the tile is visible.
	DistanceToVisible float64

	// Live is set on priorities computed by a priority update.
	Live bool
}

// NotLive returns the sentinel priority for tiles outside the tracked
// region.
func NotLive() Priority {
	return Priority{
		Resolution:        NonIdealResolution,
		TimeToVisible:     math.Inf(1),
		DistanceToVisible: math.Inf(1),
	}
}

// NewPriority returns a live priority.
func NewPriority(res Resolution, timeToVisible, distanceToVisible float64) Priority {
	return Priority{
		Resolution:        res,
		TimeToVisible:     timeToVisible,
		DistanceToVisible: distanceToVisible,
		Live:              true,
	}
}

// ManhattanDistance returns the sum of the horizontal and vertical gaps
// between a and b. It is zero when the rectangles touch or overlap.
func ManhattanDistance(a, b RectF) float64 {
	x := math.Max(0, math.Max(b.X-a.Right(), a.X-b.Right()))
	y := math.Max(0, math.Max(b.Y-a.Bottom(), a.Y-b.Bottom()))
	return x + y
}

// TimeForBoundsToIntersect extrapolates the motion of a rectangle from
// previous to current, which happened over timeDelta seconds, and returns
// the time in seconds from now until it first overlaps target.
//
// Returns 0 if current already overlaps target and +Inf if the rectangle
// never reaches target along its current path.
func TimeForBoundsToIntersect(previous, current RectF, timeDelta float64, target RectF) float64 {
	if current.Intersects(target) {
		return 0
	}
	if timeDelta <= 0 || current.IsEmpty() || target.IsEmpty() {
		return math.Inf(1)
	}

	lo, hi := 0.0, math.Inf(1)
	constrain := func(start, velocity, limit float64, below bool) {
		// Solve start + velocity*t < limit (below) or > limit (!below).
		if velocity == 0 {
			if (below && start >= limit) || (!below && start <= limit) {
				hi = math.Inf(-1)
			}
			return
		}
		t := (limit - start) / velocity
		if (velocity > 0) == below {
			hi = math.Min(hi, t)
		} else {
			lo = math.Max(lo, t)
		}
	}

	vLeft := (current.X - previous.X) / timeDelta
	vRight := (current.Right() - previous.Right()) / timeDelta
	vTop := (current.Y - previous.Y) / timeDelta
	vBottom := (current.Bottom() - previous.Bottom()) / timeDelta

	constrain(current.X, vLeft, target.Right(), true)
	constrain(current.Right(), vRight, target.X, false)
	constrain(current.Y, vTop, target.Bottom(), true)
	constrain(current.Bottom(), vBottom, target.Y, false)

	if lo >= hi {
		return math.Inf(1)
	}
	return lo
}
