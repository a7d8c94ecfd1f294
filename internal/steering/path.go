package steering

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Path is an ordered list of waypoints with a cursor. Waypoints are copied on construction and never change;
// only the cursor moves.
type Path struct {
	Loop bool

	waypoints []mgl32.Vec3
	index     int
}

// NewPath copies waypoints into a new path with the cursor on the first one.
func NewPath(loop bool, waypoints ...mgl32.Vec3) *Path {
	wp := make([]mgl32.Vec3, len(waypoints))
	copy(wp, waypoints)
	return &Path{Loop: loop, waypoints: wp}
}

func (p *Path) Len() int { return len(p.waypoints) }

// Index returns the cursor position.
func (p *Path) Index() int { return p.index }

// Waypoints returns a copy of the waypoints.
func (p *Path) Waypoints() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.waypoints))
	copy(out, p.waypoints)
	return out
}

// Current returns the waypoint under the cursor. An empty path returns the origin.
func (p *Path) Current() mgl32.Vec3 {
	if len(p.waypoints) == 0 {
		return mgl32.Vec3{}
	}
	return p.waypoints[p.index]
}

// Previous returns the waypoint before the cursor: the last one when a looped path is at its start,
// the first one when an open path is.
func (p *Path) Previous() mgl32.Vec3 {
	n := len(p.waypoints)
	switch {
	case n == 0:
		return mgl32.Vec3{}
	case p.index > 0:
		return p.waypoints[p.index-1]
	case p.Loop:
		return p.waypoints[n-1]
	default:
		return p.waypoints[0]
	}
}

// Advance moves the cursor to the next waypoint. A looped path wraps to 0; an open path stays on its last waypoint.
func (p *Path) Advance() {
	n := len(p.waypoints)
	if n == 0 {
		return
	}
	p.index++
	if p.index == n {
		if p.Loop {
			p.index = 0
		} else {
			p.index = n - 1
		}
	}
}

// Finished reports whether an open path has reached its last waypoint. Looped paths never finish.
func (p *Path) Finished() bool {
	return !p.Loop && len(p.waypoints) > 0 && p.index == len(p.waypoints)-1
}

// Reset puts the cursor back on the first waypoint.
func (p *Path) Reset() { p.index = 0 }
