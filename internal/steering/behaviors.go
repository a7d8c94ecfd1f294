package steering

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/agent"
)

// Behavior computes one steering force for a vehicle. The manager scales it by Weight().
type Behavior interface {
	Calculate(v *agent.Vehicle, dt float32) mgl32.Vec3
	Weight() float32
	Active() bool
}

// Base carries the weight and active flag shared by every behavior. Embed it.
type Base struct {
	weight   float32
	disabled bool
}

func (b *Base) Weight() float32 {
	if b.weight == 0 {
		return 1
	}
	return b.weight
}

// SetWeight sets the multiplier applied to this behavior's force. 0 restores the default of 1.
func (b *Base) SetWeight(w float32) { b.weight = w }

func (b *Base) Active() bool { return !b.disabled }

func (b *Base) SetActive(active bool) { b.disabled = !active }

// seek returns the force that turns velocity toward full speed at target.
func seek(v *agent.Vehicle, target mgl32.Vec3) mgl32.Vec3 {
	to := target.Sub(v.Position)
	if to.Len() < 1e-6 {
		return v.Velocity.Mul(-1)
	}
	desired := to.Normalize().Mul(v.MaxSpeed)
	return desired.Sub(v.Velocity)
}

// arrive is seek with a desired speed proportional to distance, so the vehicle slows down on approach.
func arrive(v *agent.Vehicle, target mgl32.Vec3, deceleration, tolerance float32) mgl32.Vec3 {
	to := target.Sub(v.Position)
	dist := to.Len()
	var desired mgl32.Vec3
	if dist > tolerance && dist > 1e-6 {
		if deceleration <= 0 {
			deceleration = 1
		}
		speed := math32.Min(dist/deceleration, v.MaxSpeed)
		desired = to.Mul(speed / dist)
	}
	return desired.Sub(v.Velocity)
}

// Seek steers at full speed toward a fixed point.
type Seek struct {
	Base
	Target mgl32.Vec3
}

func NewSeek(target mgl32.Vec3) *Seek { return &Seek{Target: target} }

func (s *Seek) Calculate(v *agent.Vehicle, _ float32) mgl32.Vec3 { return seek(v, s.Target) }

// Arrive steers toward Target and decelerates to rest on it. Target is read every tick, so pointing it at an
// entity's Position follows the entity as it moves. Larger Deceleration means a slower, longer approach.
// Inside Tolerance the desired velocity is zero.
type Arrive struct {
	Base
	Target       *mgl32.Vec3
	Deceleration float32
	Tolerance    float32
}

func NewArrive(target *mgl32.Vec3, deceleration, tolerance float32) *Arrive {
	return &Arrive{Target: target, Deceleration: deceleration, Tolerance: tolerance}
}

func (a *Arrive) Calculate(v *agent.Vehicle, _ float32) mgl32.Vec3 {
	if a.Target == nil {
		return mgl32.Vec3{}
	}
	return arrive(v, *a.Target, a.Deceleration, a.Tolerance)
}

// FollowPath seeks the path's current waypoint and advances the cursor once the vehicle is within
// NextWaypointDistance. On the last waypoint of an open path it arrives instead of seeking.
type FollowPath struct {
	Base
	Path                 *Path
	NextWaypointDistance float32
	Deceleration         float32
}

func NewFollowPath(path *Path, nextWaypointDistance float32) *FollowPath {
	return &FollowPath{Path: path, NextWaypointDistance: nextWaypointDistance, Deceleration: 3}
}

func (f *FollowPath) Calculate(v *agent.Vehicle, _ float32) mgl32.Vec3 {
	if f.Path == nil || f.Path.Len() == 0 {
		return mgl32.Vec3{}
	}
	if !f.Path.Finished() && v.Position.Sub(f.Path.Current()).Len() < f.NextWaypointDistance {
		f.Path.Advance()
	}
	if f.Path.Finished() {
		return arrive(v, f.Path.Current(), f.Deceleration, 0)
	}
	return seek(v, f.Path.Current())
}

// OnPath keeps a vehicle near the active path segment. It predicts where the vehicle will be and, if that
// point strays more than Radius from the segment, seeks the closest point on it.
type OnPath struct {
	Base
	Path             *Path
	Radius           float32
	PredictionFactor float32
}

func NewOnPath(path *Path, radius, predictionFactor float32) *OnPath {
	return &OnPath{Path: path, Radius: radius, PredictionFactor: predictionFactor}
}

func (o *OnPath) Calculate(v *agent.Vehicle, _ float32) mgl32.Vec3 {
	if o.Path == nil || o.Path.Len() < 2 {
		return mgl32.Vec3{}
	}
	predicted := v.Position.Add(v.Velocity.Mul(o.PredictionFactor))
	closest := ClosestPointOnSegment(o.Path.Previous(), o.Path.Current(), predicted)
	if predicted.Sub(closest).Len() > o.Radius {
		return seek(v, closest)
	}
	return mgl32.Vec3{}
}

// ClosestPointOnSegment projects p onto the segment a-b.
func ClosestPointOnSegment(a, b, p mgl32.Vec3) mgl32.Vec3 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math32.Max(0, math32.Min(1, t))
	return a.Add(ab.Mul(t))
}
