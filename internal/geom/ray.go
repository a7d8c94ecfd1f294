// Package geom holds the ray casting used to turn pointer input into world positions.
package geom

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// epsilon guards against rays parallel to a plane and against hits behind the origin.
const epsilon = 1e-6

// Ray is a half-line from Origin along Direction (unit length).
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay normalizes dir. A zero direction yields a zero ray that never hits anything.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if dir.Len() < epsilon {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Pickable is anything a ray can hit. Name tags the object so callers can filter hits
// (e.g. only the ground plane may move the target).
type Pickable interface {
	Name() string
	IntersectRay(r Ray) (distance float32, ok bool)
}

// Intersection is one hit: the object, the world-space point and its distance from the ray origin.
type Intersection struct {
	Object   Pickable
	Point    mgl32.Vec3
	Distance float32
}

// Raycaster intersects a ray with a list of pickables. Near and Far clip the accepted distances;
// Far 0 means unbounded.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// IntersectObjects returns every hit sorted by ascending distance.
func (rc *Raycaster) IntersectObjects(objects []Pickable) []Intersection {
	var hits []Intersection
	for _, obj := range objects {
		d, ok := obj.IntersectRay(rc.Ray)
		if !ok || d < rc.Near {
			continue
		}
		if rc.Far > 0 && d > rc.Far {
			continue
		}
		hits = append(hits, Intersection{Object: obj, Point: rc.Ray.At(d), Distance: d})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Plane is a square patch of an axis-aligned horizontal plane at height Y, centered on Center (XZ),
// with side length Size. Size 0 means infinite.
type Plane struct {
	Label  string
	Y      float32
	Center [2]float32
	Size   float32
}

func (p *Plane) Name() string { return p.Label }

// IntersectRay hits the plane from either side; rays parallel to it miss.
func (p *Plane) IntersectRay(r Ray) (float32, bool) {
	denom := r.Direction.Y()
	if math32.Abs(denom) < epsilon {
		return 0, false
	}
	t := (p.Y - r.Origin.Y()) / denom
	if t < epsilon {
		return 0, false
	}
	if p.Size > 0 {
		hit := r.At(t)
		half := p.Size / 2
		if math32.Abs(hit.X()-p.Center[0]) > half || math32.Abs(hit.Z()-p.Center[1]) > half {
			return 0, false
		}
	}
	return t, true
}

// Sphere is a pickable ball. Center is a pointer so bounds of moving entities follow them.
type Sphere struct {
	Label  string
	Center *mgl32.Vec3
	Radius float32
}

func (s *Sphere) Name() string { return s.Label }

// IntersectRay returns the nearest hit in front of the ray origin; an origin inside the sphere hits the far side.
func (s *Sphere) IntersectRay(r Ray) (float32, bool) {
	oc := r.Origin.Sub(*s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < epsilon {
		t = -b + sq
	}
	if t < epsilon {
		return 0, false
	}
	return t, true
}
