// Package selection turns a click into a new target position by ray casting against the scene's ground plane.
package selection

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/agent"
	"steer-scene/internal/camera"
	"steer-scene/internal/geom"
)

var (
	// ErrNoGroundHit means the pick ray hit nothing named as the ground plane.
	ErrNoGroundHit = errors.New("no ground plane hit")
	// ErrOutOfRange means the ground hit lies outside the accepted X range.
	ErrOutOfRange = errors.New("click outside valid range")
)

// Settings names the ground plane and bounds the accepted hits.
type Settings struct {
	GroundName string
	GroundY    float32
	MinX       float32
	MaxX       float32
}

// Selector moves a target entity to where clicks land on the ground plane.
type Selector struct {
	cam      *camera.Camera
	target   *agent.Entity
	settings Settings
	objects  []geom.Pickable
}

// New returns a selector that casts from cam and moves target. objects are every pickable in the scene,
// ground plane included; hits on anything not named settings.GroundName never move the target.
func New(cam *camera.Camera, target *agent.Entity, settings Settings, objects ...geom.Pickable) *Selector {
	return &Selector{cam: cam, target: target, settings: settings, objects: objects}
}

// Add registers another pickable object.
func (s *Selector) Add(p geom.Pickable) {
	s.objects = append(s.objects, p)
}

// Pick returns the first ground-plane hit along the ray through ndc, ignoring the range check.
func (s *Selector) Pick(ndc mgl32.Vec2) (geom.Intersection, error) {
	rc := geom.Raycaster{Ray: s.cam.Ray(ndc), Near: 0, Far: 0}
	for _, hit := range rc.IntersectObjects(s.objects) {
		if hit.Object.Name() == s.settings.GroundName {
			return hit, nil
		}
	}
	return geom.Intersection{}, ErrNoGroundHit
}

// Select picks the ground under ndc and, if its X lies within [MinX, MaxX], moves the target there at
// ground height. It returns the new target position. On any error the target is left untouched.
func (s *Selector) Select(ndc mgl32.Vec2) (mgl32.Vec3, error) {
	hit, err := s.Pick(ndc)
	if err != nil {
		return s.target.Position, err
	}
	x, z := hit.Point.X(), hit.Point.Z()
	if x < s.settings.MinX || x > s.settings.MaxX {
		return s.target.Position, fmt.Errorf("%w: x=%.3f not in [%.3f, %.3f]", ErrOutOfRange, x, s.settings.MinX, s.settings.MaxX)
	}
	s.target.Position = mgl32.Vec3{x, s.settings.GroundY, z}
	return s.target.Position, nil
}
