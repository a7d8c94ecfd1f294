package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlane_IntersectRay(t *testing.T) {
	ground := &Plane{Label: "plane", Size: 10}

	d, ok := ground.IntersectRay(NewRay(mgl32.Vec3{1, 10, 2}, mgl32.Vec3{0, -1, 0}))
	require.True(t, ok)
	assert.InDelta(t, 10, d, 1e-5)

	_, ok = ground.IntersectRay(NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 0, 0}))
	assert.False(t, ok, "parallel ray misses")

	_, ok = ground.IntersectRay(NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, 1, 0}))
	assert.False(t, ok, "plane behind the origin misses")

	_, ok = ground.IntersectRay(NewRay(mgl32.Vec3{20, 10, 0}, mgl32.Vec3{0, -1, 0}))
	assert.False(t, ok, "outside the finite patch")

	infinite := &Plane{Label: "plane"}
	_, ok = infinite.IntersectRay(NewRay(mgl32.Vec3{2000, 10, 0}, mgl32.Vec3{0, -1, 0}))
	assert.True(t, ok)
}

func TestSphere_IntersectRay(t *testing.T) {
	center := mgl32.Vec3{0, 0, -10}
	s := &Sphere{Label: "ball", Center: &center, Radius: 2}

	d, ok := s.IntersectRay(NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}))
	require.True(t, ok)
	assert.InDelta(t, 8, d, 1e-5)

	_, ok = s.IntersectRay(NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}))
	assert.False(t, ok)

	d, ok = s.IntersectRay(NewRay(mgl32.Vec3{0, 0, -10}, mgl32.Vec3{0, 0, -1}))
	require.True(t, ok, "origin inside hits the far side")
	assert.InDelta(t, 2, d, 1e-5)

	center = mgl32.Vec3{0, 5, -10}
	_, ok = s.IntersectRay(NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}))
	assert.False(t, ok, "sphere follows its center pointer")
}

func TestRaycaster_SortsByDistance(t *testing.T) {
	ballCenter := mgl32.Vec3{0, 1, 0}
	objects := []Pickable{
		&Plane{Label: "plane", Size: 100},
		&Sphere{Label: "ball", Center: &ballCenter, Radius: 1},
	}
	rc := Raycaster{Ray: NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0})}

	hits := rc.IntersectObjects(objects)
	require.Len(t, hits, 2)
	assert.Equal(t, "ball", hits[0].Object.Name())
	assert.InDelta(t, 8, hits[0].Distance, 1e-5)
	assert.Equal(t, "plane", hits[1].Object.Name())
	assert.InDelta(t, 0, hits[1].Point.Y(), 1e-5)

	rc.Far = 9
	hits = rc.IntersectObjects(objects)
	require.Len(t, hits, 1)
	assert.Equal(t, "ball", hits[0].Object.Name())
}

func TestNewRay_ZeroDirection(t *testing.T) {
	r := NewRay(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{})
	_, ok := (&Plane{Label: "plane"}).IntersectRay(r)
	assert.False(t, ok)
}
