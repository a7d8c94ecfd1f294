// Package camera holds the perspective viewpoint and the edge-band pan controller that moves it.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/geom"
)

// Camera is a perspective camera with a fixed view direction. Position may change (pans) but the
// direction set at construction does not. View/projection matrices are cached and only recomputed by
// UpdateProjectionMatrix, so anything that moves the camera must call it before the next pick or render.
type Camera struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Up        mgl32.Vec3
	Fov       float32 // vertical, degrees
	Aspect    float32
	Near      float32
	Far       float32

	view       mgl32.Mat4
	projection mgl32.Mat4
	inverse    mgl32.Mat4 // (projection * view)^-1 for unprojecting pointer coordinates
	revision   uint64
}

// New returns a camera at position looking toward lookAt. Matrices are computed immediately.
func New(position, lookAt, up mgl32.Vec3, fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Position:  position,
		Direction: lookAt.Sub(position).Normalize(),
		Up:        up,
		Fov:       fov,
		Aspect:    aspect,
		Near:      near,
		Far:       far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the view, projection and inverse matrices from the current fields.
func (c *Camera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.view = mgl32.LookAtV(c.Position, c.Target(), c.Up)
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
	c.inverse = c.projection.Mul4(c.view).Inv()
	c.revision++
}

// SetAspect updates the aspect ratio (viewport resize) and refreshes the matrices.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// Target is the point one unit in front of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Direction)
}

func (c *Camera) ViewMatrix() mgl32.Mat4       { return c.view }
func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// Revision counts matrix refreshes. Renderers compare it to skip rebuilding their own camera state.
func (c *Camera) Revision() uint64 { return c.revision }

// Unproject maps a normalized device coordinate (x, y in [-1,1], z in [-1,1]) to world space
// using the cached matrices.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	v := c.inverse.Mul4x1(ndc.Vec4(1))
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

// Ray returns the pick ray through a normalized pointer coordinate (x right, y up, both in [-1,1]).
func (c *Camera) Ray(pointer mgl32.Vec2) geom.Ray {
	near := c.Unproject(mgl32.Vec3{pointer.X(), pointer.Y(), -1})
	far := c.Unproject(mgl32.Vec3{pointer.X(), pointer.Y(), 1})
	return geom.NewRay(near, far.Sub(near))
}

// PointerToNDC converts pixel coordinates (origin top-left) into normalized device coordinates.
func PointerToNDC(px, py, width, height float32) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{px/width*2 - 1, -(py/height)*2 + 1}
}
