package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/agent"
	"steer-scene/internal/geom"
)

// MeshKind names a primitive the renderer knows how to draw.
type MeshKind string

const (
	MeshSphere MeshKind = "sphere"
	MeshCube   MeshKind = "cube"
	MeshCone   MeshKind = "cone"
)

// Proxy is the visual stand-in for an entity. Its matrix is written by the entity manager's sync step;
// Offset is a group offset applied on top (decorative bobbing) that never feeds back into the entity.
type Proxy struct {
	Name    string
	Mesh    MeshKind
	Size    float32
	Color   [4]uint8
	Visible bool
	Offset  mgl32.Vec3

	matrix mgl32.Mat4
}

// NewProxy returns a visible proxy with an identity matrix.
func NewProxy(name string, mesh MeshKind, size float32, color [4]uint8) *Proxy {
	return &Proxy{Name: name, Mesh: mesh, Size: size, Color: color, Visible: true, matrix: mgl32.Ident4()}
}

// SetMatrix stores the synced transform.
func (p *Proxy) SetMatrix(m mgl32.Mat4) { p.matrix = m }

// Matrix returns the last synced transform, without the group offset.
func (p *Proxy) Matrix() mgl32.Mat4 { return p.matrix }

// RenderMatrix is the transform to draw with: the group offset applied in world space over the synced matrix.
func (p *Proxy) RenderMatrix() mgl32.Mat4 {
	if p.Offset == (mgl32.Vec3{}) {
		return p.matrix
	}
	return mgl32.Translate3D(p.Offset.X(), p.Offset.Y(), p.Offset.Z()).Mul4(p.matrix)
}

// BoundingRadius is the radius of a sphere around the entity origin that encloses the mesh under scale.
// Cones are 0.2*size wide and centered on their height.
func (p *Proxy) BoundingRadius(scale mgl32.Vec3) float32 {
	var r float32
	switch p.Mesh {
	case MeshCube:
		r = p.Size * math32.Sqrt(3) / 2
	case MeshCone:
		r = p.Size * math32.Hypot(0.5, 0.2)
	default:
		r = p.Size
	}
	s := math32.Max(math32.Abs(scale.X()), math32.Max(math32.Abs(scale.Y()), math32.Abs(scale.Z())))
	return r * s
}

// bounds returns a pickable sphere that follows e.
func bounds(e *agent.Entity, p *Proxy) *geom.Sphere {
	return &geom.Sphere{Label: p.Name, Center: &e.Position, Radius: p.BoundingRadius(e.Scale)}
}
