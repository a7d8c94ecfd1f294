package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steer-scene/internal/config"
	"steer-scene/internal/geom"
)

func TestBuild_Arrive(t *testing.T) {
	s, err := Build(config.Default())
	require.NoError(t, err)

	require.NotNil(t, s.Target)
	require.NotNil(t, s.Selector)
	assert.Nil(t, s.Path)
	assert.Nil(t, s.PathLine)

	assert.Equal(t, "vehicle", s.Vehicle.Name)
	assert.Equal(t, mgl32.Vec3{-3, 0, -3}, s.Vehicle.Position)
	assert.Equal(t, mgl32.Vec3{0.15, 0.15, 0.15}, s.Vehicle.Scale)
	assert.Equal(t, float32(500), s.Vehicle.MaxSpeed)
	assert.Equal(t, float32(500), s.Vehicle.MaxForce)
	assert.Equal(t, float32(0.1), s.Vehicle.Mass)
	assert.Len(t, s.Steering.Behaviors(), 1)

	assert.Equal(t, 2, s.Entities.Len())
	assert.Len(t, s.Proxies(), 2)
	assert.Equal(t, MeshCube, s.TargetProxy.Mesh)
	assert.Equal(t, [4]uint8{0xFF, 0xEA, 0x00, 0xFF}, s.TargetProxy.Color)

	require.Len(t, s.Pickables(), 4)
	assert.Equal(t, "plane", s.Pickables()[0].Name())
	assert.Equal(t, "backdrop", s.Pickables()[1].Name())
	assert.Equal(t, "vehicle", s.Pickables()[2].Name())
	assert.Equal(t, "target", s.Pickables()[3].Name())
	require.Len(t, s.Lights, 2)
	assert.Equal(t, mgl32.Vec3{0.25, 2, 2.25}, s.Lights[1].Position)
}

func TestBuild_ProxiesSyncedAtBuild(t *testing.T) {
	s, err := Build(config.Default())
	require.NoError(t, err)
	assert.Equal(t, s.Vehicle.WorldMatrix(), s.VehicleProxy.Matrix())
	assert.Equal(t, s.Target.WorldMatrix(), s.TargetProxy.Matrix())
}

func TestBuild_FollowPath(t *testing.T) {
	cfg := config.Default()
	cfg.Variant = config.VariantFollowPath
	cfg.Agent.Mesh = "cone"
	cfg.Agent.MaxSpeed = 2

	s, err := Build(cfg)
	require.NoError(t, err)

	assert.Nil(t, s.Target)
	assert.Nil(t, s.Selector)
	require.NotNil(t, s.Path)
	assert.Equal(t, 8, s.Path.Len())
	assert.True(t, s.PathLine.Loop)
	assert.Len(t, s.PathLine.Points, 8)
	assert.Equal(t, s.Path.Current(), s.Vehicle.Position, "vehicle starts on the first waypoint")
	assert.Len(t, s.Steering.Behaviors(), 2)
	assert.Equal(t, 1, s.Entities.Len())
	assert.Len(t, s.Proxies(), 1)
	assert.Equal(t, MeshCone, s.VehicleProxy.Mesh)

	for i := 0; i < 600; i++ {
		s.Entities.Update(1.0 / 60)
	}
	assert.NotEqual(t, 0, s.Path.Index(), "vehicle makes progress along the path")
}

func TestBuild_RejectsInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Variant = "wander"
	_, err := Build(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = config.Default()
	cfg.Pan.Ease = "elastic.out"
	_, err = Build(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestProxy_RenderMatrix(t *testing.T) {
	p := NewProxy("p", MeshSphere, 1, [4]uint8{})
	p.SetMatrix(mgl32.Translate3D(1, 0, 2))
	assert.Equal(t, p.Matrix(), p.RenderMatrix())

	p.Offset = mgl32.Vec3{0, 0.05, 0}
	pos := p.RenderMatrix().Col(3).Vec3()
	assert.True(t, pos.ApproxEqual(mgl32.Vec3{1, 0.05, 2}))
	assert.True(t, p.Matrix().Col(3).Vec3().ApproxEqual(mgl32.Vec3{1, 0, 2}), "offset does not touch the synced matrix")
}

func TestBuild_ProxyBoundsArePickable(t *testing.T) {
	s, err := Build(config.Default())
	require.NoError(t, err)

	vb := s.Pickables()[2].(*geom.Sphere)
	assert.InDelta(t, 0.45, vb.Radius, 1e-6, "sphere of size 3 at scale 0.15")
	tb := s.Pickables()[3].(*geom.Sphere)
	assert.InDelta(t, 0.33*math32.Sqrt(3)/2, tb.Radius, 1e-6)

	// straight down through the target: the bounds are hit first, the ground still decides the pick
	s.Target.Position = mgl32.Vec3{2, 0, 1}
	ndc := projectToNDC(s, s.Target.Position)
	rc := geom.Raycaster{Ray: s.Camera.Ray(ndc)}
	hits := rc.IntersectObjects(s.Pickables())
	require.NotEmpty(t, hits)
	assert.Equal(t, "target", hits[0].Object.Name())

	got, err := s.Selector.Select(ndc)
	require.NoError(t, err)
	assert.InDelta(t, 2, got.X(), 1e-3)
	assert.InDelta(t, 1, got.Z(), 1e-3)
	assert.Equal(t, float32(0), got.Y())
}

func TestProxy_BoundingRadius(t *testing.T) {
	cone := NewProxy("c", MeshCone, 1, [4]uint8{})
	assert.InDelta(t, math32.Hypot(0.5, 0.2)*2, cone.BoundingRadius(mgl32.Vec3{1, 2, 1}), 1e-6)
	cube := NewProxy("b", MeshCube, 2, [4]uint8{})
	assert.InDelta(t, math32.Sqrt(3), cube.BoundingRadius(mgl32.Vec3{1, 1, 1}), 1e-6)
}

func projectToNDC(s *Scene, p mgl32.Vec3) mgl32.Vec2 {
	clip := s.Camera.ProjectionMatrix().Mul4(s.Camera.ViewMatrix()).Mul4x1(p.Vec4(1))
	return mgl32.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
}
