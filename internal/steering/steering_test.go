package steering

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steer-scene/internal/agent"
)

const dt = float32(1.0 / 60)

func newVehicle(maxSpeed, maxForce float32, behaviors ...Behavior) *agent.Vehicle {
	v := agent.NewVehicle("vehicle", maxSpeed, maxForce, 1)
	v.Steering = NewManager(behaviors...)
	return v
}

func TestPath_CopiesWaypoints(t *testing.T) {
	wp := []mgl32.Vec3{{1, 0, 0}, {2, 0, 0}}
	p := NewPath(true, wp...)
	wp[0] = mgl32.Vec3{9, 9, 9}
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, p.Current())

	out := p.Waypoints()
	out[1] = mgl32.Vec3{}
	p.Advance()
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, p.Current())
}

func TestPath_LoopedCursor(t *testing.T) {
	p := NewPath(true, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0})
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, p.Previous(), "looped path wraps backwards at 0")
	for i := 1; i <= 7; i++ {
		p.Advance()
		assert.Equal(t, i%3, p.Index())
		assert.False(t, p.Finished())
	}
}

func TestPath_OpenCursor(t *testing.T) {
	p := NewPath(false, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, p.Previous())
	assert.False(t, p.Finished())
	p.Advance()
	assert.True(t, p.Finished())
	p.Advance()
	assert.Equal(t, 1, p.Index())
	p.Reset()
	assert.Equal(t, 0, p.Index())

	empty := NewPath(true)
	empty.Advance()
	assert.Equal(t, mgl32.Vec3{}, empty.Current())
	assert.False(t, empty.Finished())
}

func TestSeek_Force(t *testing.T) {
	v := agent.NewVehicle("v", 2, 10, 1)
	v.Velocity = mgl32.Vec3{0, 0, 1}
	f := NewSeek(mgl32.Vec3{5, 0, 0}).Calculate(v, dt)
	assert.True(t, f.ApproxEqual(mgl32.Vec3{2, 0, -1}))
}

func TestArrive_ConvergesWithoutOvershoot(t *testing.T) {
	target := mgl32.Vec3{10, 0, 0}
	v := newVehicle(5, 50, NewArrive(&target, 8, 0))

	prev := v.Position.Sub(target).Len()
	for i := 0; i < 3600; i++ {
		v.Update(dt)
		d := v.Position.Sub(target).Len()
		require.LessOrEqual(t, d, prev+1e-5, "distance grew at tick %d", i)
		require.LessOrEqual(t, v.Position.X(), target.X()+1e-4, "overshoot at tick %d", i)
		prev = d
	}
	assert.Less(t, prev, float32(0.05))
}

func TestArrive_FollowsMovingTarget(t *testing.T) {
	target := agent.NewEntity("target")
	target.Position = mgl32.Vec3{3, 0, 0}
	v := newVehicle(5, 50, NewArrive(&target.Position, 1, 0))

	for i := 0; i < 600; i++ {
		v.Update(dt)
	}
	require.Less(t, v.Position.Sub(target.Position).Len(), float32(0.1))

	target.Position = mgl32.Vec3{0, 0, -4}
	for i := 0; i < 900; i++ {
		v.Update(dt)
	}
	assert.Less(t, v.Position.Sub(target.Position).Len(), float32(0.1))
}

func TestArrive_InsideToleranceBrakes(t *testing.T) {
	target := mgl32.Vec3{0.1, 0, 0}
	v := agent.NewVehicle("v", 5, 50, 1)
	v.Velocity = mgl32.Vec3{1, 0, 0}
	f := NewArrive(&target, 1, 0.5).Calculate(v, dt)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, f)

	assert.Equal(t, mgl32.Vec3{}, (&Arrive{}).Calculate(v, dt))
}

func TestFollowPath_LoopCyclesInOrder(t *testing.T) {
	path := NewPath(true,
		mgl32.Vec3{-5, 0, -5},
		mgl32.Vec3{5, 0, -5},
		mgl32.Vec3{5, 0, 5},
		mgl32.Vec3{-5, 0, 5},
	)
	v := newVehicle(2, 20, NewFollowPath(path, 0.5))
	v.Position = mgl32.Vec3{-4, 0, -4}

	k := path.Len()
	changes := 0
	last := path.Index()
	for i := 0; i < 10000; i++ {
		v.Update(dt)
		if idx := path.Index(); idx != last {
			require.Equal(t, (last+1)%k, idx, "tick %d", i)
			last = idx
			changes++
		}
	}
	assert.GreaterOrEqual(t, changes, 2*k)
}

func TestFollowPath_OpenPathArrivesAtEnd(t *testing.T) {
	path := NewPath(false, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{2, 0, 2})
	v := newVehicle(2, 20, NewFollowPath(path, 0.5))

	for i := 0; i < 3000; i++ {
		v.Update(dt)
	}
	assert.True(t, path.Finished())
	assert.Less(t, v.Position.Sub(mgl32.Vec3{2, 0, 2}).Len(), float32(0.05))
	assert.Less(t, v.Speed(), float32(0.05))
}

func TestOnPath_PullsBackToSegment(t *testing.T) {
	path := NewPath(true, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 0, 0})
	path.Advance()
	on := NewOnPath(path, 0.2, 1)

	v := agent.NewVehicle("v", 2, 20, 1)
	v.Position = mgl32.Vec3{5, 0, 3}
	f := on.Calculate(v, dt)
	assert.Less(t, f.Z(), float32(0), "force points back toward the segment")

	v.Position = mgl32.Vec3{5, 0, 0.1}
	assert.Equal(t, mgl32.Vec3{}, on.Calculate(v, dt))
}

func TestClosestPointOnSegment(t *testing.T) {
	a, b := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 0, 0}
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, ClosestPointOnSegment(a, b, mgl32.Vec3{2, 0, 3}))
	assert.Equal(t, a, ClosestPointOnSegment(a, b, mgl32.Vec3{-3, 0, 1}))
	assert.Equal(t, b, ClosestPointOnSegment(a, b, mgl32.Vec3{9, 0, 0}))
	assert.Equal(t, a, ClosestPointOnSegment(a, a, mgl32.Vec3{1, 1, 1}))
}

type fixed struct {
	Base
	force mgl32.Vec3
	calls int
}

func (f *fixed) Calculate(*agent.Vehicle, float32) mgl32.Vec3 {
	f.calls++
	return f.force
}

func TestManager_PrioritizedTruncation(t *testing.T) {
	first := &fixed{force: mgl32.Vec3{6, 0, 0}}
	second := &fixed{force: mgl32.Vec3{0, 0, 8}}
	third := &fixed{force: mgl32.Vec3{1, 0, 0}}
	m := NewManager(first, second, third)
	v := agent.NewVehicle("v", 1, 10, 1)

	// the second force is cut to the 4 units of magnitude left in the budget
	f := m.ComputeSteering(v, dt)
	assert.InDelta(t, 6, f.X(), 1e-4)
	assert.InDelta(t, 4, f.Z(), 1e-4)
	assert.Equal(t, 0, third.calls, "budget spent before the third behavior")
}

func TestManager_WeightsAndActive(t *testing.T) {
	a := &fixed{force: mgl32.Vec3{1, 0, 0}}
	a.SetWeight(3)
	b := &fixed{force: mgl32.Vec3{0, 1, 0}}
	b.SetActive(false)
	m := NewManager(a, b)
	v := agent.NewVehicle("v", 1, 100, 1)

	assert.Equal(t, mgl32.Vec3{3, 0, 0}, m.ComputeSteering(v, dt))
	assert.Equal(t, 0, b.calls)

	b.SetActive(true)
	assert.True(t, m.Remove(a))
	assert.False(t, m.Remove(a))
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.ComputeSteering(v, dt))

	m.Clear()
	assert.Empty(t, m.Behaviors())
	assert.Equal(t, mgl32.Vec3{}, m.ComputeSteering(v, dt))
}
