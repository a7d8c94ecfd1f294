package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEases_Endpoints(t *testing.T) {
	for name, e := range eases {
		assert.InDelta(t, 0, e(0), 1e-6, name)
		assert.InDelta(t, 1, e(1), 1e-6, name)
	}
	_, ok := ByName("bounce.out")
	assert.False(t, ok)
	def, ok := ByName("")
	require.True(t, ok)
	assert.InDelta(t, Power1Out(0.3), def(0.3), 1e-6)
}

func TestScheduler_LinearTween(t *testing.T) {
	s := NewScheduler()
	x := float32(0)
	updates, completes := 0, 0
	tw := s.To(&x, 10, 2, WithEase(Linear),
		OnUpdate(func() { updates++ }),
		OnComplete(func() { completes++ }))

	s.Advance(1)
	assert.InDelta(t, 5, x, 1e-5)
	assert.True(t, s.IsTweening(&x))

	s.Advance(2.5)
	assert.Equal(t, float32(10), x, "final value is exact")
	assert.True(t, tw.Done())
	assert.Equal(t, 1, completes)
	assert.Equal(t, 2, updates)
	assert.Equal(t, 0, s.Active())

	s.Advance(3)
	assert.Equal(t, 1, completes, "retired tweens never run again")
}

func TestScheduler_StartsAtCurrentTime(t *testing.T) {
	s := NewScheduler()
	s.Advance(10)
	x := float32(4)
	s.To(&x, 8, 1, WithEase(Linear))

	s.Advance(10.5)
	assert.InDelta(t, 6, x, 1e-5)
	s.Advance(11)
	assert.Equal(t, float32(8), x)
}

func TestScheduler_KeepsResolutionAtLargeTimes(t *testing.T) {
	s := NewScheduler()
	base := float64(7 * 24 * 3600)
	s.Advance(base)
	x := float32(0)
	tw := s.To(&x, 10, 2, WithEase(Linear))

	s.Advance(base + 1.0/60)
	assert.InDelta(t, 10.0/120, x, 1e-4)
	s.Advance(base + 1)
	assert.InDelta(t, 5, x, 1e-4)
	s.Advance(base + 2)
	assert.Equal(t, float32(10), x)
	assert.True(t, tw.Done())
}

func TestScheduler_LastWriteWins(t *testing.T) {
	s := NewScheduler()
	x := float32(0)
	firstDone := false
	first := s.To(&x, 10, 2, WithEase(Linear), OnComplete(func() { firstDone = true }))
	s.Advance(1)
	require.InDelta(t, 5, x, 1e-5)

	second := s.To(&x, -5, 1, WithEase(Linear))
	assert.True(t, first.Killed())
	assert.Equal(t, 1, s.Active())

	s.Advance(1.5)
	assert.InDelta(t, 0, x, 1e-5, "second tween starts from the interpolated value")
	s.Advance(2)
	assert.Equal(t, float32(-5), x)
	assert.True(t, second.Done())
	assert.False(t, firstDone)
}

func TestScheduler_Relative(t *testing.T) {
	s := NewScheduler()
	x := float32(3)
	tw := s.To(&x, 5, 1, Relative())
	assert.Equal(t, float32(8), tw.End())
	s.Advance(1)
	assert.Equal(t, float32(8), x)
}

func TestScheduler_ZeroDurationAppliesImmediately(t *testing.T) {
	s := NewScheduler()
	x := float32(1)
	done := false
	tw := s.To(&x, 2, 0, OnComplete(func() { done = true }))
	assert.Equal(t, float32(2), x)
	assert.True(t, done)
	assert.True(t, tw.Done())
	assert.Equal(t, 0, s.Active())
}

func TestScheduler_IndependentTargets(t *testing.T) {
	s := NewScheduler()
	a, b := float32(0), float32(0)
	s.To(&a, 1, 1, WithEase(Linear))
	s.To(&b, 2, 2, WithEase(Linear))
	s.Advance(1)
	assert.Equal(t, float32(1), a)
	assert.InDelta(t, 1, b, 1e-5)
	assert.False(t, s.IsTweening(&a))
	assert.True(t, s.IsTweening(&b))
}

func TestScheduler_ChainFromCallback(t *testing.T) {
	s := NewScheduler()
	x := float32(0)
	s.To(&x, 1, 1, WithEase(Linear), OnComplete(func() {
		s.To(&x, 3, 1, WithEase(Linear))
	}))
	s.Advance(1)
	assert.Equal(t, 1, s.Active())
	s.Advance(2)
	assert.Equal(t, float32(3), x)
}
