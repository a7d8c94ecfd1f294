// Package steering implements composable steering behaviors and the manager that sums them into one
// force per vehicle per tick.
package steering

import (
	"github.com/go-gl/mathgl/mgl32"

	"steer-scene/internal/agent"
)

// Manager combines behaviors by prioritized accumulation: weighted forces are added in insertion order until
// the running total reaches the vehicle's MaxForce; the behavior that crosses the limit is truncated and the
// rest are skipped.
type Manager struct {
	behaviors []Behavior
}

var _ agent.SteeringComputer = (*Manager)(nil)

func NewManager(behaviors ...Behavior) *Manager {
	m := &Manager{}
	for _, b := range behaviors {
		m.Add(b)
	}
	return m
}

// Add appends b at the lowest priority.
func (m *Manager) Add(b Behavior) {
	if b == nil {
		return
	}
	m.behaviors = append(m.behaviors, b)
}

// Remove drops b and reports whether it was present.
func (m *Manager) Remove(b Behavior) bool {
	for i, cur := range m.behaviors {
		if cur == b {
			m.behaviors = append(m.behaviors[:i], m.behaviors[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every behavior.
func (m *Manager) Clear() { m.behaviors = nil }

func (m *Manager) Behaviors() []Behavior { return m.behaviors }

func (m *Manager) ComputeSteering(v *agent.Vehicle, dt float32) mgl32.Vec3 {
	var total mgl32.Vec3
	for _, b := range m.behaviors {
		if !b.Active() {
			continue
		}
		f := b.Calculate(v, dt).Mul(b.Weight())
		var ok bool
		total, ok = accumulate(total, f, v.MaxForce)
		if !ok {
			break
		}
	}
	return total
}

// accumulate adds f to total without letting |total| exceed maxForce. It reports false once the budget is spent.
func accumulate(total, f mgl32.Vec3, maxForce float32) (mgl32.Vec3, bool) {
	remaining := maxForce - total.Len()
	if remaining <= 0 {
		return total, false
	}
	if add := f.Len(); add > remaining {
		f = f.Mul(remaining / add)
		return total.Add(f), false
	}
	return total.Add(f), true
}
