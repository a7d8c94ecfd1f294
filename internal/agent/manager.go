package agent

import (
	"github.com/google/uuid"
)

// Updatable is anything the manager can step: a plain *Entity or a *Vehicle.
type Updatable interface {
	Base() *Entity
	Update(dt float32)
}

// Manager holds the world's entities and steps them once per tick. Order is preserved:
// entities update in the order they were added.
type Manager struct {
	entities []Updatable
	byID     map[uuid.UUID]Updatable
}

func NewManager() *Manager {
	return &Manager{byID: make(map[uuid.UUID]Updatable)}
}

// Add appends an entity. Adding the same entity twice is a no-op.
func (m *Manager) Add(e Updatable) {
	id := e.Base().ID
	if _, ok := m.byID[id]; ok {
		return
	}
	m.entities = append(m.entities, e)
	m.byID[id] = e
}

// Remove drops the entity with the given ID and reports whether it was present.
func (m *Manager) Remove(id uuid.UUID) bool {
	if _, ok := m.byID[id]; !ok {
		return false
	}
	delete(m.byID, id)
	for i, e := range m.entities {
		if e.Base().ID == id {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			break
		}
	}
	return true
}

func (m *Manager) Get(id uuid.UUID) (Updatable, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// ByName returns the first entity with the given name.
func (m *Manager) ByName(name string) (Updatable, bool) {
	for _, e := range m.entities {
		if e.Base().Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entities returns the managed entities in update order. The slice must not be modified.
func (m *Manager) Entities() []Updatable { return m.entities }

func (m *Manager) Len() int { return len(m.entities) }

// Update steps every active entity by dt, recomputes its world matrix and syncs its render component.
// The sync runs for inactive entities too, so a rendered proxy never lags its entity.
func (m *Manager) Update(dt float32) {
	for _, e := range m.entities {
		base := e.Base()
		if base.Active {
			e.Update(dt)
		}
		base.UpdateWorldMatrix()
		if base.render != nil && base.sync != nil {
			base.sync(base, base.render)
		}
	}
}
