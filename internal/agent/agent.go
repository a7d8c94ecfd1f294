// Package agent holds the simulated entities (targets, vehicles), their manager, and the bridge that
// copies each entity's world transform into its render component once per update.
package agent

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// RenderComponent is the visual proxy bound to an entity. It only receives a transform.
type RenderComponent interface {
	SetMatrix(m mgl32.Mat4)
}

// SyncFunc copies state from an entity into its render component. Called by Manager.Update after the
// entity's world matrix is recomputed.
type SyncFunc func(e *Entity, rc RenderComponent)

// CopyWorldMatrix is the standard SyncFunc: the proxy's matrix becomes the entity's world matrix.
func CopyWorldMatrix(e *Entity, rc RenderComponent) {
	rc.SetMatrix(e.WorldMatrix())
}

// forward is the local axis an entity faces with identity rotation.
var forward = mgl32.Vec3{0, 0, 1}

// Entity is a positioned object in the world: a click target, or the base of a Vehicle.
// Entities with Active false are skipped by Update but still get their matrix and proxy synced.
type Entity struct {
	ID       uuid.UUID
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Active   bool

	worldMatrix mgl32.Mat4
	render      RenderComponent
	sync        SyncFunc
}

// NewEntity returns an active entity at the origin with identity rotation and unit scale.
func NewEntity(name string) *Entity {
	e := &Entity{
		ID:       uuid.New(),
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Active:   true,
	}
	e.UpdateWorldMatrix()
	return e
}

// Base returns the entity itself; Vehicle inherits it through embedding.
func (e *Entity) Base() *Entity { return e }

// Update does nothing for plain entities. Their position is driven from outside (e.g. clicks).
func (e *Entity) Update(dt float32) {}

// UpdateWorldMatrix recomputes translate * rotate * scale from the current fields.
func (e *Entity) UpdateWorldMatrix() {
	t := mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
	s := mgl32.Scale3D(e.Scale.X(), e.Scale.Y(), e.Scale.Z())
	e.worldMatrix = t.Mul4(e.Rotation.Mat4()).Mul4(s)
}

// WorldMatrix returns the matrix computed by the last UpdateWorldMatrix.
func (e *Entity) WorldMatrix() mgl32.Mat4 { return e.worldMatrix }

// SetRenderComponent binds a visual proxy. sync nil means CopyWorldMatrix.
func (e *Entity) SetRenderComponent(rc RenderComponent, sync SyncFunc) {
	if sync == nil {
		sync = CopyWorldMatrix
	}
	e.render = rc
	e.sync = sync
}

func (e *Entity) RenderComponent() RenderComponent { return e.render }

// Forward returns the world direction the entity is facing.
func (e *Entity) Forward() mgl32.Vec3 {
	return e.Rotation.Rotate(forward)
}

// LookAt rotates the entity so that its forward axis points at target. No-op when target is the position.
func (e *Entity) LookAt(target mgl32.Vec3) {
	dir := target.Sub(e.Position)
	if dir.Len() < 1e-6 {
		return
	}
	e.Rotation = mgl32.QuatBetweenVectors(forward, dir.Normalize())
}
