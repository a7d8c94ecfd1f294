package agent

import (
	"github.com/go-gl/mathgl/mgl32"
)

// minOrientSpeedSq is the squared speed below which a vehicle keeps its current heading.
const minOrientSpeedSq = 1e-8

// SteeringComputer produces the steering force for a vehicle this tick. The steering package's Manager
// implements it; tests can plug in a fixed force.
type SteeringComputer interface {
	ComputeSteering(v *Vehicle, dt float32) mgl32.Vec3
}

// SteeringFunc adapts a plain function to SteeringComputer.
type SteeringFunc func(v *Vehicle, dt float32) mgl32.Vec3

func (f SteeringFunc) ComputeSteering(v *Vehicle, dt float32) mgl32.Vec3 { return f(v, dt) }

// Vehicle is an entity moved by steering forces. Velocity is capped at MaxSpeed; the steering computer is
// expected to cap its force at MaxForce. Mass scales force into acceleration.
type Vehicle struct {
	Entity
	Velocity          mgl32.Vec3
	MaxSpeed          float32
	MaxForce          float32
	Mass              float32
	UpdateOrientation bool
	Steering          SteeringComputer

	lastForce mgl32.Vec3
}

// NewVehicle returns a vehicle at rest at the origin. mass <= 0 is treated as 1.
func NewVehicle(name string, maxSpeed, maxForce, mass float32) *Vehicle {
	if mass <= 0 {
		mass = 1
	}
	v := &Vehicle{
		Entity:            *NewEntity(name),
		MaxSpeed:          maxSpeed,
		MaxForce:          maxForce,
		Mass:              mass,
		UpdateOrientation: true,
	}
	return v
}

// Update integrates one step of dt seconds: force -> acceleration -> velocity (capped) -> position.
// Velocity is updated before position (semi-implicit Euler). When moving, the vehicle turns to face its velocity.
func (v *Vehicle) Update(dt float32) {
	var force mgl32.Vec3
	if v.Steering != nil {
		force = v.Steering.ComputeSteering(v, dt)
	}
	v.lastForce = force

	mass := v.Mass
	if mass <= 0 {
		mass = 1
	}
	v.Velocity = v.Velocity.Add(force.Mul(dt / mass))
	if speed := v.Velocity.Len(); speed > v.MaxSpeed && speed > 0 {
		v.Velocity = v.Velocity.Mul(v.MaxSpeed / speed)
	}

	next := v.Position.Add(v.Velocity.Mul(dt))
	if v.UpdateOrientation && v.Velocity.Dot(v.Velocity) > minOrientSpeedSq {
		v.LookAt(next)
	}
	v.Position = next
}

// Speed returns the current velocity magnitude.
func (v *Vehicle) Speed() float32 { return v.Velocity.Len() }

// SteeringForce returns the force applied by the last Update.
func (v *Vehicle) SteeringForce() mgl32.Vec3 { return v.lastForce }
