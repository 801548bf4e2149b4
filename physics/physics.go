// Package physics runs the fixed-timestep simulation: it turns variable frame
// time into uniform steps, converts suspension-ray contacts into forces, and
// applies player control and damping before stepping the backend.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/input"
)

// Geom is a backend geometry handle. Zero is never a valid handle.
type Geom uint32

// Body is a rigid body owned by the backend.
type Body interface {
	Position() cp.Vector
	Angle() float64
	LocalToWorld(p cp.Vector) cp.Vector
	LinearVelocity() cp.Vector
	AngularVelocity() float64
	AddForce(f cp.Vector)
	AddForceAtPos(f, pos cp.Vector)
	AddTorque(t float64)
	SetGravityEnabled(on bool)
	GravityEnabled() bool
}

// ContactEvent is one colliding geometry pair from the backend's collision
// pass. It is only valid during the step that produced it.
type ContactEvent struct {
	Geom1  Geom
	Geom2  Geom
	Body1  Body
	Body2  Body
	Point  cp.Vector
	Normal cp.Vector
}

// Backend is the rigid-body solver the simulation configures and steps.
type Backend interface {
	// Collide appends this step's contact events to dst.
	Collide(dst []ContactEvent) []ContactEvent
	QuickStep(dt float64)
	// EmptyContacts drops the transient contacts of the last step.
	EmptyContacts()
}

// Ray is a suspension probe mounted on a vehicle body, in body-local space.
type Ray struct {
	Geom   Geom
	Mount  cp.Vector
	Length float64
}

// Vehicle is the kinematic and force-relevant view of a car.
type Vehicle interface {
	Body() Body
	Rays() []Ray
	HitGround() bool
	SetHitGround(hit bool)
	Direction() input.Direction
	SetDirection(d input.Direction)
	SetBoost()
	// Update applies the vehicle's own per-step forces (drive, lean).
	Update(dt float64)
}

// Controls supplies the control frame driving one vehicle.
type Controls interface {
	Frame() input.ControlFrame
}

// Snapshot is a vehicle's simulated transform handed to the renderer.
type Snapshot struct {
	Vehicle   Vehicle
	Position  cp.Vector
	Angle     float64
	HitGround bool
}

// Publisher receives the simulated transforms once per frame.
type Publisher interface {
	Publish(snapshots []Snapshot)
}

// Config holds the simulation tuning.
type Config struct {
	StepSize            float64
	MaxStepsPerFrame    int
	LinearFriction      float64
	AngularFriction     float64
	SuspensionStiffness float64
}

func DefaultConfig() Config {
	return Config{
		StepSize:            1.0 / 900.0,
		MaxStepsPerFrame:    120,
		LinearFriction:      0.9,
		AngularFriction:     0.9,
		SuspensionStiffness: 1,
	}
}
