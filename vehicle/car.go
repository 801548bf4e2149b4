// Package vehicle provides the reference car driven by the simulation: a box
// chassis with suspension rays, steering state and a boost window.
package vehicle

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/physics"
	"github.com/milk9111/ragetrack/physics/chipmunk"
)

// Spec describes a car's chassis, suspension and engine.
type Spec struct {
	Mass   float64
	Width  float64
	Height float64

	// RayMounts are body-local; every ray points straight down the chassis.
	RayMounts []cp.Vector
	RayLength float64

	EngineForce   float64
	BoostFactor   float64
	BoostDuration float64
	LeanTorque    float64
}

func DefaultSpec() Spec {
	return Spec{
		Mass:   1,
		Width:  2,
		Height: 0.5,
		RayMounts: []cp.Vector{
			{X: 0.8, Y: -0.25},
			{X: -0.8, Y: -0.25},
		},
		RayLength:     2,
		EngineForce:   4,
		BoostFactor:   2,
		BoostDuration: 1.5,
		LeanTorque:    1,
	}
}

// Car implements physics.Vehicle.
type Car struct {
	spec    Spec
	body    physics.Body
	chassis *chipmunk.Body
	rays    []physics.Ray

	direction input.Direction
	hitGround bool
	boostLeft float64
}

// Spawn creates a car in b with its chassis centred at pos.
func Spawn(b *chipmunk.Backend, pos cp.Vector, spec Spec) *Car {
	body, _ := b.NewBox(spec.Mass, spec.Width, spec.Height, pos)
	rays := make([]physics.Ray, 0, len(spec.RayMounts))
	for _, mount := range spec.RayMounts {
		rays = append(rays, b.AddRay(body, mount, cp.Vector{X: 0, Y: -1}, spec.RayLength))
	}
	car := New(body, rays, spec)
	car.chassis = body
	return car
}

// New wraps an existing body and its rays.
func New(body physics.Body, rays []physics.Ray, spec Spec) *Car {
	return &Car{
		spec: spec,
		body: body,
		rays: rays,
	}
}

// Despawn removes the car's chassis and rays from b.
func (c *Car) Despawn(b *chipmunk.Backend) {
	if c.chassis == nil {
		return
	}
	b.RemoveBody(c.chassis)
	c.chassis = nil
}

func (c *Car) Body() physics.Body {
	return c.body
}

func (c *Car) Rays() []physics.Ray {
	return c.rays
}

func (c *Car) HitGround() bool {
	return c.hitGround
}

func (c *Car) SetHitGround(hit bool) {
	c.hitGround = hit
}

func (c *Car) Direction() input.Direction {
	return c.direction
}

func (c *Car) SetDirection(d input.Direction) {
	c.direction = d
}

// SetBoost starts the boost window, or refreshes it if already boosting.
func (c *Car) SetBoost() {
	c.boostLeft = c.spec.BoostDuration
}

func (c *Car) Boosting() bool {
	return c.boostLeft > 0
}

// Update applies drive and lean for one step. Drive pushes along the chassis
// axis and only while a ray touches the track.
func (c *Car) Update(dt float64) {
	boost := 1.0
	if c.boostLeft > 0 {
		boost = c.spec.BoostFactor
		c.boostLeft = max(c.boostLeft-dt, 0)
	}

	if c.hitGround && c.direction.Y != 0 {
		axis := cp.ForAngle(c.body.Angle())
		c.body.AddForce(axis.Mult(c.direction.Y * c.spec.EngineForce * boost))
	}
	if c.direction.X != 0 {
		// stick right leans clockwise, which is negative with y up
		c.body.AddTorque(-c.direction.X * c.spec.LeanTorque)
	}
}

// Transform returns the chassis position and angle.
func (c *Car) Transform() (cp.Vector, float64) {
	return c.body.Position(), c.body.Angle()
}
