package chipmunk

import "github.com/jakecoffman/cp"

// Body adapts a Chipmunk body to physics.Body.
type Body struct {
	body    *cp.Body
	shapes  []*cp.Shape
	gravity bool
	group   uint
}

// CP returns the underlying Chipmunk body.
func (b *Body) CP() *cp.Body {
	return b.body
}

func (b *Body) Position() cp.Vector {
	return b.body.Position()
}

func (b *Body) Angle() float64 {
	return b.body.Angle()
}

func (b *Body) LocalToWorld(p cp.Vector) cp.Vector {
	return b.body.LocalToWorld(p)
}

func (b *Body) LinearVelocity() cp.Vector {
	return b.body.Velocity()
}

func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

func (b *Body) AddForce(f cp.Vector) {
	b.body.SetForce(b.body.Force().Add(f))
}

func (b *Body) AddForceAtPos(f, pos cp.Vector) {
	b.body.ApplyForceAtWorldPoint(f, pos)
}

func (b *Body) AddTorque(t float64) {
	b.body.SetTorque(b.body.Torque() + t)
}

func (b *Body) SetGravityEnabled(on bool) {
	b.gravity = on
}

func (b *Body) GravityEnabled() bool {
	return b.gravity
}
