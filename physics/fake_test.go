package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/input"
)

type forceAt struct {
	force cp.Vector
	pos   cp.Vector
}

type fakeBody struct {
	pos     cp.Vector
	angle   float64
	vel     cp.Vector
	angVel  float64
	gravity bool

	forces   []cp.Vector
	forcesAt []forceAt
	torques  []float64
}

func newFakeBody(pos cp.Vector) *fakeBody {
	return &fakeBody{pos: pos, gravity: true}
}

func (b *fakeBody) Position() cp.Vector       { return b.pos }
func (b *fakeBody) Angle() float64            { return b.angle }
func (b *fakeBody) LinearVelocity() cp.Vector { return b.vel }
func (b *fakeBody) AngularVelocity() float64  { return b.angVel }
func (b *fakeBody) AddForce(f cp.Vector)      { b.forces = append(b.forces, f) }
func (b *fakeBody) AddTorque(t float64)       { b.torques = append(b.torques, t) }
func (b *fakeBody) SetGravityEnabled(on bool) { b.gravity = on }
func (b *fakeBody) GravityEnabled() bool      { return b.gravity }

func (b *fakeBody) LocalToWorld(p cp.Vector) cp.Vector {
	return b.pos.Add(p)
}

func (b *fakeBody) AddForceAtPos(f, pos cp.Vector) {
	b.forcesAt = append(b.forcesAt, forceAt{force: f, pos: pos})
}

type fakeVehicle struct {
	body      *fakeBody
	rays      []Ray
	hit       bool
	direction input.Direction
	boosts    int
	updates   int
	log       *[]string
}

func (v *fakeVehicle) Body() Body {
	if v.body == nil {
		return nil
	}
	return v.body
}

func (v *fakeVehicle) Rays() []Ray                    { return v.rays }
func (v *fakeVehicle) HitGround() bool                { return v.hit }
func (v *fakeVehicle) SetHitGround(hit bool)          { v.hit = hit }
func (v *fakeVehicle) Direction() input.Direction     { return v.direction }
func (v *fakeVehicle) SetDirection(d input.Direction) { v.direction = d }
func (v *fakeVehicle) SetBoost()                      { v.boosts++ }

func (v *fakeVehicle) Update(dt float64) {
	v.updates++
	if v.log != nil {
		*v.log = append(*v.log, "update")
	}
}

type fakeControls struct {
	frame input.ControlFrame
}

func (c *fakeControls) Frame() input.ControlFrame { return c.frame }

type fakeBackend struct {
	// events returned by every Collide call
	events []ContactEvent
	log    *[]string
	steps  []float64
}

func (b *fakeBackend) Collide(dst []ContactEvent) []ContactEvent {
	if b.log != nil {
		*b.log = append(*b.log, "collide")
	}
	return append(dst, b.events...)
}

func (b *fakeBackend) QuickStep(dt float64) {
	b.steps = append(b.steps, dt)
	if b.log != nil {
		*b.log = append(*b.log, "step")
	}
}

func (b *fakeBackend) EmptyContacts() {
	if b.log != nil {
		*b.log = append(*b.log, "empty")
	}
}

type fakePublisher struct {
	calls int
	last  []Snapshot
}

func (p *fakePublisher) Publish(s []Snapshot) {
	p.calls++
	p.last = append(p.last[:0], s...)
}
