package physics

// Entry pairs a vehicle with the controls that drive it.
type Entry struct {
	Vehicle  Vehicle
	Controls Controls
}

// Integrator applies control input and damping to every vehicle, then steps
// the backend.
type Integrator struct {
	backend         Backend
	responder       *Responder
	linearFriction  float64
	angularFriction float64
}

func NewIntegrator(backend Backend, responder *Responder, linearFriction, angularFriction float64) *Integrator {
	return &Integrator{
		backend:         backend,
		responder:       responder,
		linearFriction:  linearFriction,
		angularFriction: angularFriction,
	}
}

// SetFriction replaces the damping constants.
func (it *Integrator) SetFriction(linear, angular float64) {
	it.linearFriction = linear
	it.angularFriction = angular
}

func (it *Integrator) Friction() (linear, angular float64) {
	return it.linearFriction, it.angularFriction
}

// Apply runs the per-vehicle part of a step without advancing the backend.
func (it *Integrator) Apply(dt float64, e *Entry) {
	v := e.Vehicle
	if e.Controls != nil {
		frame := e.Controls.Frame()
		if frame.Boost {
			v.SetBoost()
		}
		// neutral input keeps the last direction
		if !frame.Directions.IsZero() {
			v.SetDirection(frame.Directions)
		}
	}
	v.Update(dt)

	body := v.Body()
	if body == nil {
		return
	}
	body.AddForce(body.LinearVelocity().Mult(-it.linearFriction))
	body.AddTorque(body.AngularVelocity() * -it.angularFriction)
}

// Step applies every entry, integrates the backend one step and clears the
// step's transient contact state.
func (it *Integrator) Step(dt float64, entries []*Entry) {
	for _, e := range entries {
		it.Apply(dt, e)
	}
	it.backend.QuickStep(dt)
	it.backend.EmptyContacts()
	if it.responder != nil {
		it.responder.Clear()
	}
}
