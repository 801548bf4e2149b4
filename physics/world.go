package physics

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// World runs the per-frame simulation loop for a set of vehicles.
type World struct {
	backend    Backend
	stepper    *Stepper
	responder  *Responder
	integrator *Integrator
	publisher  Publisher
	log        zerolog.Logger

	entries   []*Entry
	events    []ContactEvent
	snapshots []Snapshot

	steps   metric.Int64Counter
	clamped metric.Int64Counter
	dropped metric.Float64Counter
}

func NewWorld(backend Backend, cfg Config, log zerolog.Logger) (*World, error) {
	if backend == nil {
		return nil, fmt.Errorf("physics: nil backend")
	}
	responder := NewResponder(cfg.SuspensionStiffness)
	w := &World{
		backend:    backend,
		stepper:    NewStepper(cfg.StepSize, cfg.MaxStepsPerFrame),
		responder:  responder,
		integrator: NewIntegrator(backend, responder, cfg.LinearFriction, cfg.AngularFriction),
		log:        log.With().Str("component", "physics").Logger(),
	}

	m := meter()
	var err error
	w.steps, err = m.Int64Counter(
		"physics.steps",
		metric.WithDescription("Fixed simulation steps taken"),
	)
	if err != nil {
		return nil, fmt.Errorf("physics: creating steps counter: %w", err)
	}
	w.clamped, err = m.Int64Counter(
		"physics.frames.clamped",
		metric.WithDescription("Frames that hit the step cap"),
	)
	if err != nil {
		return nil, fmt.Errorf("physics: creating clamped counter: %w", err)
	}
	w.dropped, err = m.Float64Counter(
		"physics.time.dropped",
		metric.WithDescription("Simulation time discarded by the step cap"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("physics: creating dropped counter: %w", err)
	}
	return w, nil
}

// AddVehicle registers v, driven by controls, and indexes its rays.
func (w *World) AddVehicle(v Vehicle, controls Controls) {
	if v == nil {
		return
	}
	w.entries = append(w.entries, &Entry{Vehicle: v, Controls: controls})
	w.responder.Track(v)
}

// RemoveVehicle unregisters v.
func (w *World) RemoveVehicle(v Vehicle) {
	for i, e := range w.entries {
		if e.Vehicle != v {
			continue
		}
		w.responder.Untrack(v)
		w.entries = slices.Delete(w.entries, i, i+1)
		return
	}
}

func (w *World) Vehicles() []Vehicle {
	out := make([]Vehicle, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e.Vehicle)
	}
	return out
}

func (w *World) SetPublisher(p Publisher) {
	w.publisher = p
}

func (w *World) Stepper() *Stepper {
	return w.stepper
}

func (w *World) Integrator() *Integrator {
	return w.integrator
}

// Frame advances the simulation by elapsed seconds of real time, then
// publishes vehicle transforms once. It returns the number of steps taken.
func (w *World) Frame(elapsed float64) int {
	steps, dropped := w.stepper.Advance(elapsed, w.step)

	ctx := context.Background()
	if steps > 0 {
		w.steps.Add(ctx, int64(steps))
	}
	if dropped > 0 {
		w.clamped.Add(ctx, 1)
		w.dropped.Add(ctx, dropped)
		w.log.Debug().Int("steps", steps).Float64("dropped", dropped).Msg("step cap reached")
	}

	w.publish()
	return steps
}

func (w *World) step(dt float64) {
	for _, e := range w.entries {
		e.Vehicle.SetHitGround(false)
	}

	w.events = w.backend.Collide(w.events[:0])
	for _, ev := range w.events {
		w.responder.Respond(ev)
	}
	clear(w.events)

	w.integrator.Step(dt, w.entries)
}

func (w *World) publish() {
	if w.publisher == nil {
		return
	}
	w.snapshots = w.snapshots[:0]
	for _, e := range w.entries {
		s := Snapshot{Vehicle: e.Vehicle, HitGround: e.Vehicle.HitGround()}
		if body := e.Vehicle.Body(); body != nil {
			s.Position = body.Position()
			s.Angle = body.Angle()
		}
		w.snapshots = append(w.snapshots, s)
	}
	w.publisher.Publish(w.snapshots)
}
