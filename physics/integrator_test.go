package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ragetrack/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyControls(t *testing.T) {
	cases := []struct {
		name      string
		start     input.Direction
		frame     input.ControlFrame
		wantDir   input.Direction
		wantBoost int
	}{
		{
			name:    "direction replaces",
			start:   input.Direction{X: 1, Y: 0},
			frame:   input.ControlFrame{Directions: input.Direction{X: -0.5, Y: 1}},
			wantDir: input.Direction{X: -0.5, Y: 1},
		},
		{
			name:    "neutral keeps last direction",
			start:   input.Direction{X: 1, Y: 1},
			frame:   input.ControlFrame{},
			wantDir: input.Direction{X: 1, Y: 1},
		},
		{
			name:      "boost",
			frame:     input.ControlFrame{Boost: true},
			wantBoost: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := &fakeVehicle{body: newFakeBody(cp.Vector{}), direction: c.start}
			it := NewIntegrator(&fakeBackend{}, nil, 0, 0)

			it.Apply(1.0/900.0, &Entry{Vehicle: v, Controls: &fakeControls{frame: c.frame}})

			assert.Equal(t, c.wantDir, v.Direction())
			assert.Equal(t, c.wantBoost, v.boosts)
			assert.Equal(t, 1, v.updates)
		})
	}
}

func TestApplyDamping(t *testing.T) {
	body := newFakeBody(cp.Vector{})
	body.vel = cp.Vector{X: 2, Y: -4}
	body.angVel = 3
	v := &fakeVehicle{body: body}

	it := NewIntegrator(&fakeBackend{}, nil, 0.9, 0.5)
	it.Apply(1.0/900.0, &Entry{Vehicle: v})

	require.Len(t, body.forces, 1)
	assert.InDelta(t, -1.8, body.forces[0].X, 1e-12)
	assert.InDelta(t, 3.6, body.forces[0].Y, 1e-12)
	require.Len(t, body.torques, 1)
	assert.InDelta(t, -1.5, body.torques[0], 1e-12)
}

func TestApplyWithoutBody(t *testing.T) {
	v := &fakeVehicle{}
	it := NewIntegrator(&fakeBackend{}, nil, 0.9, 0.9)

	assert.NotPanics(t, func() {
		it.Apply(1.0/900.0, &Entry{Vehicle: v})
	})
	assert.Equal(t, 1, v.updates)
}

func TestIntegratorStepOrder(t *testing.T) {
	var log []string
	backend := &fakeBackend{log: &log}
	responder := NewResponder(1)
	body := newFakeBody(cp.Vector{})
	body.gravity = false
	responder.weightless = append(responder.weightless, body)

	it := NewIntegrator(backend, responder, 0.9, 0.9)
	entries := []*Entry{
		{Vehicle: &fakeVehicle{body: newFakeBody(cp.Vector{}), log: &log}},
		{Vehicle: &fakeVehicle{body: newFakeBody(cp.Vector{}), log: &log}},
	}
	it.Step(0.5, entries)

	assert.Equal(t, []string{"update", "update", "step", "empty"}, log)
	assert.Equal(t, []float64{0.5}, backend.steps)
	assert.True(t, body.GravityEnabled())
}

func TestSetFriction(t *testing.T) {
	it := NewIntegrator(&fakeBackend{}, nil, 0.9, 0.9)
	it.SetFriction(0.2, 0.3)

	lin, ang := it.Friction()
	assert.Equal(t, 0.2, lin)
	assert.Equal(t, 0.3, ang)
}
