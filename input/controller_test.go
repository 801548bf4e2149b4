package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollButtonThrottle(t *testing.T) {
	cases := []struct {
		name  string
		accel bool
		brake bool
		want  float64
	}{
		{"accelerate", true, false, 1},
		{"brake", false, true, -1},
		{"both", true, true, 0},
		{"neither", false, false, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dev := newStub("pad", 2, 0, 4)
			dev.buttons[1] = c.accel
			dev.buttons[3] = c.brake

			table, err := Resolve(Probe(dev), nil)
			require.NoError(t, err)
			ctrl, err := NewController(dev, table)
			require.NoError(t, err)

			require.NoError(t, ctrl.Poll())
			assert.Equal(t, c.want, ctrl.Frame().Directions.Y)
		})
	}
}

func TestPollAxisThrottleInvertsVertical(t *testing.T) {
	dev := newStub("twin", 2, 0, 2)
	dev.axes[0] = -0.25
	dev.axes[1] = -0.8
	dev.buttons[0] = true

	table, err := Resolve(Probe(dev), nil)
	require.NoError(t, err)
	require.Equal(t, AxisThrottle{Stick: 0}, table.Throttle)

	ctrl, err := NewController(dev, table)
	require.NoError(t, err)
	require.NoError(t, ctrl.Poll())

	frame := ctrl.Frame()
	assert.Equal(t, -0.25, frame.Directions.X)
	assert.InDelta(t, 0.8, frame.Directions.Y, 1e-12)
	assert.True(t, frame.Boost)
	assert.False(t, frame.UseItem)
}

func TestPollHatThrottle(t *testing.T) {
	dev := newStub("dpad", 0, 1, 2)
	dev.hats[0] = HatValue{X: -1, Y: 1}
	dev.buttons[1] = true

	table, err := Resolve(Probe(dev), nil)
	require.NoError(t, err)
	ctrl, err := NewController(dev, table)
	require.NoError(t, err)
	require.NoError(t, ctrl.Poll())

	frame := ctrl.Frame()
	assert.Equal(t, Direction{X: -1, Y: 1}, frame.Directions)
	assert.False(t, frame.Boost)
	assert.True(t, frame.UseItem)
}

func TestJoystickEndToEnd(t *testing.T) {
	dev := newStub("gamepad", 2, 0, 4)
	caps := Probe(dev)
	require.Equal(t, Capabilities{Name: "gamepad", Axes: 2, Hats: 0, Buttons: 4}, caps)

	table, err := Resolve(caps, nil)
	require.NoError(t, err)
	ctrl, err := NewController(dev, table)
	require.NoError(t, err)

	dev.axes[0], dev.axes[1] = 0.3, -0.6
	dev.buttons[0] = true

	require.NoError(t, ctrl.Poll())
	frame := ctrl.Frame()
	assert.Equal(t, 0.3, frame.Directions.X)
	// button 0 is boost; accelerate is button 1 and stays released
	assert.Equal(t, 0.0, frame.Directions.Y)
	assert.True(t, frame.Boost)
	assert.False(t, frame.UseItem)

	dev.buttons = []bool{true, true, false, false}
	require.NoError(t, ctrl.Poll())
	frame = ctrl.Frame()
	assert.Equal(t, Direction{X: 0.3, Y: 1}, frame.Directions)
	assert.True(t, frame.Boost)
	assert.False(t, frame.UseItem)
}

func TestPollFaultKeepsLastFrame(t *testing.T) {
	dev := newStub("pad", 2, 0, 4)
	table, err := Resolve(Probe(dev), nil)
	require.NoError(t, err)
	ctrl, err := NewController(dev, table)
	require.NoError(t, err)

	dev.axes[0] = 0.5
	dev.buttons[1] = true
	require.NoError(t, ctrl.Poll())
	before := ctrl.Frame()

	dev.err = errUnplugged
	dev.axes[0] = -1
	err = ctrl.Poll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeviceRead))
	assert.True(t, errors.Is(err, errUnplugged))
	assert.True(t, ctrl.Faulted())
	assert.Equal(t, before, ctrl.Frame())

	dev.err = nil
	require.NoError(t, ctrl.Poll())
	assert.False(t, ctrl.Faulted())
	assert.Equal(t, -1.0, ctrl.Frame().Directions.X)
}

func TestNewControllerRejectsTableOutsideDevice(t *testing.T) {
	dev := newStub("small", 2, 0, 2)
	table := BindingTable{Directions: Axis(0), Throttle: ButtonThrottle{AccelerateButton: 1, BrakeButton: 3}, UseItem: 2}
	_, err := NewController(dev, table)
	assert.ErrorIs(t, err, ErrBindingOutOfRange)
}
