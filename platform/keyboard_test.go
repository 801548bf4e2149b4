package platform

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pressing(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestKeyboardCapabilities(t *testing.T) {
	kb, err := NewKeyboard(settings.Default().KeyMap)
	require.NoError(t, err)

	assert.Equal(t, input.Capabilities{Name: KeyboardName, Axes: 2, Hats: 0, Buttons: 4}, input.Probe(kb))
}

func TestKeyboardRead(t *testing.T) {
	cases := []struct {
		name    string
		keys    []ebiten.Key
		axes    []float64
		buttons []bool
	}{
		{"idle", nil, []float64{0, 0}, []bool{false, false, false, false}},
		{"left", []ebiten.Key{ebiten.KeyA}, []float64{-1, 0}, []bool{false, false, false, false}},
		{"both directions cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowRight}, []float64{0, 0}, []bool{false, false, false, false}},
		{"accelerate and boost", []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeySpace}, []float64{0, -1}, []bool{true, true, false, false}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			kb, err := NewKeyboard(settings.Default().KeyMap)
			require.NoError(t, err)
			kb.pressed = pressing(c.keys...)

			state := input.RawState{Axes: make([]float64, 2), Buttons: make([]bool, 4)}
			require.NoError(t, kb.Read(&state))
			assert.Equal(t, c.axes, state.Axes)
			assert.Equal(t, c.buttons, state.Buttons)
		})
	}
}

func TestKeyboardWithDefaultTable(t *testing.T) {
	s := settings.Default()
	kb, err := NewKeyboard(s.KeyMap)
	require.NoError(t, err)
	kb.pressed = pressing(ebiten.KeyD, ebiten.KeyW, ebiten.KeyControlRight)

	ctrl, err := input.NewController(kb, s.KeyboardTable)
	require.NoError(t, err)
	require.NoError(t, ctrl.Poll())

	assert.Equal(t, input.ControlFrame{
		Directions: input.Direction{X: 1, Y: 1},
		UseItem:    true,
	}, ctrl.Frame())
}

func TestNewKeyboardRejectsUnknownKey(t *testing.T) {
	_, err := NewKeyboard(settings.KeyMap{Buttons: [][]string{{"NotAKey"}}})
	assert.Error(t, err)
}

func TestDpad(t *testing.T) {
	cases := []struct {
		name    string
		pressed []ebiten.StandardGamepadButton
		want    input.HatValue
	}{
		{"centre", nil, input.HatValue{}},
		{"up", []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop}, input.HatValue{Y: 1}},
		{"down left", []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom, ebiten.StandardGamepadButtonLeftLeft}, input.HatValue{X: -1, Y: -1}},
		{"right", []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight}, input.HatValue{X: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := dpad(func(b ebiten.StandardGamepadButton) bool {
				for _, p := range c.pressed {
					if p == b {
						return true
					}
				}
				return false
			})
			assert.Equal(t, c.want, got)
		})
	}
}
