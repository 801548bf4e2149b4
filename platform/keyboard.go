// Package platform adapts ebiten's keyboard and gamepads, and scripted bots,
// to input.Device.
package platform

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/settings"
)

const KeyboardName = "Keyboard"

type keyAxis struct {
	negative []ebiten.Key
	positive []ebiten.Key
}

// Keyboard is a virtual device built from a key map. Each axis reads -1, 0
// or 1 from its key pair; each button is pressed while any of its keys is.
type Keyboard struct {
	axes    []keyAxis
	buttons [][]ebiten.Key
	pressed func(ebiten.Key) bool
}

func NewKeyboard(m settings.KeyMap) (*Keyboard, error) {
	k := &Keyboard{pressed: ebiten.IsKeyPressed}
	for i, a := range m.Axes {
		neg, err := parseKeys(a.Negative)
		if err != nil {
			return nil, fmt.Errorf("platform: keyboard axis %d: %w", i, err)
		}
		pos, err := parseKeys(a.Positive)
		if err != nil {
			return nil, fmt.Errorf("platform: keyboard axis %d: %w", i, err)
		}
		k.axes = append(k.axes, keyAxis{negative: neg, positive: pos})
	}
	for i, names := range m.Buttons {
		keys, err := parseKeys(names)
		if err != nil {
			return nil, fmt.Errorf("platform: keyboard button %d: %w", i, err)
		}
		k.buttons = append(k.buttons, keys)
	}
	return k, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (k *Keyboard) Name() string     { return KeyboardName }
func (k *Keyboard) AxisCount() int   { return len(k.axes) }
func (k *Keyboard) HatCount() int    { return 0 }
func (k *Keyboard) ButtonCount() int { return len(k.buttons) }

func (k *Keyboard) Read(state *input.RawState) error {
	for i := range min(len(k.axes), len(state.Axes)) {
		var v float64
		if k.anyPressed(k.axes[i].negative) {
			v--
		}
		if k.anyPressed(k.axes[i].positive) {
			v++
		}
		state.Axes[i] = v
	}
	for i := range min(len(k.buttons), len(state.Buttons)) {
		state.Buttons[i] = k.anyPressed(k.buttons[i])
	}
	return nil
}

func (k *Keyboard) anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if k.pressed(key) {
			return true
		}
	}
	return false
}
