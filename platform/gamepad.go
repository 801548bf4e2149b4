package platform

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragetrack/input"
)

var ErrDisconnected = errors.New("platform: gamepad disconnected")

// Pump snapshots the connected gamepad set once per frame. ebiten refreshes
// device state itself before each Update, so pumping only has to notice
// disconnects.
type Pump struct {
	ids       []ebiten.GamepadID
	connected map[ebiten.GamepadID]bool
}

func NewPump() *Pump {
	return &Pump{connected: make(map[ebiten.GamepadID]bool)}
}

func (p *Pump) PumpEvents() {
	p.ids = ebiten.AppendGamepadIDs(p.ids[:0])
	clear(p.connected)
	for _, id := range p.ids {
		p.connected[id] = true
	}
}

func (p *Pump) Connected(id ebiten.GamepadID) bool {
	return p.connected[id]
}

// Gamepad is an ebiten gamepad. Its capabilities are fixed when it is
// discovered. With the standard layout available the D-pad is reported as
// hat 0.
type Gamepad struct {
	id       ebiten.GamepadID
	name     string
	axes     int
	buttons  int
	standard bool
	pump     *Pump
}

// DiscoverGamepads returns a device for every gamepad connected now. ebiten
// only reports gamepads once the game loop is running, so call it from
// Update.
func DiscoverGamepads(pump *Pump) []input.Device {
	pump.PumpEvents()
	devices := make([]input.Device, 0, len(pump.ids))
	for _, id := range pump.ids {
		devices = append(devices, &Gamepad{
			id:       id,
			name:     ebiten.GamepadName(id),
			axes:     ebiten.GamepadAxisCount(id),
			buttons:  ebiten.GamepadButtonCount(id),
			standard: ebiten.IsStandardGamepadLayoutAvailable(id),
			pump:     pump,
		})
	}
	return devices
}

func (g *Gamepad) Name() string     { return g.name }
func (g *Gamepad) AxisCount() int   { return g.axes }
func (g *Gamepad) ButtonCount() int { return g.buttons }

func (g *Gamepad) HatCount() int {
	if g.standard {
		return 1
	}
	return 0
}

func (g *Gamepad) Read(state *input.RawState) error {
	if g.pump != nil && !g.pump.Connected(g.id) {
		return fmt.Errorf("%s (id %d): %w", g.name, g.id, ErrDisconnected)
	}
	for i := range state.Axes {
		state.Axes[i] = ebiten.GamepadAxisValue(g.id, ebiten.GamepadAxisType(i))
	}
	for i := range state.Buttons {
		state.Buttons[i] = ebiten.IsGamepadButtonPressed(g.id, ebiten.GamepadButton(i))
	}
	if len(state.Hats) > 0 && g.standard {
		state.Hats[0] = dpad(func(b ebiten.StandardGamepadButton) bool {
			return ebiten.IsStandardGamepadButtonPressed(g.id, b)
		})
	}
	return nil
}

// dpad folds the standard layout's D-pad buttons into a hat value, y up.
func dpad(pressed func(ebiten.StandardGamepadButton) bool) input.HatValue {
	var h input.HatValue
	if pressed(ebiten.StandardGamepadButtonLeftLeft) {
		h.X--
	}
	if pressed(ebiten.StandardGamepadButtonLeftRight) {
		h.X++
	}
	if pressed(ebiten.StandardGamepadButtonLeftTop) {
		h.Y++
	}
	if pressed(ebiten.StandardGamepadButtonLeftBottom) {
		h.Y--
	}
	return h
}
