package input

import "fmt"

// Device is a physical (or virtual) control source. Read fills state with the
// last known hardware values; the platform event pump refreshes them.
type Device interface {
	Name() string
	AxisCount() int
	HatCount() int
	ButtonCount() int
	Read(state *RawState) error
}

// HatValue is a discrete hat direction; each component is -1, 0 or 1 and
// Y is positive up.
type HatValue struct {
	X int
	Y int
}

// RawState holds one device's raw control values. Buffers are sized once from
// the device capabilities and reused every poll.
type RawState struct {
	Axes    []float64
	Hats    []HatValue
	Buttons []bool
}

func newRawState(caps Capabilities) RawState {
	return RawState{
		Axes:    make([]float64, caps.Axes),
		Hats:    make([]HatValue, caps.Hats),
		Buttons: make([]bool, caps.Buttons),
	}
}

// Capabilities is the result of probing a device.
type Capabilities struct {
	Name    string
	Axes    int
	Hats    int
	Buttons int
}

func (c Capabilities) String() string {
	return fmt.Sprintf("%q (axes=%d hats=%d buttons=%d)", c.Name, c.Axes, c.Hats, c.Buttons)
}

// Probe reads a device's reported control counts.
func Probe(d Device) Capabilities {
	if d == nil {
		return Capabilities{}
	}
	return Capabilities{
		Name:    d.Name(),
		Axes:    max(d.AxisCount(), 0),
		Hats:    max(d.HatCount(), 0),
		Buttons: max(d.ButtonCount(), 0),
	}
}
