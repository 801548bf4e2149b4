package input

import "errors"

var errUnplugged = errors.New("unplugged")

type stubDevice struct {
	name    string
	axes    []float64
	hats    []HatValue
	buttons []bool
	err     error
	reads   int
}

func newStub(name string, axes, hats, buttons int) *stubDevice {
	return &stubDevice{
		name:    name,
		axes:    make([]float64, axes),
		hats:    make([]HatValue, hats),
		buttons: make([]bool, buttons),
	}
}

func (s *stubDevice) Name() string     { return s.name }
func (s *stubDevice) AxisCount() int   { return len(s.axes) }
func (s *stubDevice) HatCount() int    { return len(s.hats) }
func (s *stubDevice) ButtonCount() int { return len(s.buttons) }

func (s *stubDevice) Read(state *RawState) error {
	s.reads++
	if s.err != nil {
		return s.err
	}
	copy(state.Axes, s.axes)
	copy(state.Hats, s.hats)
	copy(state.Buttons, s.buttons)
	return nil
}
