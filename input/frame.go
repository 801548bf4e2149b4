package input

import "fmt"

// Direction is the normalized movement vector: X steers, Y is throttle
// (positive accelerates).
type Direction struct {
	X float64
	Y float64
}

func (d Direction) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// ControlFrame is one controller's normalized output for a tick.
type ControlFrame struct {
	Directions Direction
	Boost      bool
	UseItem    bool
}

// synthesize turns raw device state into a control frame using table. It
// only writes out on success.
func synthesize(table BindingTable, state *RawState, out *ControlFrame) error {
	var next ControlFrame

	switch src := table.Directions; src.Kind {
	case SourceAxis:
		v, err := axis(state, 2*src.Index)
		if err != nil {
			return err
		}
		next.Directions.X = v
	case SourceHat:
		h, err := hat(state, src.Index)
		if err != nil {
			return err
		}
		next.Directions.X = float64(h.X)
	default:
		return fmt.Errorf("input: directions bound to %s: %w", src.Kind, ErrInvalidSource)
	}

	switch t := table.Throttle.(type) {
	case ButtonThrottle:
		accel, err := button(state, t.AccelerateButton)
		if err != nil {
			return err
		}
		brake, err := button(state, t.BrakeButton)
		if err != nil {
			return err
		}
		if accel {
			next.Directions.Y++
		}
		if brake {
			next.Directions.Y--
		}
	case AxisThrottle:
		v, err := axis(state, 2*t.Stick+1)
		if err != nil {
			return err
		}
		// pushing the stick forward reports negative values
		next.Directions.Y = -v
	case HatThrottle:
		h, err := hat(state, t.Hat)
		if err != nil {
			return err
		}
		next.Directions.Y = float64(h.Y)
	default:
		return fmt.Errorf("input: throttle %T: %w", table.Throttle, ErrInvalidSource)
	}

	var err error
	if next.Boost, err = button(state, table.Boost); err != nil {
		return err
	}
	if next.UseItem, err = button(state, table.UseItem); err != nil {
		return err
	}

	*out = next
	return nil
}

func axis(state *RawState, i int) (float64, error) {
	if i < 0 || i >= len(state.Axes) {
		return 0, fmt.Errorf("input: axis %d of %d: %w", i, len(state.Axes), ErrBindingOutOfRange)
	}
	return state.Axes[i], nil
}

func hat(state *RawState, i int) (HatValue, error) {
	if i < 0 || i >= len(state.Hats) {
		return HatValue{}, fmt.Errorf("input: hat %d of %d: %w", i, len(state.Hats), ErrBindingOutOfRange)
	}
	return state.Hats[i], nil
}

func button(state *RawState, i int) (bool, error) {
	if i < 0 || i >= len(state.Buttons) {
		return false, fmt.Errorf("input: button %d of %d: %w", i, len(state.Buttons), ErrBindingOutOfRange)
	}
	return state.Buttons[i], nil
}
