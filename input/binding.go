package input

import (
	"errors"
	"fmt"
)

var (
	ErrBindingOutOfRange = errors.New("input: binding index out of range")
	ErrInvalidSource     = errors.New("input: invalid source kind")
)

// SourceKind identifies the class of physical control a binding reads.
type SourceKind uint8

const (
	SourceAxis SourceKind = iota + 1
	SourceHat
	SourceButton
)

func (k SourceKind) String() string {
	switch k {
	case SourceAxis:
		return "axis"
	case SourceHat:
		return "hat"
	case SourceButton:
		return "button"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseSourceKind is the inverse of SourceKind.String.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "axis", "AXIS":
		return SourceAxis, nil
	case "hat", "HAT":
		return SourceHat, nil
	case "button", "BUTTON":
		return SourceButton, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSource, s)
}

// Source references one physical control. For SourceAxis the index names a
// stick: stick i spans raw axes 2i (horizontal) and 2i+1 (vertical).
type Source struct {
	Kind  SourceKind
	Index int
}

func Axis(stick int) Source   { return Source{Kind: SourceAxis, Index: stick} }
func Hat(index int) Source    { return Source{Kind: SourceHat, Index: index} }
func Button(index int) Source { return Source{Kind: SourceButton, Index: index} }

func (s Source) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.Index)
}

func (s Source) fits(caps Capabilities) bool {
	if s.Index < 0 {
		return false
	}
	switch s.Kind {
	case SourceAxis:
		return 2*s.Index+1 < caps.Axes
	case SourceHat:
		return s.Index < caps.Hats
	case SourceButton:
		return s.Index < caps.Buttons
	}
	return false
}

// Throttle is the accelerate/brake pair. Its variants make a table that mixes
// kinds between accelerate and brake unrepresentable.
type Throttle interface {
	Kind() SourceKind
	Accelerate() Source
	Brake() Source
	isThrottle()
}

// ButtonThrottle reads accelerate and brake from two buttons.
type ButtonThrottle struct {
	AccelerateButton int
	BrakeButton      int
}

func (ButtonThrottle) Kind() SourceKind     { return SourceButton }
func (t ButtonThrottle) Accelerate() Source { return Button(t.AccelerateButton) }
func (t ButtonThrottle) Brake() Source      { return Button(t.BrakeButton) }
func (ButtonThrottle) isThrottle()          {}

// AxisThrottle reads both from the vertical axis of one stick; the sign
// separates accelerate from brake.
type AxisThrottle struct {
	Stick int
}

func (AxisThrottle) Kind() SourceKind     { return SourceAxis }
func (t AxisThrottle) Accelerate() Source { return Axis(t.Stick) }
func (t AxisThrottle) Brake() Source      { return Axis(t.Stick) }
func (AxisThrottle) isThrottle()          {}

// HatThrottle reads both from the vertical component of one hat.
type HatThrottle struct {
	Hat int
}

func (HatThrottle) Kind() SourceKind     { return SourceHat }
func (t HatThrottle) Accelerate() Source { return Hat(t.Hat) }
func (t HatThrottle) Brake() Source      { return Hat(t.Hat) }
func (HatThrottle) isThrottle()          {}

// NewThrottle builds the throttle variant for an accelerate/brake pair.
// Pairs of differing kinds, or axis/hat pairs on different controls, are
// rejected.
func NewThrottle(accelerate, brake Source) (Throttle, error) {
	if accelerate.Kind != brake.Kind {
		return nil, fmt.Errorf("input: accelerate is %s but brake is %s: %w", accelerate.Kind, brake.Kind, ErrMixedThrottle)
	}
	switch accelerate.Kind {
	case SourceButton:
		return ButtonThrottle{AccelerateButton: accelerate.Index, BrakeButton: brake.Index}, nil
	case SourceAxis:
		if accelerate.Index != brake.Index {
			return nil, fmt.Errorf("input: axis throttle needs one stick, got %d and %d: %w", accelerate.Index, brake.Index, ErrMixedThrottle)
		}
		return AxisThrottle{Stick: accelerate.Index}, nil
	case SourceHat:
		if accelerate.Index != brake.Index {
			return nil, fmt.Errorf("input: hat throttle needs one hat, got %d and %d: %w", accelerate.Index, brake.Index, ErrMixedThrottle)
		}
		return HatThrottle{Hat: accelerate.Index}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidSource, accelerate.Kind)
}

// BindingTable maps the logical actions of one controller to physical
// controls. Tables are values and are never mutated after registration.
type BindingTable struct {
	Directions Source
	Throttle   Throttle
	Boost      int
	UseItem    int
}

func (t BindingTable) Accelerate() Source { return t.Throttle.Accelerate() }
func (t BindingTable) Brake() Source      { return t.Throttle.Brake() }

// Validate checks that every binding addresses a control the device has.
func (t BindingTable) Validate(caps Capabilities) error {
	switch t.Directions.Kind {
	case SourceAxis, SourceHat:
	default:
		return fmt.Errorf("input: directions bound to %s: %w", t.Directions.Kind, ErrInvalidSource)
	}
	if !t.Directions.fits(caps) {
		return fmt.Errorf("input: directions %s on %s: %w", t.Directions, caps, ErrBindingOutOfRange)
	}
	if t.Throttle == nil {
		return fmt.Errorf("input: no throttle binding: %w", ErrInvalidSource)
	}
	for _, src := range []Source{t.Accelerate(), t.Brake(), Button(t.Boost), Button(t.UseItem)} {
		if !src.fits(caps) {
			return fmt.Errorf("input: %s on %s: %w", src, caps, ErrBindingOutOfRange)
		}
	}
	return nil
}
