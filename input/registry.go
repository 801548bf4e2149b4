package input

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventPump refreshes platform input state. It must not block.
type EventPump interface {
	PumpEvents()
}

// RegistryConfig is everything the registry needs at startup. Saved maps
// controller names to binding tables loaded from settings; it is read, never
// written.
type RegistryConfig struct {
	Keyboard      Device
	KeyboardTable BindingTable
	Joysticks     []Device
	Saved         map[string]BindingTable
	Pump          EventPump
	Logger        zerolog.Logger
}

// Registry owns the active controllers: the keyboard first, then every usable
// joystick in discovery order.
type Registry struct {
	keyboard    *Controller
	controllers []*Controller
	excluded    []error
	pump        EventPump
	log         zerolog.Logger

	faults   metric.Int64Counter
	unusable metric.Int64Counter
}

// NewRegistry resolves bindings for every device. Unusable joysticks are
// excluded and reported through Excluded; a keyboard table that does not fit
// the keyboard device is an error.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	r := &Registry{
		pump: cfg.Pump,
		log:  cfg.Logger.With().Str("component", "input").Logger(),
	}

	m := meter()
	var err error
	r.faults, err = m.Int64Counter(
		"input.device.faults",
		metric.WithDescription("Device reads that failed and kept a stale frame"),
	)
	if err != nil {
		return nil, fmt.Errorf("input: creating faults counter: %w", err)
	}
	r.unusable, err = m.Int64Counter(
		"input.devices.unusable",
		metric.WithDescription("Devices excluded at registration"),
	)
	if err != nil {
		return nil, fmt.Errorf("input: creating unusable counter: %w", err)
	}

	if cfg.Keyboard != nil {
		kb, err := NewController(cfg.Keyboard, cfg.KeyboardTable)
		if err != nil {
			return nil, fmt.Errorf("input: keyboard bindings: %w", err)
		}
		r.keyboard = kb
		r.controllers = append(r.controllers, kb)
		r.log.Info().Str("device", kb.Name()).Msg("registered keyboard")
	}

	for _, d := range cfg.Joysticks {
		c, err := r.register(d, cfg.Saved)
		if err != nil {
			r.excluded = append(r.excluded, err)
			r.unusable.Add(context.Background(), 1)
			r.log.Warn().Err(err).Str("device", Probe(d).Name).Msg("excluding device")
			continue
		}
		r.controllers = append(r.controllers, c)
	}

	return r, nil
}

func (r *Registry) register(d Device, saved map[string]BindingTable) (*Controller, error) {
	caps := Probe(d)

	var table BindingTable
	var err error
	if s, ok := saved[caps.Name]; ok {
		if verr := s.Validate(caps); verr != nil {
			r.log.Warn().Err(verr).Str("device", caps.Name).Msg("saved bindings do not fit device, synthesizing")
			table, err = Resolve(caps, nil)
		} else {
			table, err = Resolve(caps, &s)
		}
	} else {
		table, err = Resolve(caps, nil)
	}
	if err != nil {
		return nil, err
	}

	c, err := NewController(d, table)
	if err != nil {
		return nil, err
	}
	r.log.Info().
		Str("device", caps.Name).
		Stringer("directions", table.Directions).
		Stringer("accelerate", table.Accelerate()).
		Stringer("brake", table.Brake()).
		Int("boost", table.Boost).
		Int("use_item", table.UseItem).
		Msg("registered joystick")
	return c, nil
}

// FetchEvents pumps platform events and polls every controller. A failing
// controller keeps its previous frame; the others are still polled.
func (r *Registry) FetchEvents() {
	if r == nil {
		return
	}
	if r.pump != nil {
		r.pump.PumpEvents()
	}
	for _, c := range r.controllers {
		wasFaulted := c.Faulted()
		err := c.Poll()
		if err == nil {
			if wasFaulted {
				r.log.Info().Str("device", c.Name()).Msg("device recovered")
			}
			continue
		}
		r.faults.Add(context.Background(), 1, metric.WithAttributes(attribute.String("device", c.Name())))
		// log the transition only; a disconnected pad fails every tick
		if !wasFaulted {
			var fault *DeviceReadFault
			if errors.As(err, &fault) {
				r.log.Warn().Err(fault.Err).Str("device", fault.Device).Msg("device read fault, keeping last frame")
			}
		}
	}
}

// Controllers returns the active controllers. The slice must not be modified.
func (r *Registry) Controllers() []*Controller {
	if r == nil {
		return nil
	}
	return r.controllers
}

// Keyboard returns the keyboard controller, if one was registered.
func (r *Registry) Keyboard() (*Controller, bool) {
	if r == nil || r.keyboard == nil {
		return nil, false
	}
	return r.keyboard, true
}

// Excluded returns the registration errors of devices left out.
func (r *Registry) Excluded() []error {
	if r == nil {
		return nil
	}
	return r.excluded
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.controllers)
}
