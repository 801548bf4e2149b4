package input

import "fmt"

// Controller couples a device with its binding table and caches the most
// recent control frame.
type Controller struct {
	device Device
	caps   Capabilities
	table  BindingTable
	state  RawState
	frame  ControlFrame

	faulted bool
}

// NewController validates table against the device and allocates the raw
// state buffers.
func NewController(d Device, table BindingTable) (*Controller, error) {
	if d == nil {
		return nil, fmt.Errorf("input: nil device")
	}
	caps := Probe(d)
	if err := table.Validate(caps); err != nil {
		return nil, err
	}
	return &Controller{
		device: d,
		caps:   caps,
		table:  table,
		state:  newRawState(caps),
	}, nil
}

func (c *Controller) Name() string {
	if c == nil {
		return ""
	}
	return c.caps.Name
}

func (c *Controller) Capabilities() Capabilities {
	return c.caps
}

func (c *Controller) Bindings() BindingTable {
	return c.table
}

// Frame returns a snapshot of the last successfully polled frame.
func (c *Controller) Frame() ControlFrame {
	if c == nil {
		return ControlFrame{}
	}
	return c.frame
}

// Faulted reports whether the last poll failed.
func (c *Controller) Faulted() bool {
	return c != nil && c.faulted
}

// Poll reads the device and refreshes the cached frame in place. On failure
// the previous frame is kept and a *DeviceReadFault is returned.
func (c *Controller) Poll() error {
	if err := c.device.Read(&c.state); err != nil {
		c.faulted = true
		return &DeviceReadFault{Device: c.caps.Name, Err: err}
	}
	if err := synthesize(c.table, &c.state, &c.frame); err != nil {
		c.faulted = true
		return &DeviceReadFault{Device: c.caps.Name, Err: err}
	}
	c.faulted = false
	return nil
}
