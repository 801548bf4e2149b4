package input

const (
	reasonNoDirection = "no direction source"
	reasonFewButtons  = "insufficient buttons"
)

// Resolve returns the binding table for a probed device. A saved table always
// wins and is returned unchanged; otherwise one is synthesized from the
// device's capabilities in fixed priority order.
func Resolve(caps Capabilities, saved *BindingTable) (BindingTable, error) {
	if saved != nil {
		return *saved, nil
	}

	var table BindingTable
	switch {
	case caps.Axes >= 2:
		table.Directions = Axis(0)
	case caps.Hats >= 1:
		table.Directions = Hat(0)
	default:
		return BindingTable{}, &UnusableDeviceError{Device: caps.Name, Reason: reasonNoDirection}
	}

	switch {
	case caps.Buttons >= 4:
		table.Throttle = ButtonThrottle{AccelerateButton: 1, BrakeButton: 3}
		table.Boost = 0
		table.UseItem = 2
	case caps.Buttons >= 2 && caps.Axes >= 2:
		table.Throttle = AxisThrottle{Stick: 0}
		table.Boost = 0
		table.UseItem = 1
	case caps.Buttons >= 2 && caps.Hats >= 1:
		table.Throttle = HatThrottle{Hat: 0}
		table.Boost = 0
		table.UseItem = 1
	default:
		return BindingTable{}, &UnusableDeviceError{Device: caps.Name, Reason: reasonFewButtons}
	}
	return table, nil
}
