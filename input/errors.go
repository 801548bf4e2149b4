package input

import (
	"errors"
	"fmt"
)

var (
	ErrUnusableDevice = errors.New("input: unusable device")
	ErrDeviceRead     = errors.New("input: device read failed")
	ErrMixedThrottle  = errors.New("input: accelerate and brake must share a source")
)

// UnusableDeviceError reports a device the resolver cannot bind. It excludes
// that one device from the registry.
type UnusableDeviceError struct {
	Device string
	Reason string
}

func (e *UnusableDeviceError) Error() string {
	return fmt.Sprintf("input: unusable device %q: %s", e.Device, e.Reason)
}

func (e *UnusableDeviceError) Is(target error) bool {
	return target == ErrUnusableDevice
}

// DeviceReadFault is a transient failure to read one device. The controller
// keeps its previous frame.
type DeviceReadFault struct {
	Device string
	Err    error
}

func (e *DeviceReadFault) Error() string {
	return fmt.Sprintf("input: read %q: %v", e.Device, e.Err)
}

func (e *DeviceReadFault) Is(target error) bool {
	return target == ErrDeviceRead
}

func (e *DeviceReadFault) Unwrap() error {
	return e.Err
}
