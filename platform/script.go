package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ragetrack/input"
)

// ScriptDevice is a bot driver written in tengo. Each Read sets the global
// tick and runs the script, which assigns steer and throttle (floats in
// [-1, 1]) and buttons (an array of bools). The device exposes one stick and
// as many buttons as the first run produced.
type ScriptDevice struct {
	name     string
	compiled *tengo.Compiled
	buttons  int
	tick     int64
}

// LoadScriptDevice compiles the script at path; the device is named after the
// file.
func LoadScriptDevice(path string) (*ScriptDevice, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("platform: reading script %q: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewScriptDevice("bot:"+name, src)
}

func NewScriptDevice(name string, src []byte) (*ScriptDevice, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("steer", 0.0)
	_ = script.Add("throttle", 0.0)
	_ = script.Add("buttons", []interface{}{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("platform: compiling %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("platform: running %s: %w", name, err)
	}

	return &ScriptDevice{
		name:     name,
		compiled: compiled,
		buttons:  len(compiled.Get("buttons").Array()),
	}, nil
}

func (d *ScriptDevice) Name() string     { return d.name }
func (d *ScriptDevice) AxisCount() int   { return 2 }
func (d *ScriptDevice) HatCount() int    { return 0 }
func (d *ScriptDevice) ButtonCount() int { return d.buttons }

func (d *ScriptDevice) Read(state *input.RawState) error {
	d.tick++
	if err := d.compiled.Set("tick", d.tick); err != nil {
		return err
	}
	if err := d.compiled.Run(); err != nil {
		return err
	}

	if len(state.Axes) >= 2 {
		state.Axes[0] = clampUnit(d.compiled.Get("steer").Float())
		// stick up is negative
		state.Axes[1] = -clampUnit(d.compiled.Get("throttle").Float())
	}
	buttons := d.compiled.Get("buttons").Array()
	for i := range state.Buttons {
		pressed := false
		if i < len(buttons) {
			pressed, _ = buttons[i].(bool)
		}
		state.Buttons[i] = pressed
	}
	return nil
}

func clampUnit(v float64) float64 {
	return max(-1, min(1, v))
}
