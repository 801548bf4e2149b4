package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/ragetrack/input"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidBinding = errors.New("settings: invalid binding")

//go:embed default_bindings.yaml
var defaultBindings []byte

// Settings is the immutable result of loading a bindings file.
type Settings struct {
	KeyMap        KeyMap
	KeyboardTable input.BindingTable
	Joysticks     map[string]input.BindingTable
	// Rejected holds joystick entries that failed to decode; those devices
	// fall back to synthesized bindings.
	Rejected map[string]error
}

// Joystick returns a copy of the saved table for name.
func (s *Settings) Joystick(name string) (input.BindingTable, bool) {
	if s == nil {
		return input.BindingTable{}, false
	}
	t, ok := s.Joysticks[name]
	return t, ok
}

// SavedTables returns a fresh copy of the joystick tables so callers cannot
// alter the loaded settings.
func (s *Settings) SavedTables() map[string]input.BindingTable {
	if s == nil {
		return nil
	}
	out := make(map[string]input.BindingTable, len(s.Joysticks))
	for name, t := range s.Joysticks {
		out[name] = t
	}
	return out
}

type fileSpec struct {
	Keyboard  keyboardSpec         `yaml:"keyboard"`
	Joysticks map[string]TableSpec `yaml:"joysticks"`
}

type keyboardSpec struct {
	Keys     KeyMap    `yaml:"keys"`
	Bindings TableSpec `yaml:"bindings"`
}

// KeyMap describes the virtual keyboard device: each axis is driven by a
// negative and positive key set, each button by a key set.
type KeyMap struct {
	Axes    []KeyAxis  `yaml:"axes"`
	Buttons [][]string `yaml:"buttons"`
}

// Capabilities is what the keyboard device built from m reports.
func (m KeyMap) Capabilities() input.Capabilities {
	return input.Capabilities{
		Name:    "Keyboard",
		Axes:    len(m.Axes),
		Buttons: len(m.Buttons),
	}
}

type KeyAxis struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
}

// TableSpec is the on-disk form of a binding table.
type TableSpec struct {
	Directions SourceSpec `yaml:"directions"`
	Accelerate SourceSpec `yaml:"accelerate"`
	Brake      SourceSpec `yaml:"brake"`
	Boost      SourceSpec `yaml:"boost"`
	UseItem    SourceSpec `yaml:"use_item"`
}

// SourceSpec decodes either "kind:index" or a [KIND, index] pair.
type SourceSpec struct {
	input.Source
	set bool
}

func (s *SourceSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		kind, idx, ok := strings.Cut(node.Value, ":")
		if !ok {
			return fmt.Errorf("%w: %q on line %d", ErrInvalidBinding, node.Value, node.Line)
		}
		return s.assign(kind, idx, node.Line)
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("%w: want [kind, index] on line %d", ErrInvalidBinding, node.Line)
		}
		return s.assign(node.Content[0].Value, node.Content[1].Value, node.Line)
	}
	return fmt.Errorf("%w: unexpected node on line %d", ErrInvalidBinding, node.Line)
}

func (s *SourceSpec) assign(kind, idx string, line int) error {
	k, err := input.ParseSourceKind(strings.TrimSpace(kind))
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrInvalidBinding, line, err)
	}
	i, err := strconv.Atoi(strings.TrimSpace(idx))
	if err != nil || i < 0 {
		return fmt.Errorf("%w: index %q on line %d", ErrInvalidBinding, idx, line)
	}
	s.Source = input.Source{Kind: k, Index: i}
	s.set = true
	return nil
}

// Table converts the on-disk form into a binding table.
func (t TableSpec) Table() (input.BindingTable, error) {
	for name, src := range map[string]SourceSpec{
		"directions": t.Directions,
		"accelerate": t.Accelerate,
		"brake":      t.Brake,
		"boost":      t.Boost,
		"use_item":   t.UseItem,
	} {
		if !src.set {
			return input.BindingTable{}, fmt.Errorf("%w: %s missing", ErrInvalidBinding, name)
		}
	}
	if k := t.Directions.Kind; k != input.SourceAxis && k != input.SourceHat {
		return input.BindingTable{}, fmt.Errorf("%w: directions cannot be a %s", ErrInvalidBinding, k)
	}
	if t.Boost.Kind != input.SourceButton || t.UseItem.Kind != input.SourceButton {
		return input.BindingTable{}, fmt.Errorf("%w: boost and use_item must be buttons", ErrInvalidBinding)
	}
	throttle, err := input.NewThrottle(t.Accelerate.Source, t.Brake.Source)
	if err != nil {
		return input.BindingTable{}, err
	}
	return input.BindingTable{
		Directions: t.Directions.Source,
		Throttle:   throttle,
		Boost:      t.Boost.Index,
		UseItem:    t.UseItem.Index,
	}, nil
}

// Parse decodes a bindings document. A bad keyboard section, including a
// table naming keys the key map does not define, fails the whole document; a
// bad joystick entry is recorded in Rejected and skipped.
func Parse(data []byte) (*Settings, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}

	kb, err := spec.Keyboard.Bindings.Table()
	if err != nil {
		return nil, fmt.Errorf("settings: keyboard: %w", err)
	}
	if len(spec.Keyboard.Keys.Axes) == 0 && len(spec.Keyboard.Keys.Buttons) == 0 {
		return nil, fmt.Errorf("settings: keyboard: %w: no keys", ErrInvalidBinding)
	}
	if err := kb.Validate(spec.Keyboard.Keys.Capabilities()); err != nil {
		return nil, fmt.Errorf("settings: keyboard: %w", err)
	}

	out := &Settings{
		KeyMap:        spec.Keyboard.Keys,
		KeyboardTable: kb,
		Joysticks:     make(map[string]input.BindingTable, len(spec.Joysticks)),
		Rejected:      make(map[string]error),
	}
	for name, ts := range spec.Joysticks {
		t, err := ts.Table()
		if err != nil {
			out.Rejected[name] = err
			continue
		}
		out.Joysticks[name] = t
	}
	return out, nil
}

// Default returns the embedded settings.
func Default() *Settings {
	s, err := Parse(defaultBindings)
	if err != nil {
		panic("settings: embedded defaults: " + err.Error())
	}
	return s
}

// Load reads path, falling back to the embedded defaults when path is empty.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Parse(defaultBindings)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("settings: %s: %w", path, err)
	}
	return s, nil
}

// LoadOrDefault loads path and falls back to the embedded defaults on any
// failure. Rejected joystick entries are logged.
func LoadOrDefault(path string, log zerolog.Logger) *Settings {
	s, err := Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Str("path", path).Msg("no saved bindings, using defaults")
		s = Default()
	case err != nil:
		log.Warn().Err(err).Str("path", path).Msg("using default bindings")
		s = Default()
	}
	for name, rerr := range s.Rejected {
		log.Warn().Err(rerr).Str("device", name).Msg("ignoring saved bindings")
	}
	return s
}
