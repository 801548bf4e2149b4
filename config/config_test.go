package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "ragetrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 900.0, c.Physics.StepHz)
	assert.Equal(t, 1.0/900.0, c.Physics.StepSize())
	assert.Equal(t, -9.81, c.Physics.Gravity)
	assert.Equal(t, 0.9, c.Physics.LinearFriction)
	assert.Equal(t, 0.9, c.Physics.AngularFriction)
	assert.Equal(t, 120, c.Physics.MaxStepsPerFrame)
	assert.Equal(t, 10, c.Physics.Iterations)
	assert.Equal(t, "user/bindings.yaml", c.Input.SettingsFile)
	assert.Empty(t, c.Input.Scripts)
	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.False(t, c.Debug)
	assert.Empty(t, c.File())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
log:
  level: debug
physics:
  step_hz: 600
  linear_friction: 0.5
input:
  scripts: [bots/weave.tengo]
debug: true
`)

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 600.0, c.Physics.StepHz)
	assert.Equal(t, 0.5, c.Physics.LinearFriction)
	assert.Equal(t, 0.9, c.Physics.AngularFriction)
	assert.Equal(t, []string{"bots/weave.tengo"}, c.Input.Scripts)
	assert.True(t, c.Debug)
	assert.Equal(t, path, c.File())

	pc := c.PhysicsConfig()
	assert.Equal(t, 1.0/600.0, pc.StepSize)
	assert.Equal(t, 0.5, pc.LinearFriction)
	assert.Equal(t, 120, pc.MaxStepsPerFrame)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RAGETRACK_PHYSICS_MAX_STEPS_PER_FRAME", "30")
	t.Setenv("RAGETRACK_LOG_LEVEL", "warn")

	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 30, c.Physics.MaxStepsPerFrame)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero step rate", "physics:\n  step_hz: 0\n"},
		{"negative cap", "physics:\n  max_steps_per_frame: -1\n"},
		{"negative friction", "physics:\n  angular_friction: -0.1\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, c.body)

			_, err := Load(dir)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "physics: [unterminated\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWatchDeliversTuning(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "physics:\n  linear_friction: 0.9\n")

	w, err := Watch(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	writeConfig(t, dir, "physics:\n  linear_friction: 0.4\n  angular_friction: 0.3\n")

	want := Tuning{LinearFriction: 0.4, AngularFriction: 0.3}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Updates:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatal("no tuning update")
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "debug: false\n")
	w, err := Watch(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
