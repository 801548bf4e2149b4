// Package config loads the game configuration with viper: built-in defaults,
// an optional ragetrack.yaml and RAGETRACK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/ragetrack/physics"
	"github.com/spf13/viper"
)

const (
	fileName  = "ragetrack"
	fileType  = "yaml"
	envPrefix = "RAGETRACK"
)

var ErrInvalid = errors.New("config: invalid value")

type Physics struct {
	StepHz           float64 `mapstructure:"step_hz"`
	Gravity          float64 `mapstructure:"gravity"`
	LinearFriction   float64 `mapstructure:"linear_friction"`
	AngularFriction  float64 `mapstructure:"angular_friction"`
	MaxStepsPerFrame int     `mapstructure:"max_steps_per_frame"`
	Iterations       int     `mapstructure:"iterations"`
}

// StepSize is the fixed simulation step in seconds.
func (p Physics) StepSize() float64 {
	return 1 / p.StepHz
}

type Input struct {
	SettingsFile string   `mapstructure:"settings_file"`
	Scripts      []string `mapstructure:"scripts"`
}

type Window struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Log     Log     `mapstructure:"log"`
	Physics Physics `mapstructure:"physics"`
	Input   Input   `mapstructure:"input"`
	Window  Window  `mapstructure:"window"`
	Debug   bool    `mapstructure:"debug"`

	file string
}

// File returns the config file that was read, or "" when only defaults and
// environment applied.
func (c *Config) File() string {
	return c.file
}

// PhysicsConfig converts the tuning into the simulation's config.
func (c *Config) PhysicsConfig() physics.Config {
	cfg := physics.DefaultConfig()
	cfg.StepSize = c.Physics.StepSize()
	cfg.MaxStepsPerFrame = c.Physics.MaxStepsPerFrame
	cfg.LinearFriction = c.Physics.LinearFriction
	cfg.AngularFriction = c.Physics.AngularFriction
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("debug", false)

	v.SetDefault("physics.step_hz", 900)
	v.SetDefault("physics.gravity", -9.81)
	v.SetDefault("physics.linear_friction", 0.9)
	v.SetDefault("physics.angular_friction", 0.9)
	v.SetDefault("physics.max_steps_per_frame", 120)
	v.SetDefault("physics.iterations", 10)

	v.SetDefault("input.settings_file", "user/bindings.yaml")
	v.SetDefault("input.scripts", []string{})

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load searches dir for ragetrack.yaml. A missing file is not an error.
func Load(dir string) (*Config, error) {
	v := newViper()
	v.SetConfigName(fileName)
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", dir, err)
		}
	}
	return decode(v)
}

// LoadFile reads the config file at path, which must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	c.file = v.ConfigFileUsed()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch {
	case c.Physics.StepHz <= 0:
		return fmt.Errorf("%w: physics.step_hz must be positive, got %v", ErrInvalid, c.Physics.StepHz)
	case c.Physics.MaxStepsPerFrame < 0:
		return fmt.Errorf("%w: physics.max_steps_per_frame must not be negative, got %d", ErrInvalid, c.Physics.MaxStepsPerFrame)
	case c.Physics.LinearFriction < 0 || c.Physics.AngularFriction < 0:
		return fmt.Errorf("%w: physics friction must not be negative", ErrInvalid)
	}
	return nil
}
