// Package game wires input, simulation and rendering into an ebiten game.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragetrack/config"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/physics"
	"github.com/milk9111/ragetrack/physics/chipmunk"
	"github.com/milk9111/ragetrack/render"
	"github.com/milk9111/ragetrack/settings"
	"github.com/milk9111/ragetrack/vehicle"
	"github.com/rs/zerolog"
)

var _ ebiten.Game = (*Game)(nil)

// Session is the state the frame systems operate on.
type Session struct {
	Registry *input.Registry
	World    *physics.World
	Backend  *chipmunk.Backend
	View     *render.View
	// Elapsed is this frame's real time in seconds.
	Elapsed float64
	Log     zerolog.Logger
}

type Options struct {
	Config   *config.Config
	Settings *settings.Settings
	Keyboard input.Device
	// Bots are registered as joysticks after the discovered gamepads.
	Bots []input.Device
	// Discover is called once from the first Update, when ebiten can see
	// gamepads.
	Discover func() ([]input.Device, input.EventPump)
	Tuning   <-chan config.Tuning
	Log      zerolog.Logger
	Now      func() time.Time
}

type Game struct {
	opts    Options
	session *Session
	frame   Frame
	last    time.Time
	started bool
}

func New(opts Options) (*Game, error) {
	if opts.Config == nil || opts.Settings == nil {
		return nil, errors.New("game: config and settings are required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg := opts.Config

	backend := chipmunk.New(chipmunk.Config{
		Gravity:    cfg.Physics.Gravity,
		Iterations: cfg.Physics.Iterations,
		Friction:   chipmunk.DefaultConfig().Friction,
	})
	backend.AddGround(Track())

	world, err := physics.NewWorld(backend, cfg.PhysicsConfig(), opts.Log)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	view := render.NewView(backend, cfg.Window.Width, cfg.Window.Height, cfg.Debug)
	world.SetPublisher(view)

	return &Game{
		opts: opts,
		session: &Session{
			World:   world,
			Backend: backend,
			View:    view,
			Log:     opts.Log.With().Str("component", "game").Logger(),
		},
		frame: Frame{
			Poll:     inputStage{},
			Tune:     &tuningStage{updates: opts.Tuning},
			Simulate: physicsStage{},
		},
	}, nil
}

func (g *Game) Session() *Session {
	return g.session
}

// start discovers devices, builds the registry and spawns one car per
// controller.
func (g *Game) start() error {
	var (
		joysticks []input.Device
		pump      input.EventPump
	)
	if g.opts.Discover != nil {
		joysticks, pump = g.opts.Discover()
	}
	joysticks = append(joysticks, g.opts.Bots...)

	reg, err := input.NewRegistry(input.RegistryConfig{
		Keyboard:      g.opts.Keyboard,
		KeyboardTable: g.opts.Settings.KeyboardTable,
		Joysticks:     joysticks,
		Saved:         g.opts.Settings.SavedTables(),
		Pump:          pump,
		Logger:        g.opts.Log,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	s := g.session
	for i, ctrl := range reg.Controllers() {
		car := vehicle.Spawn(s.Backend, spawnPoint(i), vehicle.DefaultSpec())
		s.World.AddVehicle(car, ctrl)
		s.View.Label(car, ctrl.Name())
	}
	s.View.ShowControllers(reg.Controllers())
	s.Registry = reg

	s.Log.Info().
		Int("controllers", reg.Len()).
		Int("excluded", len(reg.Excluded())).
		Msg("race started")
	return nil
}

func (g *Game) Update() error {
	now := g.opts.Now()
	if !g.started {
		if err := g.start(); err != nil {
			return err
		}
		g.started = true
		g.last = now
	}
	g.session.Elapsed = now.Sub(g.last).Seconds()
	g.last = now

	g.frame.Run(g.session)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.session.View.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.session.View.Layout()
}
