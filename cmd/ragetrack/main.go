package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ragetrack/config"
	"github.com/milk9111/ragetrack/game"
	"github.com/milk9111/ragetrack/input"
	"github.com/milk9111/ragetrack/logging"
	"github.com/milk9111/ragetrack/platform"
	"github.com/milk9111/ragetrack/settings"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "config file (default: ragetrack.yaml in the working directory, if present)")
	debug := flag.Bool("debug", false, "enable debug view")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		bootLog := logging.New("info", os.Stderr)
		bootLog.Fatal().Err(err).Msg("loading config")
	}
	if *debug {
		cfg.Debug = true
	}

	log := logging.New(cfg.Log.Level, os.Stdout)
	if cfg.File() != "" {
		log.Info().Str("file", cfg.File()).Msg("loaded config")
	}

	bindings := settings.LoadOrDefault(cfg.Input.SettingsFile, log)

	keyboard, err := platform.NewKeyboard(bindings.KeyMap)
	if err != nil {
		log.Fatal().Err(err).Msg("building keyboard device")
	}

	opts := game.Options{
		Config:   cfg,
		Settings: bindings,
		Keyboard: keyboard,
		Bots:     loadBots(cfg.Input.Scripts, log),
		Discover: func() ([]input.Device, input.EventPump) {
			pump := platform.NewPump()
			return platform.DiscoverGamepads(pump), pump
		},
		Log: log,
	}

	if file := cfg.File(); file != "" {
		watcher, err := config.Watch(file)
		if err != nil {
			log.Warn().Err(err).Msg("config reload disabled")
		} else {
			defer watcher.Close()
			opts.Tuning = watcher.Updates
			go func() {
				for err := range watcher.Errors {
					log.Warn().Err(err).Msg("config reload failed")
				}
			}()
		}
	}

	g, err := game.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("building game")
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("ragetrack")

	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("game exited")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(".")
}

// loadBots compiles every configured bot script; a script that fails to
// compile is skipped.
func loadBots(paths []string, log zerolog.Logger) []input.Device {
	var bots []input.Device
	for _, path := range paths {
		bot, err := platform.LoadScriptDevice(filepath.Clean(path))
		if err != nil {
			log.Warn().Err(err).Str("script", path).Msg("skipping bot")
			continue
		}
		bots = append(bots, bot)
	}
	return bots
}
