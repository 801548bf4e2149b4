package game

import "github.com/milk9111/ragetrack/config"

// inputStage pumps platform events and polls every controller.
type inputStage struct{}

func (inputStage) Update(s *Session) {
	if s.Registry == nil {
		return
	}
	s.Registry.FetchEvents()
}

// tuningStage applies config reloads between frames, never mid-step.
type tuningStage struct {
	updates <-chan config.Tuning
}

func (t *tuningStage) Update(s *Session) {
	for {
		select {
		case tuning, ok := <-t.updates:
			if !ok {
				t.updates = nil
				return
			}
			s.World.Integrator().SetFriction(tuning.LinearFriction, tuning.AngularFriction)
			s.Log.Info().
				Float64("linear_friction", tuning.LinearFriction).
				Float64("angular_friction", tuning.AngularFriction).
				Msg("applied physics tuning")
		default:
			return
		}
	}
}

// physicsStage advances the simulation by the frame's elapsed time.
type physicsStage struct{}

func (physicsStage) Update(s *Session) {
	s.World.Frame(s.Elapsed)
}
