package game

// Stage is one part of a frame.
type Stage interface {
	Update(s *Session)
}

// Frame is the fixed per-frame order: every controller is polled, reloaded
// tuning is applied, then the simulation advances by the frame's elapsed
// time. Nil stages are skipped.
type Frame struct {
	Poll     Stage
	Tune     Stage
	Simulate Stage
}

func (f Frame) Run(s *Session) {
	for _, stage := range [...]Stage{f.Poll, f.Tune, f.Simulate} {
		if stage != nil {
			stage.Update(s)
		}
	}
}
