package physics

import "math"

// Stepper converts variable frame time into whole fixed-size steps.
type Stepper struct {
	step        float64
	eps         float64
	accumulator float64
	maxSteps    int
}

// NewStepper creates a stepper; maxSteps <= 0 means no per-frame cap.
func NewStepper(step float64, maxSteps int) *Stepper {
	if step <= 0 {
		step = DefaultConfig().StepSize
	}
	return &Stepper{
		step:     step,
		eps:      step * 1e-9,
		maxSteps: maxSteps,
	}
}

func (s *Stepper) StepSize() float64 {
	return s.step
}

// Accumulator returns the residual unsimulated time.
func (s *Stepper) Accumulator() float64 {
	return s.accumulator
}

// Advance adds elapsed to the accumulator and calls fn once per whole step.
// It returns the number of steps taken and the time discarded by the cap.
func (s *Stepper) Advance(elapsed float64, fn func(dt float64)) (steps int, dropped float64) {
	if elapsed > 0 && !math.IsInf(elapsed, 0) {
		s.accumulator += elapsed
	}

	// exact multiples of the step must not lose a step to rounding
	for s.accumulator+s.eps >= s.step {
		if s.maxSteps > 0 && steps >= s.maxSteps {
			rem := math.Mod(s.accumulator, s.step)
			dropped = s.accumulator - rem
			s.accumulator = rem
			break
		}
		fn(s.step)
		s.accumulator -= s.step
		steps++
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return steps, dropped
}

// Reset clears the accumulator.
func (s *Stepper) Reset() {
	s.accumulator = 0
}
