package app

// Stepper is a fixed timestep accumulator.
type Stepper struct {
	FixedDt  float32
	MaxSteps int

	acc float32
}

// Advance adds dt to the accumulator and calls step(FixedDt) while a whole
// step is available, at most MaxSteps times. What is left stays in the
// accumulator for the next call; steps beyond MaxSteps are not run. It
// returns the number of steps taken.
func (s *Stepper) Advance(dt float32, step func(dt float32)) int {
	if s.FixedDt <= 0 {
		return 0
	}
	s.acc += dt
	n := 0
	for s.acc >= s.FixedDt && (s.MaxSteps <= 0 || n < s.MaxSteps) {
		step(s.FixedDt)
		s.acc -= s.FixedDt
		n++
	}
	return n
}

// Remainder returns the accumulated time not yet stepped.
func (s *Stepper) Remainder() float32 { return s.acc }

// Reset empties the accumulator.
func (s *Stepper) Reset() { s.acc = 0 }
