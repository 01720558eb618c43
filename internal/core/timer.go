package core

import "time"

// Accumulator gates simulation ticks on elapsed time. Unlike a fixed-step
// loop it never catches up: at most one tick is reported per Add call and
// the accumulated time is discarded when it fires.
type Accumulator struct {
	step        time.Duration
	accumulated time.Duration
}

// NewAccumulator constructs an Accumulator that fires every step.
func NewAccumulator(step time.Duration) *Accumulator {
	a := &Accumulator{}
	a.SetStep(step)
	return a
}

// SetStep changes the interval between ticks. Non-positive steps fire on
// every call.
func (a *Accumulator) SetStep(step time.Duration) {
	if step < 0 {
		step = 0
	}
	a.step = step
}

// Step returns the configured interval.
func (a *Accumulator) Step() time.Duration { return a.step }

// Add accumulates elapsed time and reports whether a tick is due.
func (a *Accumulator) Add(elapsed time.Duration) bool {
	if elapsed > 0 {
		a.accumulated += elapsed
	}
	if a.accumulated >= a.step {
		a.accumulated = 0
		return true
	}
	return false
}

// Reset discards any accumulated time.
func (a *Accumulator) Reset() { a.accumulated = 0 }
