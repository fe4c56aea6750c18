package adder

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/wippyai/bitlab/schedule"
)

// DefaultStepInterval is the pause between animation steps.
const DefaultStepInterval = 1500 * time.Millisecond

// Stepper walks through a Result one step at a time.
//
// Step 0 shows only the operands. Step k, for 1 <= k <= w, reveals the k
// least significant positions. Advancing past the last step returns to 0
// and stops the animation.
type Stepper struct {
	mu       sync.Mutex
	result   Result
	current  int
	interval time.Duration
	task     *schedule.Task
	onStep   func(int)
}

// NewStepper creates a stepper over r. A nil clock means the wall clock.
// A non-positive interval means DefaultStepInterval.
func NewStepper(r Result, interval time.Duration, clk clock.Clock) *Stepper {
	if interval <= 0 {
		interval = DefaultStepInterval
	}
	return &Stepper{
		result:   r,
		interval: interval,
		task:     schedule.NewTask("adder-stepper", clk),
	}
}

// OnStep registers fn to run after every automatic advance with the new step.
// It must be set before Start.
func (s *Stepper) OnStep(fn func(int)) {
	s.mu.Lock()
	s.onStep = fn
	s.mu.Unlock()
}

// TotalSteps is the number of positions plus the initial step.
func (s *Stepper) TotalSteps() int {
	return len(s.result.Steps) + 1
}

// Current returns the current step.
func (s *Stepper) Current() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Result returns the addition being animated.
func (s *Stepper) Result() Result {
	return s.result
}

// Visible returns the steps revealed so far, MSB first.
func (s *Stepper) Visible() []Step {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	n := len(s.result.Steps)
	if cur > n {
		cur = n
	}
	return s.result.Steps[n-cur:]
}

// Advance moves to the next step. It returns false once the final step has
// been passed, after resetting to step 0.
func (s *Stepper) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current+1 >= s.TotalSteps() {
		s.current = 0
		return false
	}
	s.current++
	return true
}

// Reset returns to step 0.
func (s *Stepper) Reset() {
	s.mu.Lock()
	s.current = 0
	s.mu.Unlock()
}

// Start animates from step 0, advancing every interval until the end.
func (s *Stepper) Start(ctx context.Context) error {
	s.Reset()
	return s.task.Start(ctx, s.interval, func() bool {
		more := s.Advance()
		s.mu.Lock()
		fn, cur := s.onStep, s.current
		s.mu.Unlock()
		if fn != nil {
			fn(cur)
		}
		return more
	})
}

// Stop halts the animation without changing the current step.
func (s *Stepper) Stop() {
	s.task.Stop()
}

// Running reports whether the animation is active.
func (s *Stepper) Running() bool {
	return s.task.Running()
}

// Drop stops the stepper so it can be held in a schedule.Registry.
func (s *Stepper) Drop() {
	s.Stop()
}
