package segment

import (
	"context"
	"math/big"
	"slices"
	"sync"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/radix"
	"github.com/wippyai/bitlab/schedule"
)

// MaxPresets are the selectable largest counter values.
var MaxPresets = []int{1, 3, 7, 9, 15}

// SpeedPresets are the selectable tick intervals.
var SpeedPresets = []time.Duration{
	100 * time.Millisecond,
	500 * time.Millisecond,
	1000 * time.Millisecond,
	2000 * time.Millisecond,
	3000 * time.Millisecond,
}

const (
	DefaultMax   = 15
	DefaultSpeed = time.Second
	DefaultRadix = bitlab.Hex
)

// State is a snapshot of a Counter.
type State struct {
	Value   int           `json:"value"`
	Display string        `json:"display"`
	Next    int           `json:"next"`
	Modulus int           `json:"modulus"`
	Radix   bitlab.Radix  `json:"radix"`
	Speed   time.Duration `json:"speed"`
	Running bool          `json:"running"`
	Cycles  int           `json:"cycles"`
}

// Counter counts 0, 1, ..., max, 0, ... on a timer.
type Counter struct {
	mu       sync.Mutex
	value    int
	max      int
	cycles   int
	speed    time.Duration
	radix    bitlab.Radix
	ctx      context.Context
	task     *schedule.Task
	onChange func(State)
}

// NewCounter creates a stopped counter at 0 with the default settings.
// A nil clock means the wall clock.
func NewCounter(clk clock.Clock) *Counter {
	return &Counter{
		max:   DefaultMax,
		speed: DefaultSpeed,
		radix: DefaultRadix,
		task:  schedule.NewTask("segment-counter", clk),
	}
}

// OnChange registers fn to receive the state after every tick or change.
// fn runs without the counter's lock held and may call State.
func (c *Counter) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current snapshot.
func (c *Counter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Counter) stateLocked() State {
	return State{
		Value:   c.value,
		Display: radix.Format(big.NewInt(int64(c.value)), c.radix),
		Next:    (c.value + 1) % (c.max + 1),
		Modulus: c.max + 1,
		Radix:   c.radix,
		Speed:   c.speed,
		Running: c.task.Running(),
		Cycles:  c.cycles,
	}
}

// Tick advances the counter by one, wrapping after max.
func (c *Counter) Tick() State {
	c.mu.Lock()
	c.value = (c.value + 1) % (c.max + 1)
	if c.value == 0 {
		c.cycles++
	}
	s := c.stateLocked()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(s)
	}
	return s
}

// Start begins ticking at the configured speed until ctx is done or Stop.
// Starting a running counter restarts its timer.
func (c *Counter) Start(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	speed := c.speed
	c.mu.Unlock()

	if err := c.task.Start(ctx, speed, func() bool {
		c.Tick()
		return true
	}); err != nil {
		return err
	}
	Logger().Debug("counter started", zap.Duration("speed", speed))
	c.notify()
	return nil
}

// Stop halts ticking. The value is kept.
func (c *Counter) Stop() {
	c.task.Stop()
	c.notify()
}

// Running reports whether the counter is ticking.
func (c *Counter) Running() bool {
	return c.task.Running()
}

// Reset stops the counter and returns it to 0.
func (c *Counter) Reset() {
	c.task.Stop()

	c.mu.Lock()
	c.value = 0
	c.cycles = 0
	c.mu.Unlock()
	c.notify()
}

// SetMax selects a preset largest value and resets the count to 0.
// A running counter keeps running from 0.
func (c *Counter) SetMax(max int) error {
	if !slices.Contains(MaxPresets, max) {
		return errors.New(errors.PhaseDisplay, errors.KindOutOfRange).
			Path("max").
			Value(max).
			Detail("max %d is not one of %v", max, MaxPresets).
			Build()
	}

	c.mu.Lock()
	c.max = max
	c.value = 0
	c.cycles = 0
	c.mu.Unlock()

	return c.restartOrNotify()
}

// SetSpeed selects a preset tick interval.
func (c *Counter) SetSpeed(speed time.Duration) error {
	if !slices.Contains(SpeedPresets, speed) {
		return errors.New(errors.PhaseDisplay, errors.KindOutOfRange).
			Path("speed").
			Value(speed).
			Detail("speed %s is not one of the presets", speed).
			Build()
	}

	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()

	return c.restartOrNotify()
}

// SetRadix selects the display radix.
func (c *Counter) SetRadix(r bitlab.Radix) error {
	if err := r.Check(errors.PhaseDisplay); err != nil {
		return err
	}
	c.mu.Lock()
	c.radix = r
	c.mu.Unlock()
	c.notify()
	return nil
}

// Drop stops the counter so it can be held in a schedule.Registry.
func (c *Counter) Drop() {
	c.task.Stop()
}

func (c *Counter) restartOrNotify() error {
	if !c.task.Running() {
		c.notify()
		return nil
	}
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	return c.Start(ctx)
}

func (c *Counter) notify() {
	c.mu.Lock()
	s := c.stateLocked()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}
