// Package schedule runs cancellable repeating tasks.
//
// A Task owns at most one running loop. Starting it again cancels the prior
// loop and waits for it to exit before the new timer is armed, so two loops
// never overlap. Stop returns only after the loop has exited: no callback
// runs after Stop returns.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/wippyai/bitlab/errors"
)

// Task is a handle to a repeating callback.
type Task struct {
	clock  clock.Clock
	name   string
	op     sync.Mutex // serializes Start and Stop
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTask creates a stopped task driven by clk. A nil clock means the wall clock.
func NewTask(name string, clk clock.Clock) *Task {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Task{clock: clk, name: name}
}

// Start runs fn every interval until fn returns false, ctx is done, or Stop
// is called. Any prior run is stopped first. fn must not call Stop or Start
// on its own task; returning false ends the loop instead.
func (t *Task) Start(ctx context.Context, interval time.Duration, fn func() bool) error {
	if interval <= 0 {
		return errors.New(errors.PhaseSchedule, errors.KindInvalidInput).
			Value(interval).
			Detail("interval must be positive, got %s", interval).
			Build()
	}
	if fn == nil {
		return errors.InvalidInput(errors.PhaseSchedule, "nil callback")
	}

	t.op.Lock()
	defer t.op.Unlock()

	t.stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	timer := t.clock.NewTimer(interval)
	t.cancel = cancel
	t.done = done

	Logger().Debug("task started", zap.String("task", t.name), zap.Duration("interval", interval))

	go t.loop(loopCtx, timer, interval, fn, done)
	return nil
}

func (t *Task) loop(ctx context.Context, timer clock.Timer, interval time.Duration, fn func() bool, done chan struct{}) {
	defer close(done)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			if ctx.Err() != nil {
				return
			}
			if !fn() {
				Logger().Debug("task finished", zap.String("task", t.name))
				return
			}
			timer.Reset(interval)
		}
	}
}

// Stop cancels the running loop, if any, and waits for it to exit.
func (t *Task) Stop() {
	t.op.Lock()
	defer t.op.Unlock()
	t.stop()
}

func (t *Task) stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	Logger().Debug("task stopped", zap.String("task", t.name))
}

// Running reports whether a loop is active.
func (t *Task) Running() bool {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Drop stops the task. It lets a Registry release the task.
func (t *Task) Drop() {
	t.Stop()
}
