package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
)

const interval = 500 * time.Millisecond

func waitTick(t *testing.T, ticks <-chan int) int {
	t.Helper()
	select {
	case n := <-ticks:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tick")
		return 0
	}
}

func TestTask_Ticks(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	task := NewTask("ticks", clk)
	defer task.Stop()

	ticks := make(chan int, 10)
	n := 0
	err := task.Start(context.Background(), interval, func() bool {
		n++
		ticks <- n
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 3; want++ {
		if err := clk.WaitAdvance(interval, time.Second, 1); err != nil {
			t.Fatal(err)
		}
		if got := waitTick(t, ticks); got != want {
			t.Errorf("tick = %d, want %d", got, want)
		}
	}
	if !task.Running() {
		t.Error("task should be running")
	}
}

func TestTask_FinishesWhenCallbackReturnsFalse(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	task := NewTask("finite", clk)

	ticks := make(chan int, 10)
	n := 0
	err := task.Start(context.Background(), interval, func() bool {
		n++
		ticks <- n
		return n < 2
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := clk.WaitAdvance(interval, time.Second, 1); err != nil {
			t.Fatal(err)
		}
		waitTick(t, ticks)
	}

	deadline := time.Now().Add(2 * time.Second)
	for task.Running() {
		if time.Now().After(deadline) {
			t.Fatal("task still running after callback returned false")
		}
		time.Sleep(time.Millisecond)
	}
	task.Stop()
}

func TestTask_StopHaltsCallbacks(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	task := NewTask("stop", clk)

	ticks := make(chan int, 10)
	err := task.Start(context.Background(), interval, func() bool {
		ticks <- 1
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := clk.WaitAdvance(interval, time.Second, 1); err != nil {
		t.Fatal(err)
	}
	waitTick(t, ticks)

	task.Stop()
	if task.Running() {
		t.Error("task running after Stop")
	}

	clk.Advance(10 * interval)
	select {
	case <-ticks:
		t.Error("callback ran after Stop")
	case <-time.After(50 * time.Millisecond):
	}

	// Stop on a stopped task is a no-op.
	task.Stop()
}

func TestTask_RestartReplacesPriorLoop(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	task := NewTask("restart", clk)
	defer task.Stop()

	first := make(chan int, 10)
	second := make(chan int, 10)

	if err := task.Start(context.Background(), interval, func() bool {
		first <- 1
		return true
	}); err != nil {
		t.Fatal(err)
	}
	if err := task.Start(context.Background(), 2*interval, func() bool {
		second <- 1
		return true
	}); err != nil {
		t.Fatal(err)
	}

	if err := clk.WaitAdvance(2*interval, time.Second, 1); err != nil {
		t.Fatal(err)
	}
	waitTick(t, second)

	select {
	case <-first:
		t.Error("replaced loop still fired")
	default:
	}
}

func TestTask_ContextCancel(t *testing.T) {
	clk := testclock.NewClock(time.Now())
	task := NewTask("ctx", clk)

	ctx, cancel := context.WithCancel(context.Background())
	if err := task.Start(ctx, interval, func() bool { return true }); err != nil {
		t.Fatal(err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for task.Running() {
		if time.Now().After(deadline) {
			t.Fatal("task still running after context cancel")
		}
		time.Sleep(time.Millisecond)
	}
	task.Stop()
}

func TestTask_StartErrors(t *testing.T) {
	task := NewTask("bad", nil)

	if err := task.Start(context.Background(), 0, func() bool { return true }); err == nil {
		t.Error("expected error for zero interval")
	}
	if err := task.Start(context.Background(), -time.Second, func() bool { return true }); err == nil {
		t.Error("expected error for negative interval")
	}
	if err := task.Start(context.Background(), time.Second, nil); err == nil {
		t.Error("expected error for nil callback")
	}
	if task.Running() {
		t.Error("task should not be running after failed Start")
	}
}
