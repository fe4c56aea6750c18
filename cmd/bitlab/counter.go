package main

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/radix"
	"github.com/wippyai/bitlab/segment"
)

func newCounterCmd(a *app) *cobra.Command {
	var (
		max   int
		base  bitlab.Radix
		speed time.Duration
		ticks int
	)

	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Run the modular counter on a seven-segment display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("max") {
				max = a.cfg.Counter.Max
			}
			if !cmd.Flags().Changed("radix") {
				base = a.cfg.Counter.Radix
			}
			if !cmd.Flags().Changed("speed") {
				speed = a.cfg.Counter.Speed
			}
			if ticks < 0 {
				return errors.OutOfRange(errors.PhaseSchedule, []string{"ticks"}, ticks, 0, math.MaxInt)
			}

			c := segment.NewCounter(nil)
			if err := c.SetMax(max); err != nil {
				return err
			}
			if err := c.SetRadix(base); err != nil {
				return err
			}
			if err := c.SetSpeed(speed); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCounter(ctx, a, c, ticks)
		},
	}
	cmd.Flags().IntVar(&max, "max", segment.DefaultMax, "largest value before wrapping (1, 3, 7, 9, 15)")
	cmd.Flags().Var(newRadixValue(&base, segment.DefaultRadix), "radix", "display radix")
	cmd.Flags().DurationVar(&speed, "speed", segment.DefaultSpeed, "tick interval (100ms, 500ms, 1s, 2s, 3s)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "stop after this many ticks, 0 runs until interrupted")
	return cmd
}

// runCounter draws every counter change until ctx is done or ticks have elapsed.
func runCounter(ctx context.Context, a *app, c *segment.Counter, ticks int) error {
	states := make(chan segment.State, 16)
	c.OnChange(func(s segment.State) {
		select {
		case states <- s:
		default:
		}
	})

	draw := newCounterView(a)
	prev := c.State()
	draw(prev)

	if err := c.Start(ctx); err != nil {
		return err
	}
	defer c.Stop()
	a.log.Debug("counter running", zap.Int("modulus", prev.Modulus), zap.Int("ticks", ticks))

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-states:
			if s.Value == prev.Value && s.Cycles == prev.Cycles {
				continue
			}
			prev = s
			draw(s)
			seen++
			if ticks > 0 && seen >= ticks {
				return nil
			}
		}
	}
}

// newCounterView returns a drawer that redraws in place on a terminal, and
// appends otherwise.
func newCounterView(a *app) func(segment.State) {
	if a.json {
		enc := json.NewEncoder(a.out.w)
		return func(s segment.State) {
			_ = enc.Encode(s)
		}
	}

	inPlace := a.out.w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	drawn := 0
	return func(s segment.State) {
		lines := strings.Split(segment.Render(s.Display), "\n")
		lines = append(lines, fmt.Sprintf("%s (mod %d, next %s, cycles %d)",
			s.Display, s.Modulus, nextDisplay(s), s.Cycles))

		if inPlace && drawn > 0 {
			fmt.Fprintf(a.out.w, "\033[%dA", drawn)
		}
		for _, l := range lines {
			if inPlace {
				fmt.Fprint(a.out.w, "\033[2K")
			}
			fmt.Fprintln(a.out.w, l)
		}
		drawn = len(lines)
	}
}

func nextDisplay(s segment.State) string {
	return radix.Format(big.NewInt(int64(s.Next)), s.Radix)
}
