//go:build js

// Command bitlab-js exposes the explorer to browser JavaScript as the global
// "bitlab" object. Build it with gopherjs:
//
//	gopherjs build ./cmd/bitlab-js -o bitlab.js
//
// Integers cross the boundary as decimal strings so 64-bit values stay exact.
// Failures are reported as an object with an "error" field.
package main

import (
	"context"
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/adder"
	"github.com/wippyai/bitlab/bitwise"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/radix"
	"github.com/wippyai/bitlab/schedule"
	"github.com/wippyai/bitlab/segment"
)

var counters = schedule.NewRegistry()

func main() {
	js.Global.Set("bitlab", js.M{
		"convert":      convert,
		"table":        table,
		"types":        types,
		"encode":       encode,
		"decode":       decode,
		"toggle":       toggle,
		"evaluate":     evaluate,
		"add":          add,
		"segments":     segments,
		"render":       segment.Render,
		"counterStart": counterStart,
		"counterStop":  counterStop,
	})
}

func failure(err error) js.M {
	return js.M{"error": err.Error()}
}

func convert(value string, from, to int) string {
	return radix.Convert(value, bitlab.Radix(from), bitlab.Radix(to))
}

func table(value string, from int) []js.M {
	rows := radix.Table(value, bitlab.Radix(from))
	out := make([]js.M, len(rows))
	for i, r := range rows {
		out[i] = js.M{"radix": int(r.Radix), "name": r.Name, "prefix": r.Prefix, "digits": r.Digits, "text": r.String()}
	}
	return out
}

func types() []js.M {
	out := make([]js.M, len(fixed.DataTypes))
	for i, t := range fixed.DataTypes {
		out[i] = js.M{
			"name":        t.Name,
			"width":       int(t.Width),
			"signed":      t.Signed,
			"bytes":       t.Bytes(),
			"range":       t.Summary(),
			"description": t.Description,
		}
	}
	return out
}

func encode(value, typeName string) js.M {
	t, err := fixed.LookupType(typeName)
	if err != nil {
		return failure(err)
	}
	v, err := fixed.FromInput(value, t)
	if err != nil {
		return failure(err)
	}
	return js.M{"decimal": v.String(), "binary": v.Binary(), "bytes": v.Bytes(), "range": t.Summary()}
}

func decode(bits string, signed bool) js.M {
	v, err := fixed.Decode(bits, signed)
	if err != nil {
		return failure(err)
	}
	return js.M{"decimal": v.String()}
}

func toggle(bits string, pos int, signed bool) js.M {
	flipped, v, err := fixed.Toggle(bits, pos, signed)
	if err != nil {
		return failure(err)
	}
	return js.M{"binary": flipped, "decimal": v.String()}
}

func evaluate(a, b string, width int) js.M {
	rows, err := bitwise.Evaluate(radix.ParseOrZero(a), radix.ParseOrZero(b), bitlab.Width(width))
	if err != nil {
		return failure(err)
	}
	out := make([]js.M, len(rows))
	for i, r := range rows {
		out[i] = js.M{"op": r.Key, "symbol": r.Symbol, "name": r.Op.Name(), "decimal": r.Value.String(), "binary": r.Binary}
	}
	return js.M{"results": out}
}

func add(a, b string, width int) js.M {
	r, err := adder.AddInput(a, b, bitlab.Width(width))
	if err != nil {
		return failure(err)
	}
	steps := make([]js.M, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = js.M{
			"position":  s.Position,
			"bitA":      s.BitA,
			"bitB":      s.BitB,
			"carryIn":   s.CarryIn,
			"localSum":  s.LocalSum,
			"resultBit": s.ResultBit,
			"carryOut":  s.CarryOut,
			"operation": s.Operation(),
		}
	}
	return js.M{
		"sum":        r.Sum.String(),
		"overflow":   r.Overflow,
		"binaryA":    r.BinaryA,
		"binaryB":    r.BinaryB,
		"binarySum":  r.BinarySum,
		"carries":    r.Carries,
		"finalCarry": r.FinalCarry,
		"steps":      steps,
	}
}

func segments(text string) []string {
	digits := segment.Digits(text)
	out := make([]string, len(digits))
	for i, p := range digits {
		out[i] = p.Lit()
	}
	return out
}

// counterStart starts a counter and returns its handle. cb receives the
// display digits, the value and the completed cycles after every tick.
func counterStart(max, base, speedMillis int, cb *js.Object) js.M {
	c := segment.NewCounter(nil)
	if err := c.SetMax(max); err != nil {
		return failure(err)
	}
	if err := c.SetRadix(bitlab.Radix(base)); err != nil {
		return failure(err)
	}
	if err := c.SetSpeed(time.Duration(speedMillis) * time.Millisecond); err != nil {
		return failure(err)
	}
	c.OnChange(func(s segment.State) {
		cb.Invoke(s.Display, s.Value, s.Cycles)
	})
	if err := c.Start(context.Background()); err != nil {
		return failure(err)
	}
	return js.M{"handle": int(counters.Insert(c))}
}

// counterStop stops the counter behind handle and reports whether it existed.
// Stopping waits for the timer goroutine, which must not happen on the
// JavaScript caller's stack.
func counterStop(handle int) bool {
	h := schedule.Handle(handle)
	if _, ok := counters.Get(h); !ok {
		return false
	}
	go counters.Remove(h)
	return true
}
