// Package bitlab provides a fixed-width binary arithmetic kernel for teaching
// how integers look in hardware.
//
// The kernel is a set of small, stateless components. Each one is consumed by
// an interactive widget in the terminal UI and by the command line tool:
//
//	bitlab/          Root package with the Width and Radix vocabulary
//	├── radix/       Parse integer literals in base 2/8/10/16 and re-render them
//	├── fixed/       Two's complement encoding, decoding, bit toggles, byte layout
//	├── bitwise/     AND, OR, XOR, NOT and one-bit shifts masked to a width
//	├── compat/      32-bit reference evaluator reproducing machine-word semantics
//	├── adder/       Ripple-carry addition with a per-bit trace and step animation
//	├── segment/     Seven-segment digit patterns and the modulo counter
//	├── schedule/    Cancellable repeating tasks and their handle registry
//	├── config/      YAML configuration with per-widget defaults
//	└── errors/      Structured error types
//
// # Quick Start
//
// Convert between bases:
//
//	radix.Convert("2A", bitlab.Hex, bitlab.Decimal)   // "42"
//	radix.Convert("zz", bitlab.Hex, bitlab.Decimal)   // "Error"
//
// Encode a signed byte:
//
//	bits, _ := fixed.Encode(big.NewInt(-1), bitlab.Width8, true) // "11111111"
//
// Trace an addition:
//
//	res, _ := adder.Add(big.NewInt(15), big.NewInt(1), bitlab.Width4)
//	res.Overflow   // true
//	res.FinalCarry // 1
//
// # Widths
//
// Every component accepts the widths 1, 2, 4, 8, 16, 32 and 64. Values are
// carried as *big.Int so unsigned 64-bit values and raw sums above 2^64 stay
// exact.
//
// # Error Conventions
//
// Components expose a strict form returning (value, error) with *errors.Error
// values, and the lenient form each widget historically used: the base
// converter renders the "Error" sentinel, the other components read
// unparseable input as zero, and the encoder saturates out-of-range values.
//
// # Thread Safety
//
// The numeric components are pure functions. segment.Counter, adder.Stepper
// and schedule.Task are safe for concurrent use; their timer callbacks run on
// a goroutine owned by the task.
package bitlab
