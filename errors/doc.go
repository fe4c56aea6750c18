// Package errors provides structured error types for bitlab.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: field path, the offending input text, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidDigit).
//		Path("adder", "a").
//		Input("0xZZ").
//		Detail("no valid base-%d digits", 16).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidDigit(errors.PhaseParse, "zz", 10)
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 9, 8)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
