package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // reading numeric literals
	PhaseEncode   Phase = "encode"   // integer to fixed-width binary
	PhaseDecode   Phase = "decode"   // fixed-width binary to integer
	PhaseEvaluate Phase = "evaluate" // bitwise operations
	PhaseAdd      Phase = "add"      // ripple-carry addition
	PhaseDisplay  Phase = "display"  // seven-segment rendering and counter
	PhaseSchedule Phase = "schedule" // repeating tasks
	PhaseConfig   Phase = "config"   // configuration and flags
	PhaseRuntime  Phase = "runtime"  // compatibility module execution
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidDigit   Kind = "invalid_digit"
	KindEmpty          Kind = "empty"
	KindUnsupported    Kind = "unsupported"
	KindOutOfRange     Kind = "out_of_range"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidInput   Kind = "invalid_input"
	KindNotInitialized Kind = "not_initialized"
	KindNotFound       Kind = "not_found"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout bitlab
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Input  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Input != "" {
		b.WriteString(": input ")
		b.WriteString(fmt.Sprintf("%q", e.Input))
	}

	if e.Detail != "" {
		if e.Input != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Input sets the offending input text
func (b *Builder) Input(s string) *Builder {
	b.err.Input = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidDigit creates an error for a literal with no valid leading digit
func InvalidDigit(phase Phase, input string, radix int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidDigit,
		Input:  input,
		Detail: fmt.Sprintf("no valid base-%d digits", radix),
		Value:  radix,
	}
}

// Empty creates an error for a blank input
func Empty(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEmpty,
		Path:   path,
		Detail: "empty input",
	}
}

// UnsupportedWidth creates an error for a bit width outside 1, 2, 4, 8, 16, 32, 64
func UnsupportedWidth(phase Phase, width uint) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("bit width %d not supported", width),
		Value:  width,
	}
}

// UnsupportedRadix creates an error for a radix outside 2, 8, 10, 16
func UnsupportedRadix(phase Phase, radix int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("radix %d not supported", radix),
		Value:  radix,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfRange creates an error for a value outside [min, max]
func OutOfRange(phase Phase, path []string, value, min, max any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("value %v outside [%v, %v]", value, min, max),
		Value:  value,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for a closed or missing component
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}
