// Package bitwise evaluates bitwise operations on fixed-width operands.
//
// Operands are reduced modulo 2^w before the operation, so a negative
// operand takes its w-bit two's complement form, and every result is masked
// to w bits. All widths up to 64 are exact.
package bitwise

import (
	"math/big"
	"strings"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/radix"
)

// Op is a bitwise operation.
type Op int

const (
	AND Op = iota
	OR
	XOR
	NOT
	SHL
	SHR
)

// Ops lists every operation in display order.
var Ops = []Op{AND, OR, XOR, NOT, SHL, SHR}

type opInfo struct {
	key         string
	symbol      string
	name        string
	description string
	aliases     []string
}

var opTable = [...]opInfo{
	AND: {"AND", "&", "AND", "1 only when both bits are 1", nil},
	OR:  {"OR", "|", "OR", "1 when at least one bit is 1", nil},
	XOR: {"XOR", "^", "XOR", "1 when the bits differ", nil},
	NOT: {"NOT_A", "~", "NOT", "inverts every bit of A", []string{"NOT"}},
	SHL: {"LEFT_SHIFT", "<<", "Left shift", "moves every bit of A one place left", []string{"SHL", "LSH"}},
	SHR: {"RIGHT_SHIFT", ">>", "Right shift", "moves every bit of A one place right", []string{"SHR", "RSH"}},
}

func (op Op) valid() bool { return op >= AND && op <= SHR }

// String returns the operation key, e.g. "LEFT_SHIFT".
func (op Op) String() string {
	if !op.valid() {
		return "UNKNOWN"
	}
	return opTable[op].key
}

// Symbol returns the operator symbol, e.g. "<<".
func (op Op) Symbol() string {
	if !op.valid() {
		return "?"
	}
	return opTable[op].symbol
}

// Name returns the display name.
func (op Op) Name() string {
	if !op.valid() {
		return "Unknown"
	}
	return opTable[op].name
}

// Description explains the operation in one line.
func (op Op) Description() string {
	if !op.valid() {
		return ""
	}
	return opTable[op].description
}

// Unary reports whether the operation ignores B.
func (op Op) Unary() bool {
	return op == NOT || op == SHL || op == SHR
}

// ParseOp accepts an operation key, short name or symbol, case-insensitively.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	for _, op := range Ops {
		info := opTable[op]
		if strings.EqualFold(s, info.key) || s == info.symbol {
			return op, nil
		}
		for _, alias := range info.aliases {
			if strings.EqualFold(s, alias) {
				return op, nil
			}
		}
	}
	return 0, errors.New(errors.PhaseEvaluate, errors.KindInvalidInput).
		Input(s).
		Detail("unknown operation").
		Build()
}

// Apply evaluates op over a and b masked to w bits. B is ignored by unary
// operations and may be nil for them.
func Apply(op Op, a, b *big.Int, w bitlab.Width) (*big.Int, error) {
	if err := w.Check(errors.PhaseEvaluate); err != nil {
		return nil, err
	}
	if !op.valid() {
		return nil, errors.New(errors.PhaseEvaluate, errors.KindUnsupported).
			Value(int(op)).
			Detail("unknown operation %d", int(op)).
			Build()
	}

	mod := w.Modulus()
	mask := w.Mask()
	x := new(big.Int).Mod(a, mod)
	y := new(big.Int)
	if b != nil {
		y.Mod(b, mod)
	}

	r := new(big.Int)
	switch op {
	case AND:
		r.And(x, y)
	case OR:
		r.Or(x, y)
	case XOR:
		r.Xor(x, y)
	case NOT:
		r.Xor(x, mask)
	case SHL:
		r.Lsh(x, 1)
		r.And(r, mask)
	case SHR:
		r.Rsh(x, 1)
	}
	return r, nil
}

// ApplyInput evaluates op over decimal literals, reading unparseable input as zero.
func ApplyInput(op Op, a, b string, w bitlab.Width) (*big.Int, error) {
	return Apply(op, radix.ParseOrZero(a), radix.ParseOrZero(b), w)
}

// Result is one evaluated row.
type Result struct {
	Op     Op       `json:"-"`
	Key    string   `json:"op"`
	Symbol string   `json:"symbol"`
	Value  *big.Int `json:"value"`
	Binary string   `json:"binary"`
}

// Evaluate applies every operation to a and b.
func Evaluate(a, b *big.Int, w bitlab.Width) ([]Result, error) {
	if err := w.Check(errors.PhaseEvaluate); err != nil {
		return nil, err
	}
	rows := make([]Result, 0, len(Ops))
	for _, op := range Ops {
		v, err := Apply(op, a, b, w)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Result{
			Op:     op,
			Key:    op.String(),
			Symbol: op.Symbol(),
			Value:  v,
			Binary: fixed.LowBits(v, w),
		})
	}
	return rows, nil
}
