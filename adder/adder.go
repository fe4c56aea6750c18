// Package adder simulates a ripple-carry adder over fixed-width operands.
//
// Positions are indexed from the most significant bit: position 0 is the MSB
// and position w-1 the LSB. The adder runs from the LSB upward, and every
// trace it returns is ordered MSB first.
package adder

import (
	"fmt"
	"math/big"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/fixed"
	"github.com/wippyai/bitlab/radix"
)

// Step is the full-adder state at one bit position.
type Step struct {
	Position  int `json:"position"`
	BitA      int `json:"bitA"`
	BitB      int `json:"bitB"`
	CarryIn   int `json:"carryIn"`
	LocalSum  int `json:"localSum"`
	ResultBit int `json:"resultBit"`
	CarryOut  int `json:"carryOut"`
}

// Operation renders the step as "1 + 1 + 0 = 2 = 0 (carry: 1)".
func (s Step) Operation() string {
	return fmt.Sprintf("%d + %d + %d = %d = %d (carry: %d)",
		s.BitA, s.BitB, s.CarryIn, s.LocalSum, s.ResultBit, s.CarryOut)
}

// Result is a completed addition.
type Result struct {
	A          *big.Int     `json:"a"`
	B          *big.Int     `json:"b"`
	Width      bitlab.Width `json:"width"`
	Sum        *big.Int     `json:"sum"`
	Overflow   bool         `json:"overflow"`
	BinaryA    string       `json:"binaryA"`
	BinaryB    string       `json:"binaryB"`
	BinarySum  string       `json:"binarySum"`
	Carries    []string     `json:"carries"`
	FinalCarry int          `json:"finalCarry"`
	Steps      []Step       `json:"steps"`
}

// Add adds a and b as unsigned w-bit values. Negative operands are read as 0.
//
// Sum is a+b, or a+b-2^w when the raw sum exceeds 2^w-1. Carries has w+1
// entries: Carries[k] is the carry out of position k, and the last entry is
// empty since nothing carries into the LSB.
func Add(a, b *big.Int, w bitlab.Width) (Result, error) {
	if err := w.Check(errors.PhaseAdd); err != nil {
		return Result{}, err
	}

	x := nonNegative(a)
	y := nonNegative(b)
	n := int(w)

	binA := fixed.LowBits(x, w)
	binB := fixed.LowBits(y, w)

	sumBits := make([]byte, n)
	carries := make([]string, n+1)
	steps := make([]Step, n)

	carry := 0
	for pos := n - 1; pos >= 0; pos-- {
		bitA := int(binA[pos] - '0')
		bitB := int(binB[pos] - '0')
		local := bitA + bitB + carry
		out := 0
		if local > 1 {
			out = 1
		}
		steps[pos] = Step{
			Position:  pos,
			BitA:      bitA,
			BitB:      bitB,
			CarryIn:   carry,
			LocalSum:  local,
			ResultBit: local % 2,
			CarryOut:  out,
		}
		sumBits[pos] = byte('0' + local%2)
		carries[pos] = fmt.Sprint(out)
		carry = out
	}

	sum := new(big.Int).Add(x, y)
	overflow := sum.Cmp(w.Mask()) > 0
	if overflow {
		sum.Sub(sum, w.Modulus())
	}

	return Result{
		A:          x,
		B:          y,
		Width:      w,
		Sum:        sum,
		Overflow:   overflow,
		BinaryA:    binA,
		BinaryB:    binB,
		BinarySum:  string(sumBits),
		Carries:    carries,
		FinalCarry: carry,
		Steps:      steps,
	}, nil
}

// AddInput adds two decimal literals. Unparseable or negative input reads as 0.
func AddInput(a, b string, w bitlab.Width) (Result, error) {
	return Add(radix.ParseOrZero(a), radix.ParseOrZero(b), w)
}

func nonNegative(v *big.Int) *big.Int {
	if v == nil || v.Sign() < 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
