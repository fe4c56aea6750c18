package adder

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bitlab"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int64
		w          bitlab.Width
		sum        int64
		overflow   bool
		binarySum  string
		carries    []string
		finalCarry int
	}{
		{"no overflow", 5, 3, bitlab.Width4, 8, false, "1000", []string{"0", "1", "1", "1", ""}, 0},
		{"overflow wraps", 15, 1, bitlab.Width4, 0, true, "0000", []string{"1", "1", "1", "1", ""}, 1},
		{"zero", 0, 0, bitlab.Width4, 0, false, "0000", []string{"0", "0", "0", "0", ""}, 0},
		{"max no overflow", 200, 55, bitlab.Width8, 255, false, "11111111", []string{"0", "0", "0", "0", "0", "0", "0", "0", ""}, 0},
		{"one bit", 1, 1, bitlab.Width1, 0, true, "0", []string{"1", ""}, 1},
		{"negative reads as zero", -5, 3, bitlab.Width4, 3, false, "0011", []string{"0", "0", "0", "0", ""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Add(big.NewInt(tt.a), big.NewInt(tt.b), tt.w)
			if err != nil {
				t.Fatal(err)
			}
			if r.Sum.Int64() != tt.sum {
				t.Errorf("Sum = %v, want %d", r.Sum, tt.sum)
			}
			if r.Overflow != tt.overflow {
				t.Errorf("Overflow = %v, want %v", r.Overflow, tt.overflow)
			}
			if r.BinarySum != tt.binarySum {
				t.Errorf("BinarySum = %q, want %q", r.BinarySum, tt.binarySum)
			}
			if diff := cmp.Diff(tt.carries, r.Carries); diff != "" {
				t.Errorf("Carries mismatch (-want +got):\n%s", diff)
			}
			if r.FinalCarry != tt.finalCarry {
				t.Errorf("FinalCarry = %d, want %d", r.FinalCarry, tt.finalCarry)
			}
		})
	}
}

func TestAdd_Steps(t *testing.T) {
	r, err := Add(big.NewInt(5), big.NewInt(3), bitlab.Width4)
	if err != nil {
		t.Fatal(err)
	}
	if r.BinaryA != "0101" || r.BinaryB != "0011" {
		t.Errorf("operands = %q, %q", r.BinaryA, r.BinaryB)
	}

	want := []Step{
		{Position: 0, BitA: 0, BitB: 0, CarryIn: 1, LocalSum: 1, ResultBit: 1, CarryOut: 0},
		{Position: 1, BitA: 1, BitB: 0, CarryIn: 1, LocalSum: 2, ResultBit: 0, CarryOut: 1},
		{Position: 2, BitA: 0, BitB: 1, CarryIn: 1, LocalSum: 2, ResultBit: 0, CarryOut: 1},
		{Position: 3, BitA: 1, BitB: 1, CarryIn: 0, LocalSum: 2, ResultBit: 0, CarryOut: 1},
	}
	if diff := cmp.Diff(want, r.Steps); diff != "" {
		t.Errorf("Steps mismatch (-want +got):\n%s", diff)
	}
	if got := r.Steps[3].Operation(); got != "1 + 1 + 0 = 2 = 0 (carry: 1)" {
		t.Errorf("Operation = %q", got)
	}
}

// For operands below 2^w the carry out of the MSB is exactly the overflow flag,
// and the binary sum always matches the reported sum.
func TestAdd_FinalCarryIsOverflow(t *testing.T) {
	for _, w := range []bitlab.Width{bitlab.Width1, bitlab.Width2, bitlab.Width4} {
		limit := int64(1) << uint(w)
		for a := int64(0); a < limit; a++ {
			for b := int64(0); b < limit; b++ {
				r, err := Add(big.NewInt(a), big.NewInt(b), w)
				if err != nil {
					t.Fatal(err)
				}
				if (r.FinalCarry == 1) != r.Overflow {
					t.Errorf("w=%d %d+%d: finalCarry %d, overflow %v", w, a, b, r.FinalCarry, r.Overflow)
				}
				got, ok := new(big.Int).SetString(r.BinarySum, 2)
				if !ok || got.Cmp(r.Sum) != 0 {
					t.Errorf("w=%d %d+%d: binary %s, sum %v", w, a, b, r.BinarySum, r.Sum)
				}
				if len(r.Carries) != int(w)+1 || r.Carries[w] != "" {
					t.Errorf("w=%d %d+%d: carries %q", w, a, b, r.Carries)
				}
			}
		}
	}
}

func TestAdd_Width64(t *testing.T) {
	max := bitlab.Width64.Mask()
	r, err := Add(max, big.NewInt(1), bitlab.Width64)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Overflow || r.Sum.Sign() != 0 || r.FinalCarry != 1 {
		t.Errorf("max+1 = %v overflow=%v carry=%d", r.Sum, r.Overflow, r.FinalCarry)
	}
}

func TestAdd_UnsupportedWidth(t *testing.T) {
	if _, err := Add(big.NewInt(1), big.NewInt(1), bitlab.Width(3)); err == nil {
		t.Error("expected error for width 3")
	}
}

func TestAddInput(t *testing.T) {
	r, err := AddInput("abc", "7", bitlab.Width4)
	if err != nil {
		t.Fatal(err)
	}
	if r.A.Sign() != 0 || r.Sum.Int64() != 7 {
		t.Errorf("AddInput(abc, 7) = %v + %v = %v", r.A, r.B, r.Sum)
	}
}
