package compat

import (
	"context"
	"math/big"
	"testing"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/bitwise"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ctx := context.Background()
	e, err := New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close(ctx) })
	return e
}

func TestApply(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		op   bitwise.Op
		a, b int64
		w    bitlab.Width
		want int64
	}{
		{"and", bitwise.AND, 12, 10, bitlab.Width8, 8},
		{"or", bitwise.OR, 12, 10, bitlab.Width8, 14},
		{"xor", bitwise.XOR, 12, 10, bitlab.Width8, 6},
		{"not", bitwise.NOT, 12, 0, bitlab.Width8, 243},
		{"shl", bitwise.SHL, 12, 0, bitlab.Width8, 24},
		{"shr", bitwise.SHR, 12, 0, bitlab.Width8, 6},
		{"and is unmasked", bitwise.AND, 0x1FF, 0x1FF, bitlab.Width8, 0x1FF},
		{"and of negatives is signed", bitwise.AND, -1, -1, bitlab.Width8, -1},
		{"or sets sign bit", bitwise.OR, 1 << 31, 0, bitlab.Width16, -(1 << 31)},
		{"operands wrap at 32 bits", bitwise.OR, 1<<32 + 5, 0, bitlab.Width8, 5},
		{"not at width 32 masks to zero", bitwise.NOT, 12, 0, bitlab.Width32, 0},
		{"shl at width 32 masks to zero", bitwise.SHL, 12, 0, bitlab.Width32, 0},
		{"shr is logical", bitwise.SHR, -2, 0, bitlab.Width8, 0x7FFFFFFF},
		{"not at width 16", bitwise.NOT, 0, 0, bitlab.Width16, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Apply(ctx, tt.op, big.NewInt(tt.a), big.NewInt(tt.b), tt.w)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Apply(%s, %d, %d, %d) = %d, want %d", tt.op, tt.a, tt.b, tt.w, got, tt.want)
			}
		})
	}
}

// Inside the range both evaluators agree on operands already within width.
func TestApply_AgreesWithExactEvaluator(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	for _, w := range []bitlab.Width{bitlab.Width4, bitlab.Width8, bitlab.Width16} {
		limit := int64(1) << uint(w)
		for _, a := range []int64{0, 1, 5, 9, limit - 1} {
			for _, b := range []int64{0, 3, limit - 1} {
				for _, op := range bitwise.Ops {
					want, err := bitwise.Apply(op, big.NewInt(a), big.NewInt(b), w)
					if err != nil {
						t.Fatal(err)
					}
					got, err := e.Apply(ctx, op, big.NewInt(a), big.NewInt(b), w)
					if err != nil {
						t.Fatal(err)
					}
					if got != want.Int64() {
						t.Errorf("w=%d %s(%d, %d): compat %d, exact %v", w, op, a, b, got, want)
					}
				}
			}
		}
	}
}

func TestApply_AfterClose(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Apply(ctx, bitwise.AND, big.NewInt(1), big.NewInt(1), bitlab.Width8); err == nil {
		t.Error("expected error after Close")
	}
	if err := e.Close(ctx); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestApply_BadInput(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	if _, err := e.Apply(ctx, bitwise.AND, big.NewInt(1), big.NewInt(1), bitlab.Width(7)); err == nil {
		t.Error("expected error for width 7")
	}
	if _, err := e.Apply(ctx, bitwise.Op(99), big.NewInt(1), big.NewInt(1), bitlab.Width8); err == nil {
		t.Error("expected error for unknown op")
	}
}

func TestToUint32(t *testing.T) {
	if got := ToUint32(big.NewInt(-1)); got != 0xFFFFFFFF {
		t.Errorf("ToUint32(-1) = %#x", got)
	}
	if got := ToUint32(big.NewInt(1<<32 + 7)); got != 7 {
		t.Errorf("ToUint32(2^32+7) = %d", got)
	}
}
