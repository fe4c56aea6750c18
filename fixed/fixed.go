// Package fixed encodes integers as fixed-width binary strings.
//
// Signed values use two's complement: a negative v of width w is stored as
// the unsigned value 2^w + v, so the leftmost bit is the sign bit. Values
// outside the representable range saturate to the nearest bound before they
// are encoded; nothing wraps at this layer.
//
// Bit positions count from the left: position 0 is the most significant bit.
package fixed

import (
	"math/big"
	"strings"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
)

// Range returns the smallest and largest value representable in w bits.
func Range(w bitlab.Width, signed bool) (min, max *big.Int) {
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(w)-1)
		min = new(big.Int).Neg(half)
		max = half.Sub(half, big.NewInt(1))
		return min, max
	}
	return new(big.Int), w.Mask()
}

// Clamp pins v into the range of w bits.
func Clamp(v *big.Int, w bitlab.Width, signed bool) *big.Int {
	min, max := Range(w, signed)
	switch {
	case v.Cmp(min) < 0:
		return min
	case v.Cmp(max) > 0:
		return max
	}
	return new(big.Int).Set(v)
}

// Encode clamps v and returns its w-character binary representation.
func Encode(v *big.Int, w bitlab.Width, signed bool) (string, error) {
	if err := w.Check(errors.PhaseEncode); err != nil {
		return "", err
	}
	c := Clamp(v, w, signed)
	if c.Sign() < 0 {
		c.Add(c, w.Modulus())
	}
	return pad(c.Text(2), int(w)), nil
}

// Decode reads a binary string whose length is its width. When signed is set
// and the leftmost bit is 1 the value is negative.
func Decode(bits string, signed bool) (*big.Int, error) {
	if bits == "" {
		return nil, errors.Empty(errors.PhaseDecode, []string{"bits"})
	}
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidDigit).
				Input(bits).
				Value(i).
				Detail("character %d is not a binary digit", i).
				Build()
		}
	}
	v, _ := new(big.Int).SetString(bits, 2)
	if signed && bits[0] == '1' {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(bits))))
	}
	return v, nil
}

// Toggle flips the bit at position pos and decodes the result.
func Toggle(bits string, pos int, signed bool) (string, *big.Int, error) {
	if pos < 0 || pos >= len(bits) {
		return "", nil, errors.OutOfBounds(errors.PhaseDecode, []string{"bits"}, pos, len(bits))
	}
	b := []byte(bits)
	if b[pos] == '0' {
		b[pos] = '1'
	} else {
		b[pos] = '0'
	}
	flipped := string(b)
	v, err := Decode(flipped, signed)
	if err != nil {
		return "", nil, err
	}
	return flipped, v, nil
}

// Layout splits bits into bytes, most significant first. When the length is
// not a multiple of eight the short group comes first, so every later group
// is a whole byte aligned to the least significant end.
func Layout(bits string) []string {
	if bits == "" {
		return nil
	}
	head := len(bits) % 8
	groups := make([]string, 0, (len(bits)+7)/8)
	if head > 0 {
		groups = append(groups, bits[:head])
	}
	for i := head; i < len(bits); i += 8 {
		groups = append(groups, bits[i:i+8])
	}
	return groups
}

// LowBits returns the low w bits of v's two's complement form, zero-padded.
func LowBits(v *big.Int, w bitlab.Width) string {
	r := new(big.Int).Mod(v, w.Modulus())
	return pad(r.Text(2), int(w))
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
