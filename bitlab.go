package bitlab

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/bitlab/errors"
)

// Width is the number of bits in a fixed-width value.
type Width uint

const (
	Width1  Width = 1
	Width2  Width = 2
	Width4  Width = 4
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// Widths lists every supported width in ascending order.
var Widths = []Width{Width1, Width2, Width4, Width8, Width16, Width32, Width64}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width1, Width2, Width4, Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Modulus returns 2^w.
func (w Width) Modulus() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(w))
}

// Mask returns 2^w - 1, the largest unsigned value of the width.
func (w Width) Mask() *big.Int {
	m := w.Modulus()
	return m.Sub(m, big.NewInt(1))
}

func (w Width) String() string {
	return strconv.Itoa(int(w))
}

// Check returns an error if w is not a supported width.
func (w Width) Check(phase errors.Phase) error {
	if !w.Valid() {
		return errors.UnsupportedWidth(phase, uint(w))
	}
	return nil
}

// ParseWidth parses a decimal width such as "8".
func ParseWidth(s string) (Width, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Input(s).
			Detail("width must be one of 1, 2, 4, 8, 16, 32, 64").
			Cause(err).
			Build()
	}
	w := Width(n)
	if err := w.Check(errors.PhaseConfig); err != nil {
		return 0, err
	}
	return w, nil
}

// Radix is a numbering base.
type Radix int

const (
	Binary  Radix = 2
	Octal   Radix = 8
	Decimal Radix = 10
	Hex     Radix = 16
)

// Radices lists every supported radix in ascending order.
var Radices = []Radix{Binary, Octal, Decimal, Hex}

const hexAlphabet = "0123456789ABCDEF"

// Valid reports whether r is one of the supported radices.
func (r Radix) Valid() bool {
	switch r {
	case Binary, Octal, Decimal, Hex:
		return true
	}
	return false
}

// Alphabet returns the digits of r in ascending order, uppercase.
func (r Radix) Alphabet() string {
	if !r.Valid() {
		return hexAlphabet
	}
	return hexAlphabet[:r]
}

// IsDigit reports whether c is a digit of r. Letters are case-insensitive.
func (r Radix) IsDigit(c rune) bool {
	return DigitValue(c) < int(r) && r.Valid()
}

// DigitValue returns the numeric value of a base-36 digit, or 36 if c is not one.
func DigitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

// Prefix returns the conventional literal prefix: 0b, 0o, none, or 0x.
func (r Radix) Prefix() string {
	switch r {
	case Binary:
		return "0b"
	case Octal:
		return "0o"
	case Hex:
		return "0x"
	}
	return ""
}

// Name returns the human name of the radix.
func (r Radix) Name() string {
	switch r {
	case Binary:
		return "Binary"
	case Octal:
		return "Octal"
	case Decimal:
		return "Decimal"
	case Hex:
		return "Hexadecimal"
	}
	return "Base " + strconv.Itoa(int(r))
}

func (r Radix) String() string {
	return strconv.Itoa(int(r))
}

// Check returns an error if r is not a supported radix.
func (r Radix) Check(phase errors.Phase) error {
	if !r.Valid() {
		return errors.UnsupportedRadix(phase, int(r))
	}
	return nil
}

// ParseRadix parses a decimal radix such as "16".
func ParseRadix(s string) (Radix, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Input(s).
			Detail("radix must be one of 2, 8, 10, 16").
			Cause(err).
			Build()
	}
	r := Radix(n)
	if err := r.Check(errors.PhaseConfig); err != nil {
		return 0, err
	}
	return r, nil
}
