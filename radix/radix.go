// Package radix parses integer literals in base 2, 8, 10 or 16 and renders
// them in another base.
//
// Parsing follows the leading-digits rule: surrounding whitespace and an
// optional sign are accepted, digits are consumed until the first character
// that is not a digit of the radix, and the rest of the input is ignored.
// Only an input without any leading digit fails.
package radix

import (
	"math/big"
	"strings"
	"unicode"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
)

// ErrorSentinel is what Convert renders for unparseable input.
const ErrorSentinel = "Error"

// Parse reads the integer at the start of s in radix r.
func Parse(s string, r bitlab.Radix) (*big.Int, error) {
	if err := r.Check(errors.PhaseParse); err != nil {
		return nil, err
	}
	return parse(s, r, false)
}

// ParseAuto reads a decimal integer, or a hexadecimal one when the digits are
// introduced by 0x or 0X.
func ParseAuto(s string) (*big.Int, error) {
	return parse(s, bitlab.Decimal, true)
}

// ParseOrZero is ParseAuto with unparseable input read as zero.
func ParseOrZero(s string) *big.Int {
	v, err := ParseAuto(s)
	if err != nil {
		return new(big.Int)
	}
	return v
}

func parse(s string, r bitlab.Radix, detect bool) (*big.Int, error) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	if rest == "" {
		return nil, errors.New(errors.PhaseParse, errors.KindEmpty).
			Input(s).
			Detail("empty input").
			Build()
	}

	neg := false
	switch rest[0] {
	case '-':
		neg = true
		rest = rest[1:]
	case '+':
		rest = rest[1:]
	}

	if (r == bitlab.Hex || detect) && len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		rest = rest[2:]
		r = bitlab.Hex
	}

	n := 0
	for n < len(rest) && r.IsDigit(rune(rest[n])) {
		n++
	}
	if n == 0 {
		return nil, errors.InvalidDigit(errors.PhaseParse, s, int(r))
	}

	v, ok := new(big.Int).SetString(rest[:n], int(r))
	if !ok {
		return nil, errors.InvalidDigit(errors.PhaseParse, s, int(r))
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// Format renders v in radix r with uppercase letters.
func Format(v *big.Int, r bitlab.Radix) string {
	return strings.ToUpper(v.Text(int(r)))
}

// Rebase parses value in radix from and renders it in radix to.
func Rebase(value string, from, to bitlab.Radix) (string, error) {
	if err := to.Check(errors.PhaseParse); err != nil {
		return "", err
	}
	v, err := Parse(value, from)
	if err != nil {
		return "", err
	}
	return Format(v, to), nil
}

// Convert is Rebase with failures rendered as ErrorSentinel. Callers must
// check for the sentinel before display.
func Convert(value string, from, to bitlab.Radix) string {
	out, err := Rebase(value, from, to)
	if err != nil {
		return ErrorSentinel
	}
	return out
}

// Representation is one row of the four-base panel.
type Representation struct {
	Radix  bitlab.Radix `json:"radix"`
	Name   string       `json:"name"`
	Prefix string       `json:"prefix"`
	Digits string       `json:"digits"`
}

// String renders the digits with their prefix, or the bare sentinel.
func (r Representation) String() string {
	if r.Digits == ErrorSentinel {
		return r.Digits
	}
	if strings.HasPrefix(r.Digits, "-") {
		return "-" + r.Prefix + r.Digits[1:]
	}
	return r.Prefix + r.Digits
}

// Table renders value, read in radix from, in every supported radix.
func Table(value string, from bitlab.Radix) []Representation {
	rows := make([]Representation, 0, len(bitlab.Radices))
	for _, r := range bitlab.Radices {
		rows = append(rows, Representation{
			Radix:  r,
			Name:   r.Name(),
			Prefix: r.Prefix(),
			Digits: Convert(value, from, r),
		})
	}
	return rows
}
