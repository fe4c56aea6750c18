package fixed

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/wippyai/bitlab"
	"github.com/wippyai/bitlab/errors"
	"github.com/wippyai/bitlab/radix"
)

// Value is an integer together with the width and signedness it is stored in.
// The decimal value is always inside the representable range.
type Value struct {
	decimal *big.Int
	width   bitlab.Width
	signed  bool
}

// NewValue clamps v into w bits.
func NewValue(v *big.Int, w bitlab.Width, signed bool) (Value, error) {
	if err := w.Check(errors.PhaseEncode); err != nil {
		return Value{}, err
	}
	return Value{decimal: Clamp(v, w, signed), width: w, signed: signed}, nil
}

// Decimal returns a copy of the stored integer.
func (v Value) Decimal() *big.Int { return new(big.Int).Set(v.decimal) }

func (v Value) Width() bitlab.Width { return v.width }

func (v Value) Signed() bool { return v.signed }

// Binary returns the two's complement representation.
func (v Value) Binary() string {
	bits, _ := Encode(v.decimal, v.width, v.signed)
	return bits
}

// Bytes returns the memory layout of Binary.
func (v Value) Bytes() []string {
	return Layout(v.Binary())
}

// Toggle returns the value with the bit at position pos flipped.
func (v Value) Toggle(pos int) (Value, error) {
	_, d, err := Toggle(v.Binary(), pos, v.signed)
	if err != nil {
		return Value{}, err
	}
	return Value{decimal: d, width: v.width, signed: v.signed}, nil
}

func (v Value) String() string {
	return v.decimal.String()
}

// DataType describes one of the integer types of the data type explorer.
type DataType struct {
	Name        string       `json:"name" yaml:"name"`
	Width       bitlab.Width `json:"width" yaml:"width"`
	Signed      bool         `json:"signed" yaml:"signed"`
	Description string       `json:"description" yaml:"description"`
}

// DataTypes lists the built-in types in display order.
var DataTypes = []DataType{
	{Name: "int", Width: bitlab.Width32, Signed: true, Description: "32-bit signed integer"},
	{Name: "uint", Width: bitlab.Width32, Signed: false, Description: "32-bit unsigned integer"},
	{Name: "short", Width: bitlab.Width16, Signed: true, Description: "16-bit signed integer"},
	{Name: "ushort", Width: bitlab.Width16, Signed: false, Description: "16-bit unsigned integer"},
	{Name: "byte", Width: bitlab.Width8, Signed: false, Description: "8-bit unsigned integer"},
	{Name: "sbyte", Width: bitlab.Width8, Signed: true, Description: "8-bit signed integer"},
	{Name: "long", Width: bitlab.Width64, Signed: true, Description: "64-bit signed integer"},
}

// LookupType finds a built-in type by case-insensitive name.
func LookupType(name string) (DataType, error) {
	for _, t := range DataTypes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return DataType{}, errors.NotFound(errors.PhaseConfig, "data type", name)
}

// Range returns the bounds of the type.
func (t DataType) Range() (min, max *big.Int) {
	return Range(t.Width, t.Signed)
}

// Bytes returns the storage size in whole bytes, rounding up.
func (t DataType) Bytes() int {
	return (int(t.Width) + 7) / 8
}

// Summary renders the range line of the explorer, e.g. "-128 to 127".
func (t DataType) Summary() string {
	min, max := t.Range()
	return fmt.Sprintf("%s to %s", min, max)
}

// FromInput reads input as a decimal literal, zero when unparseable, and
// clamps it into t. It fails only when t has an unsupported width.
func FromInput(input string, t DataType) (Value, error) {
	return NewValue(radix.ParseOrZero(input), t.Width, t.Signed)
}
