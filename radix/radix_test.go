package radix

import (
	"errors"
	"math/big"
	"testing"

	"github.com/wippyai/bitlab"
	bitlaberrors "github.com/wippyai/bitlab/errors"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		from, to bitlab.Radix
		want     string
	}{
		{"hex to decimal", "2A", bitlab.Hex, bitlab.Decimal, "42"},
		{"decimal to binary", "42", bitlab.Decimal, bitlab.Binary, "101010"},
		{"lowercase hex", "ff", bitlab.Hex, bitlab.Decimal, "255"},
		{"uppercase output", "255", bitlab.Decimal, bitlab.Hex, "FF"},
		{"octal", "777", bitlab.Octal, bitlab.Decimal, "511"},
		{"negative survives", "-42", bitlab.Decimal, bitlab.Hex, "-2A"},
		{"plus sign", "+7", bitlab.Decimal, bitlab.Binary, "111"},
		{"stops at invalid digit", "12abc", bitlab.Decimal, bitlab.Decimal, "12"},
		{"binary stops at 2", "1012", bitlab.Binary, bitlab.Decimal, "5"},
		{"leading whitespace", "  10", bitlab.Decimal, bitlab.Binary, "1010"},
		{"hex prefix", "0x1F", bitlab.Hex, bitlab.Decimal, "31"},
		{"zero", "0", bitlab.Decimal, bitlab.Binary, "0"},
		{"negative zero", "-0", bitlab.Decimal, bitlab.Decimal, "0"},
		{"beyond 64 bits", "FFFFFFFFFFFFFFFFFF", bitlab.Hex, bitlab.Decimal, "4722366482869645213695"},
		{"empty", "", bitlab.Decimal, bitlab.Binary, ErrorSentinel},
		{"all invalid", "xyz", bitlab.Decimal, bitlab.Binary, ErrorSentinel},
		{"hex digit in octal", "9", bitlab.Octal, bitlab.Decimal, ErrorSentinel},
		{"sign only", "-", bitlab.Decimal, bitlab.Decimal, ErrorSentinel},
		{"bare hex prefix", "0x", bitlab.Hex, bitlab.Decimal, ErrorSentinel},
		{"unsupported source radix", "10", bitlab.Radix(3), bitlab.Decimal, ErrorSentinel},
		{"unsupported target radix", "10", bitlab.Decimal, bitlab.Radix(36), ErrorSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.value, tt.from, tt.to); got != tt.want {
				t.Errorf("Convert(%q, %d, %d) = %q, want %q", tt.value, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	values := []int64{0, 1, 7, 42, 255, 256, 1000, 65535, -1, -129, 1 << 40}
	for _, v := range values {
		for _, r1 := range bitlab.Radices {
			for _, r2 := range bitlab.Radices {
				start := Format(big.NewInt(v), r1)
				there := Convert(start, r1, r2)
				back := Convert(there, r2, r1)
				if back != start {
					t.Errorf("%d: %s(base %d) -> %s(base %d) -> %s", v, start, r1, there, r2, back)
				}
			}
		}
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("", bitlab.Decimal)
	if !errors.Is(err, &bitlaberrors.Error{Phase: bitlaberrors.PhaseParse, Kind: bitlaberrors.KindEmpty}) {
		t.Errorf("empty input: got %v, want empty error", err)
	}

	_, err = Parse("G", bitlab.Hex)
	if !errors.Is(err, &bitlaberrors.Error{Phase: bitlaberrors.PhaseParse, Kind: bitlaberrors.KindInvalidDigit}) {
		t.Errorf("invalid digit: got %v, want invalid digit error", err)
	}

	_, err = Parse("1", bitlab.Radix(5))
	if !errors.Is(err, &bitlaberrors.Error{Phase: bitlaberrors.PhaseParse, Kind: bitlaberrors.KindUnsupported}) {
		t.Errorf("bad radix: got %v, want unsupported error", err)
	}
}

func TestParseOrZero(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{"-5", -5},
		{"0x10", 16},
		{"3.9", 3},
		{"12px", 12},
		{"", 0},
		{"abc", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseOrZero(tt.in); got.Int64() != tt.want {
				t.Errorf("ParseOrZero(%q) = %v, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	rows := Table("42", bitlab.Decimal)
	want := []string{"0b101010", "0o52", "42", "0x2A"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, row := range rows {
		if row.String() != want[i] {
			t.Errorf("row %d (%s) = %q, want %q", i, row.Name, row.String(), want[i])
		}
	}

	for _, row := range Table("nope", bitlab.Decimal) {
		if row.String() != ErrorSentinel {
			t.Errorf("%s = %q, want sentinel", row.Name, row.String())
		}
	}

	neg := Table("-10", bitlab.Decimal)
	if neg[3].String() != "-0xA" {
		t.Errorf("negative hex = %q, want -0xA", neg[3].String())
	}
}
