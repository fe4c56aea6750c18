package fixed

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/bitlab"
)

func TestFromInput(t *testing.T) {
	sbyte, err := LookupType("sbyte")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input   string
		decimal int64
		binary  string
	}{
		{"42", 42, "00101010"},
		{"-1", -1, "11111111"},
		{"1000", 127, "01111111"},
		{"-1000", -128, "10000000"},
		{"garbage", 0, "00000000"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := FromInput(tt.input, sbyte)
			if err != nil {
				t.Fatal(err)
			}
			if v.Decimal().Int64() != tt.decimal {
				t.Errorf("Decimal = %v, want %d", v.Decimal(), tt.decimal)
			}
			if v.Binary() != tt.binary {
				t.Errorf("Binary = %q, want %q", v.Binary(), tt.binary)
			}
		})
	}
}

func TestFromInput_BadWidth(t *testing.T) {
	if _, err := FromInput("1", DataType{Name: "odd", Width: 12}); err == nil {
		t.Error("expected error for unsupported width")
	}
}

func TestValue_Toggle(t *testing.T) {
	v, err := NewValue(big.NewInt(42), bitlab.Width32, true)
	if err != nil {
		t.Fatal(err)
	}

	neg, err := v.Toggle(0)
	if err != nil {
		t.Fatal(err)
	}
	want := big.NewInt(42 - (1 << 31))
	if neg.Decimal().Cmp(want) != 0 {
		t.Errorf("after sign toggle = %v, want %v", neg.Decimal(), want)
	}
	if v.Decimal().Int64() != 42 {
		t.Errorf("original mutated: %v", v.Decimal())
	}

	if _, err := v.Toggle(32); err == nil {
		t.Error("expected error toggling past the last bit")
	}
}

func TestValue_Bytes(t *testing.T) {
	v, _ := NewValue(big.NewInt(258), bitlab.Width16, false)
	if diff := cmp.Diff([]string{"00000001", "00000010"}, v.Bytes()); diff != "" {
		t.Errorf("Bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestDataTypes(t *testing.T) {
	tests := []struct {
		name    string
		bytes   int
		summary string
	}{
		{"int", 4, "-2147483648 to 2147483647"},
		{"uint", 4, "0 to 4294967295"},
		{"short", 2, "-32768 to 32767"},
		{"ushort", 2, "0 to 65535"},
		{"byte", 1, "0 to 255"},
		{"sbyte", 1, "-128 to 127"},
		{"long", 8, "-9223372036854775808 to 9223372036854775807"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := LookupType(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if dt.Bytes() != tt.bytes {
				t.Errorf("Bytes = %d, want %d", dt.Bytes(), tt.bytes)
			}
			if dt.Summary() != tt.summary {
				t.Errorf("Summary = %q, want %q", dt.Summary(), tt.summary)
			}
		})
	}

	if _, err := LookupType("float"); err == nil {
		t.Error("expected float to be unknown")
	}
	if dt, err := LookupType("INT"); err != nil || dt.Name != "int" {
		t.Errorf("case-insensitive lookup failed: %v %v", dt, err)
	}
}
