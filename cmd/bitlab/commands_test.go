package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level=error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"convert table", []string{"convert", "42"}, []string{"0b101010", "0o52", "42", "0x2A"}},
		{"convert from hex", []string{"convert", "--from", "16", "ff"}, []string{"0b11111111", "255"}},
		{"convert negative", []string{"convert", "--", "-10"}, []string{"-0xA", "-0b1010"}},
		{"convert invalid", []string{"convert", "--from", "2", "9"}, []string{"Error"}},
		{"convert to", []string{"convert", "--to", "16", "255"}, []string{"FF"}},
		{"types", []string{"types"}, []string{"sbyte", "-128 to 127", "ushort"}},
		{"encode clamps", []string{"encode", "300", "--type", "byte"}, []string{"255", "true", "11111111"}},
		{"encode negative", []string{"encode", "-t", "short", "--", "-1"}, []string{"11111111 11111111", "0xFFFF"}},
		{"encode custom width", []string{"encode", "5", "--width", "4", "--signed"}, []string{"custom", "0101"}},
		{"decode", []string{"decode", "--signed", "1111"}, []string{"-1"}},
		{"toggle", []string{"toggle", "0000", "0"}, []string{"1000  (8)"}},
		{"bitwise", []string{"bitwise", "12", "10"}, []string{"00001000", "00001110", "00000110", "11110011"}},
		{"bitwise compat", []string{"bitwise", "--compat", "12", "10"}, []string{"32-bit", "243"}},
		{"add", []string{"add", "5", "3"}, []string{"1000  (8)", "1 + 1 + 0 = 2 = 0 (carry: 1)"}},
		{"add overflow", []string{"add", "--width", "4", "15", "1"}, []string{"overflow"}},
		{"segment", []string{"segment", "8"}, []string{" _ \n|_|\n|_|"}},
		{"counter", []string{"counter", "--max", "1", "--speed", "100ms", "--ticks", "2"}, []string{"1 (mod 2", "0 (mod 2, next 1, cycles 1)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("%v: %v\n%s", tt.args, err, out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("%v: output missing %q:\n%s", tt.args, w, out)
				}
			}
		})
	}
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad radix flag", []string{"convert", "--from", "3", "1"}},
		{"convert to invalid", []string{"convert", "--to", "2", "--from", "2", "9"}},
		{"unknown type", []string{"encode", "1", "--type", "float"}},
		{"decode bad digit", []string{"decode", "102"}},
		{"toggle out of range", []string{"toggle", "0000", "4"}},
		{"toggle bad position", []string{"toggle", "0000", "x"}},
		{"bad width", []string{"bitwise", "--width", "7", "1", "2"}},
		{"bad counter max", []string{"counter", "--max", "5", "--ticks", "1"}},
		{"negative ticks", []string{"counter", "--ticks=-1"}},
		{"missing config", []string{"types", "--config", "/nonexistent/bitlab.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestCommands_JSON(t *testing.T) {
	out, err := execute(t, "convert", "--json", "10")
	if err != nil {
		t.Fatal(err)
	}
	var rows []struct {
		Radix  int    `json:"radix"`
		Digits string `json:"digits"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(rows) != 4 || rows[0].Digits != "1010" || rows[3].Digits != "A" {
		t.Errorf("rows = %+v", rows)
	}

	out, err = execute(t, "add", "--json", "15", "1")
	if err != nil {
		t.Fatal(err)
	}
	var sum struct {
		Sum        int      `json:"sum"`
		Overflow   bool     `json:"overflow"`
		Carries    []string `json:"carries"`
		FinalCarry int      `json:"finalCarry"`
	}
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if sum.Sum != 0 || !sum.Overflow || sum.FinalCarry != 1 || len(sum.Carries) != 5 {
		t.Errorf("add = %+v", sum)
	}
}
