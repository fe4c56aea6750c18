package segment

import (
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		c    rune
		want string
	}{
		{'0', "1111110"},
		{'1', "0110000"},
		{'2', "1101101"},
		{'3', "1111001"},
		{'4', "0110011"},
		{'5', "1011011"},
		{'6', "1011111"},
		{'7', "1110000"},
		{'8', "1111111"},
		{'9', "1111011"},
		{'A', "1110111"},
		{'b', "0011111"},
		{'C', "1001110"},
		{'d', "0111101"},
		{'E', "1001111"},
		{'f', "1000111"},
		{'G', "0000000"},
		{' ', "0000000"},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			if got := Lookup(tt.c).Lit(); got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.c, got, tt.want)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	got := Digits("1z")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != Lookup('1') || got[1] != Blank {
		t.Errorf("Digits(1z) = %v", got)
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		c    rune
		want [3]string
	}{
		{'8', [3]string{" _ ", "|_|", "|_|"}},
		{'1', [3]string{"   ", "  |", "  |"}},
		{'0', [3]string{" _ ", "| |", "|_|"}},
		{'F', [3]string{" _ ", "|_ ", "|  "}},
		{'x', [3]string{"   ", "   ", "   "}},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			if got := Lines(Lookup(tt.c)); got != tt.want {
				t.Errorf("Lines(%q) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	want := " _     \n| |   |\n|_|   |"
	if got := Render("01"); got != want {
		t.Errorf("Render(01) =\n%s\nwant\n%s", got, want)
	}
	if got := Render(""); got != "\n\n" {
		t.Errorf("Render(\"\") = %q", got)
	}
}
