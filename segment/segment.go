// Package segment renders hexadecimal digits on a seven-segment display and
// drives an auto-incrementing modular counter shown on it.
package segment

import (
	"strings"
	"unicode"
)

// Segment indexes, clockwise from the top with the middle bar last.
const (
	SegA = iota // top
	SegB        // upper right
	SegC        // lower right
	SegD        // bottom
	SegE        // lower left
	SegF        // upper left
	SegG        // middle
)

// Pattern holds the on/off state of segments a through g.
type Pattern [7]bool

// Blank has every segment off.
var Blank Pattern

var patterns = map[rune]Pattern{
	'0': {true, true, true, true, true, true, false},
	'1': {false, true, true, false, false, false, false},
	'2': {true, true, false, true, true, false, true},
	'3': {true, true, true, true, false, false, true},
	'4': {false, true, true, false, false, true, true},
	'5': {true, false, true, true, false, true, true},
	'6': {true, false, true, true, true, true, true},
	'7': {true, true, true, false, false, false, false},
	'8': {true, true, true, true, true, true, true},
	'9': {true, true, true, true, false, true, true},
	'A': {true, true, true, false, true, true, true},
	'B': {false, false, true, true, true, true, true},
	'C': {true, false, false, true, true, true, false},
	'D': {false, true, true, true, true, false, true},
	'E': {true, false, false, true, true, true, true},
	'F': {true, false, false, false, true, true, true},
}

// Lookup returns the pattern for a hex digit, ignoring case.
// Any other character maps to Blank.
func Lookup(c rune) Pattern {
	if p, ok := patterns[unicode.ToUpper(c)]; ok {
		return p
	}
	return Blank
}

// Digits returns one pattern per rune of s.
func Digits(s string) []Pattern {
	out := make([]Pattern, 0, len(s))
	for _, c := range s {
		out = append(out, Lookup(c))
	}
	return out
}

// Lit returns a string of 0s and 1s for segments a through g.
func (p Pattern) Lit() string {
	var b strings.Builder
	for _, on := range p {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Lines draws p as a three-row ASCII glyph.
func Lines(p Pattern) [3]string {
	mark := func(on bool, c byte) byte {
		if on {
			return c
		}
		return ' '
	}
	return [3]string{
		string([]byte{' ', mark(p[SegA], '_'), ' '}),
		string([]byte{mark(p[SegF], '|'), mark(p[SegG], '_'), mark(p[SegB], '|')}),
		string([]byte{mark(p[SegE], '|'), mark(p[SegD], '_'), mark(p[SegC], '|')}),
	}
}

// Render draws s as glyphs side by side, one space apart.
func Render(s string) string {
	digits := Digits(s)
	var rows [3][]string
	for _, p := range digits {
		g := Lines(p)
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = strings.Join(r, " ")
	}
	return strings.Join(out, "\n")
}
