// Package textwidth measures terminal column widths of mixed Latin and CJK
// text, ignoring ANSI color sequences.
package textwidth

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StringWidth returns the width of the widest line of s. A CJK character is
// two columns wide, which is exactly its length once encoded as GBK.
func StringWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, lineWidth(line))
	}
	return widest
}

// PadRight appends spaces until s is width columns wide.
func PadRight(s string, width int) string {
	if diff := width - StringWidth(s); diff > 0 {
		return s + strings.Repeat(" ", diff)
	}
	return s
}

// Center surrounds s with spaces so it sits in the middle of width columns.
// Odd leftovers go to the right.
func Center(s string, width int) string {
	diff := width - StringWidth(s)
	if diff <= 0 {
		return s
	}
	left := diff / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", diff-left)
}

func lineWidth(s string) int {
	clean := strings.Map(narrowBoxDrawing, ansiRegexp.ReplaceAllString(s, ""))
	if clean == "" {
		return 0
	}
	encoded, _, err := transform.String(simplifiedchinese.GBK.NewEncoder(), clean)
	if err != nil {
		return runeWidth(clean)
	}
	return len(encoded)
}

// narrowBoxDrawing maps table borders to one column. GBK stores them as two
// bytes although terminals draw them one column wide.
func narrowBoxDrawing(r rune) rune {
	if r >= 0x2500 && r <= 0x259F {
		return '+'
	}
	return r
}

// runeWidth is used for text GBK cannot encode, such as emoji.
func runeWidth(s string) int {
	width := 0
	for _, r := range s {
		switch {
		case r == '\r':
		case r <= unicode.MaxASCII:
			width++
		default:
			width += 2
		}
	}
	return width
}
