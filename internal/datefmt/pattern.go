// Package datefmt prints and reads dates using strftime-like patterns such
// as "%Y-%m-%d %H:%M".
package datefmt

import "strings"

// Default patterns used when none is configured.
const (
	DefaultDate     = "%Y-%m-%d"
	DefaultDateTime = "%Y-%m-%d %H:%M"
)

// Names used by the %a, %A, %b and %B verbs.
var (
	DayNames       = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	ShortDayNames  = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	HeaderDayNames = []string{"S", "M", "T", "W", "T", "F", "S"}
	MonthNames     = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	ShortMonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

type segment struct {
	literal string
	verb    rune // zero for literal text
}

// Pattern is a compiled layout. The zero value formats to "".
type Pattern struct {
	layout   string
	segments []segment
	verbs    []rune
}

// Compile splits layout into literal text and %-verbs. Any character may
// follow '%'; verbs that are not understood are printed back unchanged. A
// lone trailing '%' is literal text.
func Compile(layout string) Pattern {
	p := Pattern{layout: layout}
	var lit strings.Builder
	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i == len(runes)-1 {
			lit.WriteRune(runes[i])
			continue
		}
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
		i++
		p.segments = append(p.segments, segment{verb: runes[i]})
		p.verbs = append(p.verbs, runes[i])
	}
	if lit.Len() > 0 {
		p.segments = append(p.segments, segment{literal: lit.String()})
	}
	return p
}

// String returns the layout the pattern was compiled from.
func (p Pattern) String() string {
	return p.layout
}

// Verbs returns the verb characters in order of appearance, literal text
// excluded. Unknown verbs and %% are included so positions line up with
// the words of a formatted string.
func (p Pattern) Verbs() []rune {
	out := make([]rune, len(p.verbs))
	copy(out, p.verbs)
	return out
}

// HasTime reports whether the pattern prints an hour or minute.
func (p Pattern) HasTime() bool {
	for _, v := range p.verbs {
		switch v {
		case 'H', 'I', 'k', 'l', 'M':
			return true
		}
	}
	return false
}
