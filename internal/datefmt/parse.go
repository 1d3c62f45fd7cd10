package datefmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lululau/calview/internal/civil"
)

var separators = regexp.MustCompile(`\W+`)

// field is a parsed component that may be absent.
type field struct {
	val int
	ok  bool
}

func (f *field) set(v int) {
	f.val, f.ok = v, true
}

// present reports whether the field holds a usable value. Zero counts as
// absent: a day of "00" or a month of "0" never completes a date.
func (f field) present() bool {
	return f.ok && f.val != 0
}

func (f field) or(fallback int) int {
	if f.ok {
		return f.val
	}
	return fallback
}

type fields struct {
	year, month, day field // month is 1-based
	hour, minute     field
}

// ParseString reads text with a layout compiled on the fly.
func ParseString(text, layout string, today civil.DateTime) civil.DateTime {
	return Parse(text, Compile(layout), today)
}

// Parse makes a best-effort reading of text. It never fails: whatever it
// cannot determine comes from today, and when no day and month can be
// found at all the result is today itself. Callers must treat the result as
// a guess rather than validated input.
//
// The words of text (runs of letters, digits and underscores) are first
// paired positionally with the pattern's verbs. If that yields a year, a
// month and a day the date is returned. Otherwise every word is classified
// on its own by shape: month names, numbers up to 12 (month), numbers above
// 31 (year) and anything else numeric (day).
func Parse(text string, p Pattern, today civil.DateTime) civil.DateTime {
	words := separators.Split(strings.TrimSpace(text), -1)
	f := matchVerbs(words, p.verbs, today)

	if f.year.present() && f.month.present() && f.day.present() {
		return f.build(today)
	}

	guessByShape(words, &f)
	if !f.year.ok {
		f.year.set(today.Year)
	}
	if f.month.present() && f.day.present() {
		return f.build(today)
	}
	return today
}

func (f fields) build(today civil.DateTime) civil.DateTime {
	return civil.New(
		f.year.val,
		time.Month(f.month.val),
		f.day.val,
		f.hour.or(today.Hour),
		f.minute.or(today.Minute),
		today.Second,
	)
}

func matchVerbs(words []string, verbs []rune, today civil.DateTime) fields {
	var f fields
	for i, word := range words {
		if word == "" || i >= len(verbs) {
			continue
		}
		switch verbs[i] {
		case 'd', 'e':
			f.day.set(numberOr(word, today.Day))
		case 'm':
			f.month.set(numberOr(word, int(today.Month)))
		case 'Y', 'y':
			if n, ok := leadingInt(word); ok {
				f.year.set(expandYear(n))
			} else {
				f.year.set(today.Year)
			}
		case 'b', 'B':
			if m, ok := monthByPrefix(word); ok {
				f.month.set(int(m))
			}
		case 'H', 'I', 'k', 'l':
			f.hour.set(numberOr(word, today.Hour))
		case 'p', 'P':
			hour := f.hour.or(0)
			lower := strings.ToLower(word)
			if strings.Contains(lower, "pm") && hour < 12 {
				f.hour.set(hour + 12)
			} else if strings.Contains(lower, "am") && hour >= 12 {
				f.hour.set(hour - 12)
			}
		case 'M':
			f.minute.set(numberOr(word, today.Minute))
		}
	}
	return f
}

// guessByShape resets the date fields and classifies every word on its own.
// The precedence of the branches decides ambiguous input such as "3 4".
func guessByShape(words []string, f *fields) {
	f.year, f.month, f.day = field{}, field{}, field{}
	for _, word := range words {
		if word == "" {
			continue
		}
		if hasLetter(word) {
			m, ok := monthByPrefix(word)
			if !ok {
				continue
			}
			if f.month.present() {
				// A second month name turns the first one's number into the day.
				f.day.set(f.month.val)
			}
			f.month.set(int(m))
			continue
		}
		n, ok := leadingInt(word)
		if !ok {
			continue
		}
		switch {
		case n <= 12 && !f.month.present():
			f.month.set(n)
		case n > 31 && !f.year.ok:
			f.year.set(expandYear(n))
		case !f.day.present():
			f.day.set(n)
		}
	}
}

// expandYear maps two-digit years to 1930..2029.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y > 29 {
		return y + 1900
	}
	return y + 2000
}

// monthByPrefix matches word case-insensitively against the start of the
// full month names, so "mar", "March" and "m" all find March.
func monthByPrefix(word string) (time.Month, bool) {
	lower := strings.ToLower(word)
	for i, name := range MonthNames {
		if len(lower) <= len(name) && strings.ToLower(name[:len(lower)]) == lower {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// leadingInt reads the decimal digits at the start of s.
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func numberOr(s string, fallback int) int {
	if n, ok := leadingInt(s); ok {
		return n
	}
	return fallback
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
