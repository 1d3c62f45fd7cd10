package datefmt

import (
	"strconv"
	"strings"

	"github.com/lululau/calview/internal/civil"
)

// Print formats d with a layout compiled on the fly.
func Print(d civil.DateTime, layout string) string {
	return Format(d, Compile(layout))
}

// Format renders d according to p. Out-of-range fields are normalized
// first, so Format never panics.
func Format(d civil.DateTime, p Pattern) string {
	if !d.Valid() {
		d = civil.New(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
	}
	var sb strings.Builder
	for _, seg := range p.segments {
		if seg.verb == 0 {
			sb.WriteString(seg.literal)
			continue
		}
		sb.WriteString(expand(d, seg.verb))
	}
	return sb.String()
}

func expand(d civil.DateTime, verb rune) string {
	hour12 := d.Hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	pm := d.Hour >= 12
	weekday := int(d.Weekday())

	switch verb {
	case 'a':
		return ShortDayNames[weekday]
	case 'A':
		return DayNames[weekday]
	case 'b':
		return ShortMonthNames[d.Month-1]
	case 'B':
		return MonthNames[d.Month-1]
	case 'C':
		return strconv.Itoa(floorDiv(d.Year, 100) + 1)
	case 'd':
		return pad(d.Day, 2)
	case 'e':
		return strconv.Itoa(d.Day)
	case 'H':
		return pad(d.Hour, 2)
	case 'I':
		return pad(hour12, 2)
	case 'j':
		return pad(d.YearDay(), 3)
	case 'k':
		return strconv.Itoa(d.Hour)
	case 'l':
		return strconv.Itoa(hour12)
	case 'm':
		return pad(int(d.Month), 2)
	case 'M':
		return pad(d.Minute, 2)
	case 'n':
		return "\n"
	case 'p':
		if pm {
			return "PM"
		}
		return "AM"
	case 'P':
		if pm {
			return "pm"
		}
		return "am"
	case 's':
		return strconv.FormatInt(d.Time().Unix(), 10)
	case 'S':
		return pad(d.Second, 2)
	case 't':
		return "\t"
	case 'U', 'V', 'W':
		return pad(d.ISOWeek(), 2)
	case 'u':
		if weekday == 0 {
			return "7"
		}
		return strconv.Itoa(weekday)
	case 'w':
		return strconv.Itoa(weekday)
	case 'y':
		return pad(abs(d.Year)%100, 2)
	case 'Y':
		return strconv.Itoa(d.Year)
	case '%':
		return "%"
	}
	return "%" + string(verb)
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
