// Package lunar labels grid cells with the Chinese lunar calendar.
package lunar

import (
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/civil"
)

// Gregorian year range supported by the upstream library.
const (
	MinSupportedYear = 1900
	MaxSupportedYear = 3000
)

// Label selects the string shown beneath a Gregorian day. Solar terms take
// precedence, followed by the lunar month name on the first day of a lunar
// month, then the lunar day. Unsupported years yield "".
func Label(d civil.DateTime) string {
	if d.Year < MinSupportedYear || d.Year > MaxSupportedYear {
		return ""
	}
	cal := calendarlib.BySolar(
		int64(d.Year),
		int64(d.Month),
		int64(d.Day),
		12, 0, 0,
	)
	if term := cal.Solar.CurrentSolarterm; term != nil {
		day := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
		if term.IsInDay(&day) {
			return term.Alias()
		}
	}
	dayAlias := cal.Lunar.DayAlias()
	if dayAlias == "初一" {
		if monthAlias := cal.Lunar.MonthAlias(); monthAlias != "" {
			return monthAlias
		}
	}
	return dayAlias
}

// Annotator fills DayCell.Label.
type Annotator struct{}

// Annotate implements calendar.Annotator.
func (Annotator) Annotate(cell *calendar.DayCell) {
	cell.Label = Label(cell.Date)
}
