// Package civil implements the calendar arithmetic the picker relies on.
// Values carry no time zone; conversions to time.Time use UTC so that day
// arithmetic is never disturbed by daylight saving transitions.
package civil

import (
	"fmt"
	"time"
)

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DateTime is an immutable calendar date with a time of day.
type DateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// New builds a DateTime, normalizing overflowing fields the way a date
// constructor does: January 32 becomes February 1, month 13 rolls the year.
func New(year int, month time.Month, day, hour, minute, second int) DateTime {
	return FromTime(time.Date(year, month, day, hour, minute, second, 0, time.UTC))
}

// Date is New with a midnight time of day.
func Date(year int, month time.Month, day int) DateTime {
	return New(year, month, day, 0, 0, 0)
}

// FromTime reads the wall clock fields of t in its own location.
func FromTime(t time.Time) DateTime {
	y, m, d := t.Date()
	return DateTime{
		Year:   y,
		Month:  m,
		Day:    d,
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Time returns the value as a UTC time.Time.
func (d DateTime) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year int, month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// Valid reports whether every field is within its calendar range.
func (d DateTime) Valid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return false
	}
	return d.Hour >= 0 && d.Hour < 24 &&
		d.Minute >= 0 && d.Minute < 60 &&
		d.Second >= 0 && d.Second < 60
}

// Weekday returns the day of the week, Sunday == 0.
func (d DateTime) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays moves the date by n calendar days, keeping the time of day.
func (d DateTime) AddDays(n int) DateTime {
	return New(d.Year, d.Month, d.Day+n, d.Hour, d.Minute, d.Second)
}

// DaysBetween counts whole calendar days from a to b, ignoring time of day.
func DaysBetween(a, b DateTime) int {
	from := time.Date(a.Year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / 86400)
}

// YearDay counts days from the last day of the previous year, so January 1
// is day 1 and December 31 of a leap year is day 366.
func (d DateTime) YearDay() int {
	return DaysBetween(Date(d.Year, time.January, 0), d)
}

// ISOWeek returns the ISO 8601 week number. Weeks start on Monday here even
// though the grid is laid out from Sunday.
func (d DateTime) ISOWeek() int {
	offset := (int(d.Weekday()) + 6) % 7
	thursday := d.AddDays(3 - offset)
	firstThursdayWeek := Date(thursday.Year, time.January, 4)
	diff := DaysBetween(firstThursdayWeek, thursday)
	return (diff+3)/7 + 1
}

// WithYear changes only the year. A February 29 that does not exist in the
// new year becomes February 28 instead of rolling into March.
func (d DateTime) WithYear(year int) DateTime {
	if d.Day > DaysInMonth(year, d.Month) {
		d.Day = 28
	}
	d.Year = year
	return d
}

// WithMonth changes only the month, clamping the day to the month length.
func (d DateTime) WithMonth(month time.Month) DateTime {
	if n := DaysInMonth(d.Year, month); d.Day > n {
		d.Day = n
	}
	d.Month = month
	return d
}

// WithDate takes year, month and day from o and keeps the time of day.
func (d DateTime) WithDate(o DateTime) DateTime {
	d.Year, d.Month, d.Day = o.Year, o.Month, o.Day
	return d
}

// WithClock replaces hour and minute.
func (d DateTime) WithClock(hour, minute int) DateTime {
	return New(d.Year, d.Month, d.Day, hour, minute, d.Second)
}

// SameDay compares year, month and day.
func (d DateTime) SameDay(o DateTime) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Equal compares down to the minute; seconds never reach the picker UI.
func (d DateTime) Equal(o DateTime) bool {
	return d.SameDay(o) && d.Hour == o.Hour && d.Minute == o.Minute
}

// Before orders values chronologically.
func (d DateTime) Before(o DateTime) bool {
	return d.Time().Before(o.Time())
}

func (d DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.Year, int(d.Month), d.Day, d.Hour, d.Minute, d.Second)
}
