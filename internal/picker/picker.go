// Package picker holds the state of one date picker: the date it points at,
// the navigation rules between months and years, and the text it writes
// back to the bound input field. It knows nothing about drawing; a shell
// owns a Picker and repaints from Grid after every Event.
package picker

import (
	"time"

	"github.com/lululau/calview/internal/calendar"
	"github.com/lululau/calview/internal/civil"
	"github.com/lululau/calview/internal/datefmt"
)

// Nav is a navigation button.
type Nav int

const (
	NavPreviousYear  Nav = -2
	NavPreviousMonth Nav = -1
	NavToday         Nav = 0
	NavNextMonth     Nav = 1
	NavNextYear      Nav = 2
)

// Event reports the outcome of an interaction. Text is the formatted value
// to write into the bound field when Changed is set.
type Event struct {
	Changed bool
	Close   bool
	Text    string
}

// Config selects the range and the pattern. A zero Pattern picks the
// default date or date-time layout according to WithTime.
type Config struct {
	MinYear  int
	MaxYear  int
	WithTime bool
	Pattern  datefmt.Pattern
}

// Picker is a single picker instance.
type Picker struct {
	svc     *calendar.Service
	cfg     Config
	date    civil.DateTime
	minYear int
	maxYear int
}

// New creates a picker pointing at the service's today.
func New(svc *calendar.Service, cfg Config) *Picker {
	if svc == nil {
		svc = calendar.NewService()
	}
	if cfg.Pattern.String() == "" {
		if cfg.WithTime {
			cfg.Pattern = datefmt.Compile(datefmt.DefaultDateTime)
		} else {
			cfg.Pattern = datefmt.Compile(datefmt.DefaultDate)
		}
	}
	minYear, maxYear := svc.Range()
	if cfg.MinYear != 0 || cfg.MaxYear != 0 {
		minYear, maxYear = cfg.MinYear, cfg.MaxYear
		if minYear > maxYear {
			minYear, maxYear = maxYear, minYear
		}
	}
	p := &Picker{svc: svc, cfg: cfg, minYear: minYear, maxYear: maxYear}
	p.update(svc.Today())
	return p
}

// Date returns the current value.
func (p *Picker) Date() civil.DateTime {
	return p.date
}

// Text formats the current value with the picker's pattern.
func (p *Picker) Text() string {
	return datefmt.Format(p.date, p.cfg.Pattern)
}

// Range returns the navigable year range.
func (p *Picker) Range() (minYear, maxYear int) {
	return p.minYear, p.maxYear
}

// WithTime reports whether hours and minutes are editable.
func (p *Picker) WithTime() bool {
	return p.cfg.WithTime
}

// Grid lays out the current month with the current value selected.
func (p *Picker) Grid() calendar.Grid {
	sel := p.date
	return p.svc.Annotate(calendar.Build(sel, p.svc.Today(), &sel, p.minYear, p.maxYear))
}

// Bind reads the text of the bound field and moves to the date it names.
// It reports whether the picker moved.
func (p *Picker) Bind(text string) bool {
	parsed := datefmt.Parse(text, p.cfg.Pattern, p.svc.Today())
	if parsed.Equal(p.date) {
		return false
	}
	p.update(parsed)
	return true
}

// Navigate applies a navigation button. Year changes stop at the range
// bounds and month changes clamp the day to the new month.
func (p *Picker) Navigate(nav Nav) Event {
	date := p.date
	if nav == NavToday {
		date = date.WithDate(p.svc.Today())
	}
	year, month := date.Year, date.Month

	switch nav {
	case NavPreviousYear:
		if year > p.minYear {
			date = date.WithYear(year - 1)
		}
	case NavPreviousMonth:
		if month > time.January {
			date = date.WithMonth(month - 1)
		} else if year > p.minYear {
			date = date.WithYear(year - 1).WithMonth(time.December)
		}
	case NavNextMonth:
		if month < time.December {
			date = date.WithMonth(month + 1)
		} else if year < p.maxYear {
			date = date.WithYear(year + 1).WithMonth(time.January)
		}
	case NavNextYear:
		if year < p.maxYear {
			date = date.WithYear(year + 1)
		}
	}

	if !date.Equal(p.date) {
		p.update(date)
		return p.changed(false)
	}
	if nav == NavToday {
		// Pressing Today while already on today confirms it.
		return p.changed(true)
	}
	return Event{}
}

// Pick selects a grid cell. Picking a day of the shown month closes the
// picker; picking a leading or trailing day moves to that month instead.
func (p *Picker) Pick(cell calendar.DayCell) Event {
	p.update(p.date.WithDate(cell.Date))
	return p.changed(cell.IsCurrentMonth)
}

// Move shifts the value by days, as cursor keys do.
func (p *Picker) Move(days int) Event {
	date := p.date.AddDays(days)
	if date.Year < p.minYear || date.Year > p.maxYear {
		return Event{}
	}
	p.update(date)
	return p.changed(false)
}

// SetHour changes the hour in time mode.
func (p *Picker) SetHour(hour int) Event {
	if !p.cfg.WithTime || hour < 0 || hour > 23 {
		return Event{}
	}
	p.date = p.date.WithClock(hour, p.date.Minute)
	return p.changed(false)
}

// SetMinute changes the minute in time mode.
func (p *Picker) SetMinute(minute int) Event {
	if !p.cfg.WithTime || minute < 0 || minute > 59 {
		return Event{}
	}
	p.date = p.date.WithClock(p.date.Hour, minute)
	return p.changed(false)
}

func (p *Picker) update(date civil.DateTime) {
	switch {
	case date.Year < p.minYear:
		date = date.WithYear(p.minYear)
	case date.Year > p.maxYear:
		date = date.WithYear(p.maxYear)
	}
	p.date = date
}

func (p *Picker) changed(closing bool) Event {
	return Event{Changed: true, Close: closing, Text: p.Text()}
}
