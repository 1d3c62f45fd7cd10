package calendar

import (
	"fmt"
	"time"

	"github.com/lululau/calview/internal/civil"
	"github.com/lululau/calview/internal/datefmt"
)

// Grid dimensions. The grid always spans six Sunday-first weeks.
const (
	Rows    = 6
	Columns = 7
)

// Mark flags a day as a public holiday or as a working day moved onto a
// weekend.
type Mark struct {
	Name    string
	Holiday bool
}

// DayCell is one tile of the grid. Cells are rebuilt from scratch on every
// Build call.
type DayCell struct {
	Date           civil.DateTime
	IsCurrentMonth bool
	IsToday        bool
	IsWeekend      bool
	IsSelected     bool

	// Label is an optional secondary line, e.g. a lunar day.
	Label string
	// Mark is set when holiday data covers this day.
	Mark *Mark
}

// Row is one week of the grid.
type Row struct {
	Cells         [Columns]DayCell
	HasInMonthDay bool
}

// Grid is the month laid out as six weeks.
type Grid struct {
	Year  int
	Month time.Month
	Rows  [Rows]Row
}

// Title renders the heading shown above the grid, e.g. "March 2024".
func (g Grid) Title() string {
	return fmt.Sprintf("%s %d", datefmt.MonthNames[g.Month-1], g.Year)
}

// VisibleRows drops the weeks made only of days from adjacent months.
func (g Grid) VisibleRows() []Row {
	rows := make([]Row, 0, Rows)
	for _, row := range g.Rows {
		if row.HasInMonthDay {
			rows = append(rows, row)
		}
	}
	return rows
}

// Cells returns all cells in row-major order.
func (g Grid) Cells() []DayCell {
	cells := make([]DayCell, 0, Rows*Columns)
	for _, row := range g.Rows {
		cells = append(cells, row.Cells[:]...)
	}
	return cells
}

// Find returns the cell showing the given day.
func (g Grid) Find(day civil.DateTime) (DayCell, bool) {
	for _, row := range g.Rows {
		for _, cell := range row.Cells {
			if cell.Date.SameDay(day) {
				return cell, true
			}
		}
	}
	return DayCell{}, false
}

// Build lays out the month of target. The year of target is clamped into
// [minYear, maxYear] first; a swapped range is reordered. Cells carry the
// target's time of day, so a selection matches when its day and clock
// match. selected may be nil.
func Build(target, today civil.DateTime, selected *civil.DateTime, minYear, maxYear int) Grid {
	if minYear > maxYear {
		minYear, maxYear = maxYear, minYear
	}
	if !target.Valid() {
		target = civil.New(target.Year, target.Month, target.Day, target.Hour, target.Minute, target.Second)
	}
	switch {
	case target.Year < minYear:
		target = target.WithYear(minYear)
	case target.Year > maxYear:
		target = target.WithYear(maxYear)
	}

	first := target.AddDays(1 - target.Day)
	cursor := first.AddDays(-int(first.Weekday()))

	grid := Grid{Year: target.Year, Month: target.Month}
	for r := 0; r < Rows; r++ {
		row := &grid.Rows[r]
		for c := 0; c < Columns; c++ {
			cell := buildCell(cursor, target.Month, today, selected)
			row.Cells[c] = cell
			if cell.IsCurrentMonth {
				row.HasInMonthDay = true
			}
			cursor = cursor.AddDays(1)
		}
	}
	return grid
}

func buildCell(day civil.DateTime, month time.Month, today civil.DateTime, selected *civil.DateTime) DayCell {
	weekday := day.Weekday()
	return DayCell{
		Date:           day,
		IsCurrentMonth: day.Month == month,
		IsToday:        day.SameDay(today),
		IsWeekend:      weekday == time.Sunday || weekday == time.Saturday,
		IsSelected:     selected != nil && day.Equal(*selected),
	}
}
