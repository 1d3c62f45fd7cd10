package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/lululau/calview/internal/civil"
)

// Default navigable year range.
const (
	DefaultMinYear = 1900
	DefaultMaxYear = 2100
)

// Annotator decorates cells after the grid is laid out.
type Annotator interface {
	Annotate(cell *DayCell)
}

// AnnotatorFunc adapts a function to Annotator.
type AnnotatorFunc func(cell *DayCell)

// Annotate calls f(cell).
func (f AnnotatorFunc) Annotate(cell *DayCell) {
	f(cell)
}

// Service builds grids against a clock, a year range and a set of
// annotators.
type Service struct {
	now        func() time.Time
	minYear    int
	maxYear    int
	annotators []Annotator
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRange sets the navigable year range.
func WithRange(minYear, maxYear int) Option {
	return func(s *Service) {
		if minYear > maxYear {
			minYear, maxYear = maxYear, minYear
		}
		s.minYear = minYear
		s.maxYear = maxYear
	}
}

// WithAnnotators appends cell annotators, applied in order.
func WithAnnotators(a ...Annotator) Option {
	return func(s *Service) {
		s.annotators = append(s.annotators, a...)
	}
}

// NewService constructs a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:     time.Now,
		minYear: DefaultMinYear,
		maxYear: DefaultMaxYear,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ErrYearOutOfRange is returned by Year for years outside the range.
var ErrYearOutOfRange = errors.New("year out of range")

// Today reads the service clock.
func (s *Service) Today() civil.DateTime {
	return civil.FromTime(s.now())
}

// Range returns the navigable year range.
func (s *Service) Range() (minYear, maxYear int) {
	return s.minYear, s.maxYear
}

// HasAnnotators reports whether cells get labels or marks.
func (s *Service) HasAnnotators() bool {
	return len(s.annotators) > 0
}

// Month builds the grid for target's month with selected highlighted.
func (s *Service) Month(target civil.DateTime, selected *civil.DateTime) Grid {
	return s.Annotate(Build(target, s.Today(), selected, s.minYear, s.maxYear))
}

// Annotate runs the service's annotators over every cell of grid.
func (s *Service) Annotate(grid Grid) Grid {
	for r := range grid.Rows {
		for c := range grid.Rows[r].Cells {
			for _, a := range s.annotators {
				a.Annotate(&grid.Rows[r].Cells[c])
			}
		}
	}
	return grid
}

// Year returns the twelve grids of year.
func (s *Service) Year(year int) ([]Grid, error) {
	if year < s.minYear || year > s.maxYear {
		return nil, fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, year, s.minYear, s.maxYear)
	}
	grids := make([]Grid, 0, 12)
	for m := time.January; m <= time.December; m++ {
		grids = append(grids, s.Month(civil.Date(year, m, 1), nil))
	}
	return grids, nil
}
