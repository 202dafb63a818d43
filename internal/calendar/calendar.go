package calendar

import (
	"fmt"
	"time"

	"github.com/username/agenda-calendar/pkg/dateutil"
)

const (
	// DaysPerWeek is the number of columns in a month grid
	DaysPerWeek = 7
	// WeeksPerGrid is the number of rows in a month grid
	WeeksPerGrid = 6
	// GridSize is the fixed number of cells in a month grid
	GridSize = DaysPerWeek * WeeksPerGrid
)

// WeekStart is the weekday shown in the first grid column. Grids are Sunday-first.
const WeekStart = time.Sunday

// InvalidMonthError is returned when a month outside 1-12 is requested
type InvalidMonthError struct {
	Month int
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month %d: must be between 1 and 12", e.Month)
}

// MonthReference identifies the month to render
type MonthReference struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing date
func MonthOf(date dateutil.CalendarDate) MonthReference {
	return MonthReference{Year: date.Year, Month: date.Month}
}

// Validate returns an InvalidMonthError if the month is not 1-12
func (r MonthReference) Validate() error {
	if r.Month < time.January || r.Month > time.December {
		return &InvalidMonthError{Month: int(r.Month)}
	}
	return nil
}

// Next returns the following month
func (r MonthReference) Next() MonthReference {
	if r.Month == time.December {
		return MonthReference{Year: r.Year + 1, Month: time.January}
	}
	return MonthReference{Year: r.Year, Month: r.Month + 1}
}

// Prev returns the preceding month
func (r MonthReference) Prev() MonthReference {
	if r.Month == time.January {
		return MonthReference{Year: r.Year - 1, Month: time.December}
	}
	return MonthReference{Year: r.Year, Month: r.Month - 1}
}

// FirstDay returns the 1st of the month
func (r MonthReference) FirstDay() dateutil.CalendarDate {
	return dateutil.Date(r.Year, r.Month, 1)
}

// Days returns the length of the month
func (r MonthReference) Days() int {
	return dateutil.DaysInMonth(r.Year, r.Month)
}

func (r MonthReference) String() string {
	return fmt.Sprintf("%04d-%02d", r.Year, int(r.Month))
}

// DayCell is one entry of a month grid
type DayCell struct {
	Date           dateutil.CalendarDate
	DayOfMonth     int
	InCurrentMonth bool
}

// Key returns the canonical date key of the cell
func (c DayCell) Key() string {
	return dateutil.Encode(c.Date)
}

// MonthGrid is the 6x7 day grid of a month, in ascending date order
type MonthGrid struct {
	Month MonthReference
	Cells [GridSize]DayCell
}

// Weeks returns the grid split into rows
func (g MonthGrid) Weeks() [WeeksPerGrid][DaysPerWeek]DayCell {
	var weeks [WeeksPerGrid][DaysPerWeek]DayCell
	for i, cell := range g.Cells {
		weeks[i/DaysPerWeek][i%DaysPerWeek] = cell
	}
	return weeks
}

// CurrentMonthCells returns the contiguous run of cells belonging to the month
func (g MonthGrid) CurrentMonthCells() []DayCell {
	lead := LeadingDays(g.Month.FirstDay())
	return g.Cells[lead : lead+g.Month.Days()]
}

// First returns the first date shown in the grid
func (g MonthGrid) First() dateutil.CalendarDate {
	return g.Cells[0].Date
}

// Last returns the last date shown in the grid
func (g MonthGrid) Last() dateutil.CalendarDate {
	return g.Cells[GridSize-1].Date
}

// Contains reports whether date is one of the grid cells
func (g MonthGrid) Contains(date dateutil.CalendarDate) bool {
	return !date.Before(g.First()) && !date.After(g.Last())
}

// Index returns the cell position of date, or -1 when it is outside the grid
func (g MonthGrid) Index(date dateutil.CalendarDate) int {
	if !g.Contains(date) {
		return -1
	}
	return date.DayNumber() - g.First().DayNumber()
}
