package calendar

import (
	"time"

	"github.com/username/agenda-calendar/pkg/dateutil"
)

// LeadingDays returns how many cells of the previous month precede firstOfMonth
func LeadingDays(firstOfMonth dateutil.CalendarDate) int {
	return (int(firstOfMonth.Weekday()) - int(WeekStart) + DaysPerWeek) % DaysPerWeek
}

// BuildMonthGrid returns the 42-cell grid for the month: the tail of the previous
// month up to the first WeekStart column, every day of the month, then the head of
// the next month. Any year is accepted (proleptic Gregorian); month must be 1-12.
func BuildMonthGrid(year int, month time.Month) (MonthGrid, error) {
	ref := MonthReference{Year: year, Month: month}
	if err := ref.Validate(); err != nil {
		return MonthGrid{}, err
	}

	grid := MonthGrid{Month: ref}
	first := ref.FirstDay()
	lead := LeadingDays(first)
	daysInMonth := ref.Days()

	pos := 0

	// Previous month tail, ending on its last day
	prev := ref.Prev()
	prevDays := prev.Days()
	for i := 0; i < lead; i++ {
		day := prevDays - lead + 1 + i
		grid.Cells[pos] = DayCell{
			Date:       dateutil.Date(prev.Year, prev.Month, day),
			DayOfMonth: day,
		}
		pos++
	}

	for day := 1; day <= daysInMonth; day++ {
		grid.Cells[pos] = DayCell{
			Date:           dateutil.Date(year, month, day),
			DayOfMonth:     day,
			InCurrentMonth: true,
		}
		pos++
	}

	next := ref.Next()
	for day := 1; pos < GridSize; day++ {
		grid.Cells[pos] = DayCell{
			Date:       dateutil.Date(next.Year, next.Month, day),
			DayOfMonth: day,
		}
		pos++
	}

	return grid, nil
}
