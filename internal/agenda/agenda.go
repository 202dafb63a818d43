package agenda

import (
	"time"

	"github.com/username/agenda-calendar/internal/appointments"
	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/dateutil"
)

// Day is one grid cell with the appointments that fall on it
type Day struct {
	Cell         calendar.DayCell
	Appointments []appointments.Appointment
}

// Count returns the number of appointments on the day
func (d Day) Count() int {
	return len(d.Appointments)
}

// Agenda is a month grid with appointments bucketed per cell
type Agenda struct {
	Grid calendar.MonthGrid
	Days [calendar.GridSize]Day
	// Unplaced holds appointments whose date is not a valid date key
	Unplaced []appointments.Appointment
}

// BuildMonthAgenda builds the month grid and places each appointment on its cell.
// Appointments dated outside the grid are ignored; malformed dates go to Unplaced.
func BuildMonthAgenda(year int, month time.Month, appts []appointments.Appointment) (*Agenda, error) {
	grid, err := calendar.BuildMonthGrid(year, month)
	if err != nil {
		return nil, err
	}

	groups := appointments.GroupByDate(appts)

	a := &Agenda{Grid: grid}
	for i, cell := range grid.Cells {
		a.Days[i] = Day{
			Cell:         cell,
			Appointments: groups[cell.Key()],
		}
	}

	for _, appt := range appts {
		if _, err := dateutil.Decode(appt.Date); err != nil {
			a.Unplaced = append(a.Unplaced, appt)
		}
	}

	return a, nil
}

// Month returns the month the agenda was built for
func (a *Agenda) Month() calendar.MonthReference {
	return a.Grid.Month
}

// Day returns the agenda day for date, false when the date is outside the grid
func (a *Agenda) Day(date dateutil.CalendarDate) (Day, bool) {
	idx := a.Grid.Index(date)
	if idx < 0 {
		return Day{}, false
	}
	return a.Days[idx], true
}

// Weeks returns the days split into grid rows
func (a *Agenda) Weeks() [calendar.WeeksPerGrid][calendar.DaysPerWeek]Day {
	var weeks [calendar.WeeksPerGrid][calendar.DaysPerWeek]Day
	for i, day := range a.Days {
		weeks[i/calendar.DaysPerWeek][i%calendar.DaysPerWeek] = day
	}
	return weeks
}

// Total returns the number of appointments placed on the grid
func (a *Agenda) Total() int {
	total := 0
	for _, day := range a.Days {
		total += day.Count()
	}
	return total
}
