package agenda

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/username/agenda-calendar/internal/appointments"
	"github.com/username/agenda-calendar/pkg/dateutil"
)

const productID = "-//agenda-calendar//agenda export//EN"

// ExportICS serializes the agenda's current-month appointments as an iCalendar document.
// Appointments with an HH:MM time become timed events in loc; the rest are all-day events.
func ExportICS(a *Agenda, loc *time.Location, stamp time.Time) string {
	if loc == nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Agenda %s", a.Month().String()))

	for _, day := range a.Days {
		if !day.Cell.InCurrentMonth {
			continue
		}
		for _, appt := range day.Appointments {
			addEvent(cal, day.Cell.Date, appt, loc, stamp)
		}
	}

	return cal.Serialize()
}

func addEvent(cal *ics.Calendar, date dateutil.CalendarDate, appt appointments.Appointment, loc *time.Location, stamp time.Time) {
	id := appt.ID.String()
	if id == "" {
		id = uuid.New().String()
	}

	event := cal.AddEvent(fmt.Sprintf("%s@agenda-calendar", id))
	event.SetDtStampTime(stamp)
	event.SetSummary(appt.Title)
	if appt.Description != "" {
		event.SetDescription(appt.Description)
	}
	if appt.Category != "" {
		event.SetProperty(ics.ComponentPropertyCategories, appt.Category)
	}

	clock, err := time.Parse("15:04", appt.Time)
	if err != nil {
		event.SetAllDayStartAt(date.Time(time.UTC))
		event.SetAllDayEndAt(date.AddDays(1).Time(time.UTC))
		return
	}

	start := time.Date(date.Year, date.Month, date.Day, clock.Hour(), clock.Minute(), 0, 0, loc)
	event.SetStartAt(start)
	if appt.Duration != nil && *appt.Duration > 0 {
		event.SetEndAt(start.Add(time.Duration(*appt.Duration) * time.Minute))
	}
}
