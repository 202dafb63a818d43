package agenda

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
)

func TestExportICS(t *testing.T) {
	a, err := BuildMonthAgenda(2025, time.March, marchAppointments())
	if err != nil {
		t.Fatalf("BuildMonthAgenda() error = %v", err)
	}

	stamp := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	out := ExportICS(a, time.UTC, stamp)

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v\n%s", err, out)
	}

	// Leading-cell appointment (February 28) is not exported
	events := cal.Events()
	if len(events) != 3 {
		t.Fatalf("Events count = %d, want 3\n%s", len(events), out)
	}

	byID := make(map[string]*ics.VEvent)
	for _, e := range events {
		byID[e.GetProperty(ics.ComponentPropertyUniqueId).Value] = e
	}

	timed, ok := byID["1@agenda-calendar"]
	if !ok {
		t.Fatalf("event 1 missing\n%s", out)
	}
	if got := timed.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20250305T090000Z" {
		t.Errorf("event 1 DTSTART = %q, want 20250305T090000Z", got)
	}
	if got := timed.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20250305T093000Z" {
		t.Errorf("event 1 DTEND = %q, want 20250305T093000Z", got)
	}
	if got := timed.GetProperty(ics.ComponentPropertySummary).Value; got != "Onboarding call" {
		t.Errorf("event 1 SUMMARY = %q, want Onboarding call", got)
	}

	allDay, ok := byID["3@agenda-calendar"]
	if !ok {
		t.Fatalf("event 3 missing\n%s", out)
	}
	if got := allDay.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20250305" {
		t.Errorf("event 3 DTSTART = %q, want 20250305", got)
	}
	if got := allDay.GetProperty(ics.ComponentPropertyDtEnd).Value; got != "20250306" {
		t.Errorf("event 3 DTEND = %q, want 20250306", got)
	}
}
