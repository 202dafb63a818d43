package agenda

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/username/agenda-calendar/internal/appointments"
	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func intPtr(v int) *int {
	return &v
}

func marchAppointments() []appointments.Appointment {
	return []appointments.Appointment{
		{ID: "1", Title: "Onboarding call", Date: "2025-03-05", Time: "09:00", Category: "meeting", Duration: intPtr(30)},
		{ID: "2", Title: "Sales review", Date: "2025-03-06", Time: "11:00", Category: "sales"},
		{ID: "3", Title: "Module deadline", Date: "2025-03-05", Category: "training"},
		{ID: "4", Title: "Legacy import", Date: "05/03/2025"},
		{ID: "5", Title: "Leading cell", Date: "2025-02-28"},
		{ID: "6", Title: "Far away", Date: "2025-06-01"},
	}
}

func TestBuildMonthAgenda(t *testing.T) {
	a, err := BuildMonthAgenda(2025, time.March, marchAppointments())
	if err != nil {
		t.Fatalf("BuildMonthAgenda() error = %v", err)
	}

	day, ok := a.Day(dateutil.Date(2025, time.March, 5))
	if !ok {
		t.Fatal("Day(2025-03-05) not found")
	}
	if day.Count() != 2 || day.Appointments[0].ID != "1" || day.Appointments[1].ID != "3" {
		t.Errorf("Day(2025-03-05) = %+v, want appointments 1 and 3", day.Appointments)
	}

	// February 28 is a leading cell of March 2025
	lead, ok := a.Day(dateutil.Date(2025, time.February, 28))
	if !ok || lead.Cell.InCurrentMonth || lead.Count() != 1 {
		t.Errorf("Day(2025-02-28) = %+v, ok=%v, want one appointment outside current month", lead, ok)
	}

	if _, ok := a.Day(dateutil.Date(2025, time.June, 1)); ok {
		t.Error("Day(2025-06-01) should be outside the grid")
	}

	if len(a.Unplaced) != 1 || a.Unplaced[0].ID != "4" {
		t.Errorf("Unplaced = %+v, want appointment 4", a.Unplaced)
	}

	if got := a.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
}

func TestBuildMonthAgenda_InvalidMonth(t *testing.T) {
	_, err := BuildMonthAgenda(2025, 0, nil)

	var invalid *calendar.InvalidMonthError
	if !errors.As(err, &invalid) {
		t.Errorf("BuildMonthAgenda(2025, 0) error = %v, want *calendar.InvalidMonthError", err)
	}
}

func TestAgenda_Weeks(t *testing.T) {
	a, err := BuildMonthAgenda(2025, time.February, nil)
	if err != nil {
		t.Fatalf("BuildMonthAgenda() error = %v", err)
	}

	weeks := a.Weeks()
	if got := weeks[0][6].Cell.Date; got != dateutil.Date(2025, time.February, 1) {
		t.Errorf("weeks[0][6] = %v, want 2025-02-01", got)
	}
	if got := weeks[5][6].Cell.Date; got != dateutil.Date(2025, time.March, 8) {
		t.Errorf("weeks[5][6] = %v, want 2025-03-08", got)
	}
}

type stubSource struct {
	appts []appointments.Appointment
	err   error
}

func (s *stubSource) MonthAppointments(context.Context, int, time.Month) ([]appointments.Appointment, error) {
	return s.appts, s.err
}

func TestService_Month(t *testing.T) {
	svc := NewService(&stubSource{appts: marchAppointments()}, zap.NewNop())

	a, err := svc.Month(context.Background(), calendar.MonthReference{Year: 2025, Month: time.March})
	if err != nil {
		t.Fatalf("Month() error = %v", err)
	}
	if a.Month() != (calendar.MonthReference{Year: 2025, Month: time.March}) {
		t.Errorf("Month() = %v, want 2025-03", a.Month())
	}
}

func TestService_MonthSourceError(t *testing.T) {
	sourceErr := errors.New("backend down")
	svc := NewService(&stubSource{err: sourceErr}, zap.NewNop())

	_, err := svc.Month(context.Background(), calendar.MonthReference{Year: 2025, Month: time.March})
	if !errors.Is(err, sourceErr) {
		t.Errorf("Month() error = %v, want wrapped source error", err)
	}
}

func TestService_Day(t *testing.T) {
	svc := NewService(&stubSource{appts: marchAppointments()}, zap.NewNop())

	appts, err := svc.Day(context.Background(), dateutil.Date(2025, time.March, 6))
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if len(appts) != 1 || appts[0].ID != "2" {
		t.Errorf("Day() = %+v, want appointment 2", appts)
	}
}

func TestRender(t *testing.T) {
	a, err := BuildMonthAgenda(2025, time.March, marchAppointments())
	if err != nil {
		t.Fatalf("BuildMonthAgenda() error = %v", err)
	}

	out := Render(a, dateutil.Date(2025, time.March, 6))

	for _, want := range []string{"March 2025", "Su", "Sa", "5(2)", "6(1)", "31"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}

	// Title, blank line, header and six week rows
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); len(lines) != 9 {
		t.Errorf("Render() produced %d lines, want 9", len(lines))
	}
}

func TestRenderDay(t *testing.T) {
	a, err := BuildMonthAgenda(2025, time.March, marchAppointments())
	if err != nil {
		t.Fatalf("BuildMonthAgenda() error = %v", err)
	}

	date := dateutil.Date(2025, time.March, 5)
	day, _ := a.Day(date)
	out := RenderDay(date, day)

	for _, want := range []string{"Wed 2025-03-05", "09:00", "Onboarding call", "(30 min)", "[meeting]", "all day", "Module deadline"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderDay() output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Onboarding call") > strings.Index(out, "Module deadline") {
		t.Error("RenderDay() changed appointment order")
	}

	empty, _ := a.Day(dateutil.Date(2025, time.March, 7))
	if out := RenderDay(dateutil.Date(2025, time.March, 7), empty); !strings.Contains(out, "No appointments") {
		t.Errorf("RenderDay() for empty day = %q", out)
	}
}
