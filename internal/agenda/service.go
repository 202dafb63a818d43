package agenda

import (
	"context"
	"fmt"

	"github.com/username/agenda-calendar/internal/appointments"
	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// Service loads appointments from a source and assembles month agendas
type Service struct {
	source appointments.Source
	logger *zap.Logger
}

// NewService creates a new agenda service
func NewService(source appointments.Source, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// Month fetches the month's appointments and builds its agenda
func (s *Service) Month(ctx context.Context, ref calendar.MonthReference) (*Agenda, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	appts, err := s.source.MonthAppointments(ctx, ref.Year, ref.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	a, err := BuildMonthAgenda(ref.Year, ref.Month, appts)
	if err != nil {
		return nil, err
	}

	if len(a.Unplaced) > 0 {
		s.logger.Warn("Appointments with malformed dates were not placed",
			zap.String("month", ref.String()),
			zap.Int("count", len(a.Unplaced)))
	}

	s.logger.Debug("Month agenda built",
		zap.String("month", ref.String()),
		zap.Int("appointments", a.Total()))

	return a, nil
}

// Day returns the appointments on a single date
func (s *Service) Day(ctx context.Context, date dateutil.CalendarDate) ([]appointments.Appointment, error) {
	appts, err := s.source.MonthAppointments(ctx, date.Year, date.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	return appointments.AppointmentsOnDate(appts, date), nil
}
