package appointments

import (
	"context"
	"time"
)

// Source supplies the appointments of one month
type Source interface {
	// MonthAppointments returns every appointment dated within the month
	MonthAppointments(ctx context.Context, year int, month time.Month) ([]Appointment, error)
}
