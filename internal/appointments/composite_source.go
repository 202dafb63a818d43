package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/username/agenda-calendar/internal/calendar"
	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: APISource (backend)
// Fallback: FileSource (local file)
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// MonthAppointments tries the primary source, then the fallback
func (cs *CompositeSource) MonthAppointments(ctx context.Context, year int, month time.Month) ([]Appointment, error) {
	ref := calendar.MonthReference{Year: year, Month: month}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	appts, err := cs.primary.MonthAppointments(ctx, year, month)
	if err == nil {
		return appts, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	cs.logger.Warn("Primary source failed, falling back",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Error(err))

	appts, fallbackErr := cs.fallback.MonthAppointments(ctx, year, month)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return appts, nil
}

// LoadFallback loads the fallback source (if FileSource)
func (cs *CompositeSource) LoadFallback() error {
	if fs, ok := cs.fallback.(*FileSource); ok {
		if err := fs.Load(); err != nil {
			return fmt.Errorf("failed to load fallback source: %w", err)
		}
		cs.logger.Info("Fallback source loaded successfully")
	}
	return nil
}
