package appointments

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/dateutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileSource implements Source using a local YAML file of appointments.
//
// File format:
//
//	appointments:
//	  - id: 1
//	    title: Onboarding call
//	    date: "2025-03-05"
//	    time: "10:00"
//	    category: meeting
type FileSource struct {
	filePath string
	logger   *zap.Logger
	mu       sync.RWMutex
	data     map[string][]Appointment // key: "YYYY-MM"
	loaded   bool
}

type appointmentFile struct {
	Appointments []Appointment `yaml:"appointments"`
}

// NewFileSource creates a new FileSource instance
func NewFileSource(filePath string, logger *zap.Logger) *FileSource {
	return &FileSource{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string][]Appointment),
	}
}

// Load reads the appointment file. Invalid entries are logged and skipped.
func (fs *FileSource) Load() error {
	raw, err := os.ReadFile(fs.filePath)
	if err != nil {
		return fmt.Errorf("failed to read appointment file: %w", err)
	}

	var file appointmentFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse appointment file: %w", err)
	}

	data := make(map[string][]Appointment)
	skipped := 0
	for _, a := range file.Appointments {
		if err := a.Validate(); err != nil {
			fs.logger.Warn("Skipping invalid appointment",
				zap.String("id", a.ID.String()),
				zap.String("date", a.Date),
				zap.Error(err))
			skipped++
			continue
		}

		date, _ := dateutil.Decode(a.Date)
		monthKey := calendar.MonthOf(date).String()
		data[monthKey] = append(data[monthKey], a)
	}

	fs.mu.Lock()
	fs.data = data
	fs.loaded = true
	fs.mu.Unlock()

	fs.logger.Info("Appointment file loaded",
		zap.String("file", fs.filePath),
		zap.Int("months", len(data)),
		zap.Int("skipped", skipped))

	return nil
}

// MonthAppointments returns the appointments of the month in file order
func (fs *FileSource) MonthAppointments(_ context.Context, year int, month time.Month) ([]Appointment, error) {
	ref := calendar.MonthReference{Year: year, Month: month}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if !fs.loaded {
		return nil, fmt.Errorf("appointment file not loaded: %s", fs.filePath)
	}

	appts := fs.data[ref.String()]
	result := make([]Appointment, len(appts))
	copy(result, appts)
	return result, nil
}
