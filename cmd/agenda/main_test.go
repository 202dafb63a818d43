package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/agenda-calendar/pkg/dateutil"
)

const cliAppointments = `appointments:
  - id: 1
    title: Onboarding call
    date: "2025-03-05"
    time: "09:00"
    duration: 30
  - id: 2
    title: Module deadline
    date: "2025-03-05"
  - id: 3
    title: Sales review
    date: "2025-03-18"
    time: "11:00"
`

func writeCLIConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	apptPath := filepath.Join(dir, "appointments.yaml")
	if err := os.WriteFile(apptPath, []byte(cliAppointments), 0o644); err != nil {
		t.Fatalf("failed to write appointments: %v", err)
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "source:\n  type: file\n  fallback_file: " + apptPath + "\ndisplay:\n  timezone: UTC\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return cfgPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResolveMonth(t *testing.T) {
	today := dateutil.Date(2025, time.March, 5)

	tests := []struct {
		name      string
		year      int
		month     int
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{name: "defaults to today", wantYear: 2025, wantMonth: time.March},
		{name: "month only", month: 12, wantYear: 2025, wantMonth: time.December},
		{name: "year and month", year: 2024, month: 2, wantYear: 2024, wantMonth: time.February},
		{name: "invalid month", month: 13, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := resolveMonth(tt.year, tt.month, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveMonth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ref.Year != tt.wantYear || ref.Month != tt.wantMonth {
				t.Errorf("resolveMonth() = %v, want %04d-%02d", ref, tt.wantYear, int(tt.wantMonth))
			}
		})
	}
}

func TestMonthCommand(t *testing.T) {
	cfg := writeCLIConfig(t)

	got, err := runCLI(t, "-c", cfg, "month", "--year", "2025", "--month", "3", "--details")
	if err != nil {
		t.Fatalf("month error = %v", err)
	}

	for _, want := range []string{"March 2025", "Su", "5(2)", "18(1)", "3 appointment(s)", "Onboarding call", "Sales review"} {
		if !strings.Contains(got, want) {
			t.Errorf("month output missing %q\n%s", want, got)
		}
	}
}

func TestMonthCommand_InvalidMonth(t *testing.T) {
	cfg := writeCLIConfig(t)

	if _, err := runCLI(t, "-c", cfg, "month", "--year", "2025", "--month", "13"); err == nil {
		t.Error("month --month 13 expected error, got nil")
	}
}

func TestDayCommand(t *testing.T) {
	cfg := writeCLIConfig(t)

	got, err := runCLI(t, "-c", cfg, "day", "--date", "2025-03-05")
	if err != nil {
		t.Fatalf("day error = %v", err)
	}
	if !strings.Contains(got, "Wed 2025-03-05") {
		t.Errorf("day output missing header\n%s", got)
	}
	if strings.Index(got, "Onboarding call") > strings.Index(got, "Module deadline") {
		t.Errorf("day output not in input order\n%s", got)
	}

	if _, err := runCLI(t, "-c", cfg, "day", "--date", "2025-02-30"); err == nil {
		t.Error("day --date 2025-02-30 expected error, got nil")
	}
}

func TestExportCommand(t *testing.T) {
	cfg := writeCLIConfig(t)
	dest := filepath.Join(t.TempDir(), "out", "march.ics")

	if _, err := runCLI(t, "-c", cfg, "export", "--year", "2025", "--month", "3", "-o", dest); err != nil {
		t.Fatalf("export error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	doc := string(data)
	if n := strings.Count(doc, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("exported %d events, want 3\n%s", n, doc)
	}
	if !strings.Contains(doc, "SUMMARY:Sales review") {
		t.Errorf("export missing Sales review\n%s", doc)
	}
}
