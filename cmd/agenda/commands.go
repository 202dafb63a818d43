package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/agenda-calendar/internal/agenda"
	"github.com/username/agenda-calendar/internal/calendar"
	"github.com/username/agenda-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

// resolveMonth fills unset year/month flags from today
func resolveMonth(year, month int, today dateutil.CalendarDate) (calendar.MonthReference, error) {
	ref := calendar.MonthOf(today)
	if year != 0 {
		ref.Year = year
	}
	if month != 0 {
		ref.Month = time.Month(month)
	}
	return ref, ref.Validate()
}

// todayIn returns the current calendar day in loc
func todayIn(loc *time.Location) dateutil.CalendarDate {
	return dateutil.FromTimeIn(time.Now(), loc)
}

func monthCmd() *cobra.Command {
	var year, month int
	var showDays bool

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the month grid with appointment counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Display.GetLocation()
			if err != nil {
				return err
			}

			today := todayIn(loc)
			ref, err := resolveMonth(year, month, today)
			if err != nil {
				return err
			}

			svc, err := initializeService(cfg)
			if err != nil {
				return err
			}

			logger.Info("Building month agenda", zap.String("month", ref.String()))

			a, err := svc.Month(cmd.Context(), ref)
			if err != nil {
				return err
			}

			fmt.Fprint(out, agenda.Render(a, today))
			fmt.Fprintf(out, "\n%d appointment(s)\n", a.Total())

			if showDays {
				for _, day := range a.Days {
					if day.Cell.InCurrentMonth && day.Count() > 0 {
						fmt.Fprintln(out)
						fmt.Fprint(out, agenda.RenderDay(day.Cell.Date, day))
					}
				}
			}

			if len(a.Unplaced) > 0 {
				fmt.Fprintf(out, "\n%d appointment(s) with malformed dates were skipped\n", len(a.Unplaced))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current month)")
	cmd.Flags().BoolVar(&showDays, "details", false, "List appointments under the grid")

	return cmd
}

func dayCmd() *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "List the appointments of one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Display.GetLocation()
			if err != nil {
				return err
			}

			date := todayIn(loc)
			if dateStr != "" {
				date, err = dateutil.Decode(dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			svc, err := initializeService(cfg)
			if err != nil {
				return err
			}

			appts, err := svc.Day(cmd.Context(), date)
			if err != nil {
				return err
			}

			fmt.Fprint(out, agenda.RenderDay(date, agenda.Day{Appointments: appts}))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Date as YYYY-MM-DD (default: today)")

	return cmd
}

func exportCmd() *cobra.Command {
	var year, month int
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of appointments as iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Display.GetLocation()
			if err != nil {
				return err
			}

			ref, err := resolveMonth(year, month, todayIn(loc))
			if err != nil {
				return err
			}

			svc, err := initializeService(cfg)
			if err != nil {
				return err
			}

			a, err := svc.Month(cmd.Context(), ref)
			if err != nil {
				return err
			}

			doc := agenda.ExportICS(a, loc, time.Now())

			if outPath == "" || outPath == "-" {
				fmt.Fprint(out, doc)
				return nil
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output path: %w", err)
			}
			if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			logger.Info("Agenda exported",
				zap.String("month", ref.String()),
				zap.String("file", outPath),
				zap.Int("appointments", a.Total()))
			fmt.Fprintf(out, "Exported %s to %s\n", ref.String(), outPath)

			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default: current month)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output .ics file (default: stdout)")

	return cmd
}
