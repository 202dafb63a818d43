package agenda

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/agenda-calendar/pkg/dateutil"
)

const cellWidth = 7

var (
	monthTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	dayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")).Width(cellWidth).Align(lipgloss.Center)
	dayStyle        = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	weekendStyle    = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("6"))
	outsideStyle    = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("8")).Faint(true)
	todayStyle      = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Bold(true).Foreground(lipgloss.Color("2"))
	hasItemsStyle   = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("3"))
	timeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	categoryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

var dayHeaders = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Render draws the agenda as a Sunday-first month grid. Days with appointments
// show their count in parentheses; today is highlighted.
func Render(a *Agenda, today dateutil.CalendarDate) string {
	var sb strings.Builder

	ref := a.Month()
	title := fmt.Sprintf("%s %d", ref.Month.String(), ref.Year)
	sb.WriteString(monthTitleStyle.Render(title))
	sb.WriteString("\n\n")

	for _, h := range dayHeaders {
		sb.WriteString(dayHeaderStyle.Render(h))
	}
	sb.WriteString("\n")

	for _, week := range a.Weeks() {
		for _, day := range week {
			sb.WriteString(renderCell(day, today))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderCell(day Day, today dateutil.CalendarDate) string {
	label := fmt.Sprintf("%2d", day.Cell.DayOfMonth)
	if n := day.Count(); n > 0 {
		label = fmt.Sprintf("%2d(%d)", day.Cell.DayOfMonth, n)
	}

	switch {
	case !day.Cell.InCurrentMonth:
		return outsideStyle.Render(label)
	case day.Cell.Date == today:
		return todayStyle.Render(label)
	case day.Count() > 0:
		return hasItemsStyle.Render(label)
	case dateutil.IsWeekend(day.Cell.Date):
		return weekendStyle.Render(label)
	default:
		return dayStyle.Render(label)
	}
}

// RenderDay lists the appointments of one day in input order
func RenderDay(date dateutil.CalendarDate, day Day) string {
	var sb strings.Builder

	sb.WriteString(monthTitleStyle.Render(fmt.Sprintf("%s %s", date.Weekday().String()[:3], dateutil.Encode(date))))
	sb.WriteString("\n")

	if day.Count() == 0 {
		sb.WriteString("  ")
		sb.WriteString(emptyStyle.Render("No appointments"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, appt := range day.Appointments {
		at := appt.Time
		if at == "" {
			at = "all day"
		}

		sb.WriteString("  ")
		sb.WriteString(timeStyle.Render(fmt.Sprintf("%-7s", at)))
		sb.WriteString(" ")
		sb.WriteString(appt.Title)
		if appt.Duration != nil {
			sb.WriteString(fmt.Sprintf(" (%d min)", *appt.Duration))
		}
		if appt.Category != "" {
			sb.WriteString(" ")
			sb.WriteString(categoryStyle.Render("[" + appt.Category + "]"))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
