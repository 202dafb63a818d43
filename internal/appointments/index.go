package appointments

import "github.com/username/agenda-calendar/pkg/dateutil"

// AppointmentsOnDate returns the appointments whose date key matches date,
// in their original relative order. The result is never nil.
func AppointmentsOnDate(appointments []Appointment, date dateutil.CalendarDate) []Appointment {
	key := dateutil.Encode(date)

	result := make([]Appointment, 0)
	for _, a := range appointments {
		if a.Date == key {
			result = append(result, a)
		}
	}
	return result
}

// GroupByDate buckets appointments by their date key in a single pass.
// Each bucket keeps the input order. Keys are taken verbatim, so malformed
// dates end up in their own buckets and never match a grid cell.
func GroupByDate(appointments []Appointment) map[string][]Appointment {
	groups := make(map[string][]Appointment)
	for _, a := range appointments {
		groups[a.Date] = append(groups[a.Date], a)
	}
	return groups
}
