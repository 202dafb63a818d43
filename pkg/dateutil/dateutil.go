package dateutil

import "time"

// CalendarDate is a day on the proleptic Gregorian calendar with no time of day
// and no timezone. Two CalendarDates are equal when their fields are equal.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Date builds a CalendarDate without validating it
func Date(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// FromTime returns the calendar day of t as displayed in t's own location.
// The instant is never normalized to UTC first, so local midnight stays on its day.
func FromTime(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{Year: year, Month: month, Day: day}
}

// FromTimeIn returns the calendar day of t as seen from loc
func FromTimeIn(t time.Time, loc *time.Location) CalendarDate {
	if loc == nil {
		return FromTime(t)
	}
	return FromTime(t.In(loc))
}

// Time returns midnight of the date in loc (UTC when loc is nil)
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the month, or 0 if month is not 1-12
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// IsValid reports whether the date exists on the calendar
func (d CalendarDate) IsValid() bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// DayNumber returns the number of days since 1970-01-01 (negative before it).
// Works for any year using floor division over 400-year eras.
func (d CalendarDate) DayNumber() int {
	y := d.Year
	m := int(d.Month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12 // March = 0
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// FromDayNumber is the inverse of DayNumber
func FromDayNumber(n int) CalendarDate {
	z := n + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	month := mp + 3
	if month > 12 {
		month -= 12
	}
	if month <= 2 {
		y++
	}
	return CalendarDate{Year: y, Month: time.Month(month), Day: day}
}

// AddDays returns the date n days after d (n may be negative)
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromDayNumber(d.DayNumber() + n)
}

// Weekday returns the day of the week, Sunday = 0
func (d CalendarDate) Weekday() time.Weekday {
	// 1970-01-01 was a Thursday
	return time.Weekday(floorMod(d.DayNumber()+4, 7))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other
func (d CalendarDate) Compare(other CalendarDate) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other
func (d CalendarDate) Before(other CalendarDate) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other
func (d CalendarDate) After(other CalendarDate) bool {
	return d.Compare(other) > 0
}

// Equal reports whether d and other are the same day
func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

// StartOfWeek returns the Sunday on or before d
func StartOfWeek(d CalendarDate) CalendarDate {
	return d.AddDays(-int(d.Weekday()))
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(d CalendarDate) bool {
	weekday := d.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameMonth returns true if both dates fall in the same month of the same year
func IsSameMonth(d1, d2 CalendarDate) bool {
	return d1.Year == d2.Year && d1.Month == d2.Month
}

// String returns the canonical date key
func (d CalendarDate) String() string {
	return Encode(d)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
