package dateutil

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical date key layout, in time package notation
const KeyLayout = "2006-01-02"

// MalformedDateKeyError is returned by Decode for keys that are not YYYY-MM-DD
// or that name a day that does not exist
type MalformedDateKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedDateKeyError) Error() string {
	return fmt.Sprintf("malformed date key %q: %s", e.Key, e.Reason)
}

// Encode formats d as YYYY-MM-DD with zero-padded month and day.
// Years outside 0000-9999 produce keys that Decode rejects.
func Encode(d CalendarDate) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Decode parses a YYYY-MM-DD key. Only the exact shape \d{4}-\d{2}-\d{2} is accepted.
func Decode(key string) (CalendarDate, error) {
	if len(key) != len(KeyLayout) {
		return CalendarDate{}, &MalformedDateKeyError{Key: key, Reason: "expected YYYY-MM-DD"}
	}

	for i := 0; i < len(key); i++ {
		c := key[i]
		if i == 4 || i == 7 {
			if c != '-' {
				return CalendarDate{}, &MalformedDateKeyError{Key: key, Reason: "expected YYYY-MM-DD"}
			}
			continue
		}
		if c < '0' || c > '9' {
			return CalendarDate{}, &MalformedDateKeyError{Key: key, Reason: "expected YYYY-MM-DD"}
		}
	}

	d := CalendarDate{
		Year:  atoi(key[0:4]),
		Month: time.Month(atoi(key[5:7])),
		Day:   atoi(key[8:10]),
	}

	if d.Month < time.January || d.Month > time.December {
		return CalendarDate{}, &MalformedDateKeyError{Key: key, Reason: "month out of range"}
	}
	if !d.IsValid() {
		return CalendarDate{}, &MalformedDateKeyError{Key: key, Reason: "day out of range"}
	}

	return d, nil
}

// MustDecode is like Decode but panics on error. Intended for tests and constants.
func MustDecode(key string) CalendarDate {
	d, err := Decode(key)
	if err != nil {
		panic(err)
	}
	return d
}

// atoi parses a run of ASCII digits already checked by Decode
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
