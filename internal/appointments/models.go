package appointments

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/username/agenda-calendar/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// FlexibleID handles both string and number IDs from the backend.
// Older endpoints return numeric IDs, newer ones return strings.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexibleID(strconv.FormatInt(n, 10))
		return nil
	}

	return fmt.Errorf("FlexibleID: cannot unmarshal %s", string(b))
}

// MarshalJSON implements json.Marshaler for FlexibleID
func (f FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// UnmarshalYAML implements yaml.Unmarshaler for FlexibleID
func (f *FlexibleID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("FlexibleID: expected scalar at line %d", value.Line)
	}
	*f = FlexibleID(value.Value)
	return nil
}

// String returns string representation
func (f FlexibleID) String() string {
	return string(f)
}

// Appointment is an agenda entry as returned by the backend.
// Date holds the canonical YYYY-MM-DD key; Time is the wall-clock start (HH:MM).
type Appointment struct {
	ID          FlexibleID `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Date        string     `json:"date" yaml:"date"`
	Time        string     `json:"time" yaml:"time"`
	Category    string     `json:"category" yaml:"category"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Duration    *int       `json:"duration,omitempty" yaml:"duration,omitempty"` // minutes
}

// CalendarDate decodes the appointment's date key
func (a Appointment) CalendarDate() (dateutil.CalendarDate, error) {
	return dateutil.Decode(a.Date)
}

// Validate checks the fields the calendar relies on
func (a Appointment) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("appointment %q: title is required", a.ID)
	}
	if _, err := dateutil.Decode(a.Date); err != nil {
		return fmt.Errorf("appointment %q: %w", a.ID, err)
	}
	return nil
}
