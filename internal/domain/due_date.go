package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DueDate wraps a point in time a task is due. The zero DueDate is not a
// valid value; construct one through NewDueDate or ParseDueDate.
type DueDate struct {
	t time.Time
}

// NewDueDate creates a DueDate from a timestamp. Returns ErrInvalidDueDate
// if the timestamp is the zero time.
func NewDueDate(t time.Time) (DueDate, error) {
	if t.IsZero() {
		return DueDate{}, fmt.Errorf("%w: zero timestamp", ErrInvalidDueDate)
	}
	return DueDate{t: t.UTC()}, nil
}

// ParseDueDate creates a DueDate from an RFC 3339 timestamp string.
// Returns ErrInvalidDueDate if the string cannot be parsed.
func ParseDueDate(s string) (DueDate, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return DueDate{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return NewDueDate(t)
}

// Time returns the underlying timestamp in UTC.
func (d DueDate) Time() time.Time {
	return d.t
}

// IsInPast reports whether the due date lies before the current wall clock.
func (d DueDate) IsInPast() bool {
	return d.t.Before(time.Now().UTC())
}

// IsWithinHours reports whether the due date is strictly in the future and
// at most the given number of hours away. A due date exactly at the horizon
// counts as within it; a due date at or before now does not.
func (d DueDate) IsWithinHours(hours int) bool {
	return d.isWithinHoursAt(time.Now().UTC(), hours)
}

func (d DueDate) isWithinHoursAt(now time.Time, hours int) bool {
	diff := d.t.Sub(now)
	return diff > 0 && diff <= time.Duration(hours)*time.Hour
}

// Equal reports whether two due dates name the same instant.
func (d DueDate) Equal(other DueDate) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON encodes the due date as an RFC 3339 string.
func (d DueDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t.Format(time.RFC3339Nano))
}

// UnmarshalJSON decodes an RFC 3339 string into a DueDate.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDueDate, data)
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
