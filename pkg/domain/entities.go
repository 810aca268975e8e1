// Package domain defines the bioacoustic entities exchanged through the
// Acoustic Objects Exchange Format: recordings, clips, sound events,
// annotations, predictions, evaluations, and the metadata attached to them.
//
// The package is a pure data model. Values are assumed to be already
// validated by their producers; the AOEF engine copies or references them
// without re-checking domain rules.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a key-value label attached to recordings, clips, and sound events.
// Two tags with the same key and value are the same tag: identity is
// structural, not by reference.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PredictedTag pairs a tag with the confidence score a model assigned to it.
type PredictedTag struct {
	Tag   Tag     `json:"tag"`
	Score float64 `json:"score"`
}

// User identifies a person who owns recordings, writes notes, or annotates.
// Identity is structural over all fields; there is no separate surrogate id.
type User struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Note is a free-form remark attached to a recording, clip, or annotation.
type Note struct {
	UUID      uuid.UUID `json:"uuid"`
	Message   string    `json:"message"`
	CreatedBy *User     `json:"created_by,omitempty"`
	IsIssue   bool      `json:"is_issue,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// Feature is a named scalar measurement (duration, peak frequency, a model
// embedding dimension). The engine treats names and values as opaque.
type Feature struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Date is a calendar date with no time-of-day component. It serializes as
// "2006-01-02".
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Equal reports whether two dates denote the same instant.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

// MarshalJSON renders the date as a quoted "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON parses a quoted "2006-01-02" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// TimeOfDay is a wall-clock time with no date component. It serializes as
// "15:04:05".
type TimeOfDay struct {
	time.Time
}

// NewTimeOfDay builds a TimeOfDay on the zero date in UTC.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Time: time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC)}
}

// Equal reports whether two times of day denote the same instant.
func (t TimeOfDay) Equal(other TimeOfDay) bool { return t.Time.Equal(other.Time) }

// MarshalJSON renders the time as a quoted "15:04:05" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format("15:04:05") + `"`), nil
}

// UnmarshalJSON parses a quoted "15:04:05" string.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
