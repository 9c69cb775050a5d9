package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	timeShortLayout = "15:04"
)

// Date is a calendar date with no time-of-day component.
// It serializes to ISO form, e.g. "2025-06-15".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate reads an ISO "YYYY-MM-DD" string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}

// MarshalJSON renders the canonical ISO date string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the canonical ISO date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time with no date component.
// It serializes to ISO form with seconds, e.g. "18:30:00".
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay reads "HH:MM:SS" or the shorter "HH:MM".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		t, err = time.Parse(timeShortLayout, value)
	}
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalJSON renders the canonical "HH:MM:SS" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM:SS" or "HH:MM".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EventInfo is the structured extraction result for one flyer.
// Every field is optional; an EventInfo with all fields nil is a valid
// outcome meaning nothing was confidently extracted.
type EventInfo struct {
	EventDate        *Date      `json:"event_date"`
	EventStartTime   *TimeOfDay `json:"event_starttime"`
	EventEndTime     *TimeOfDay `json:"event_endtime"`
	EventVenue       *string    `json:"event_venue"`
	EventLocation    *string    `json:"event_location"`
	EventDescription *string    `json:"event_description"`
	EventTitle       *string    `json:"event_title"`
}

// EncodedImage is a base64 rendition of an image file ready for
// transmission to an inference service.
type EncodedImage struct {
	MediaType string
	Data      string
}

// DataURI renders the embedded data reference expected by vision APIs.
func (i EncodedImage) DataURI() string {
	return "data:" + i.MediaType + ";base64," + i.Data
}
