package domain

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire format for birthdates: ISO calendar date, no time
// or timezone component.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value is "no date".
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format %s", s, DateLayout)
	}
	return Date{t: t}, nil
}

// Before reports whether d falls strictly before other. Equal days are not
// before each other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date literal: %s", data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
