package domain

import (
	"errors"
	"time"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

const DefaultWindowDays = 5

var ErrInvalidWindow = errors.New("window must cover at least one day")

// CountRecord is one (table, date, count) observation from a single
// aggregation query. Dates with no rows never produce a record.
type CountRecord struct {
	Table string
	Date  time.Time // UTC midnight
	Count int64
}

// DateOf truncates t to its calendar day in t's location and returns it as
// UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a DateLayout string.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Window is the trailing range [today-Days, today], both ends inclusive.
type Window struct {
	Days int
}

func DefaultWindow() Window {
	return Window{Days: DefaultWindowDays}
}

func (w Window) Validate() error {
	if w.Days <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

// Dates returns the Days+1 calendar dates of the window ending at today,
// ascending.
func (w Window) Dates(today time.Time) []time.Time {
	if w.Days < 0 {
		return nil
	}
	end := DateOf(today)
	dates := make([]time.Time, 0, w.Days+1)
	for i := w.Days; i >= 0; i-- {
		dates = append(dates, end.AddDate(0, 0, -i))
	}
	return dates
}
