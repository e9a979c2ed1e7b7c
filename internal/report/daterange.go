package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

var ErrInvalidRange = errors.New("report: date range ends before it starts")

// DateRange is an inclusive range of calendar days: from local midnight of
// the first day through the last instant of the last day. Either end may be
// open.
type DateRange struct {
	start time.Time // inclusive
	end   time.Time // exclusive, midnight after the last day
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NewDateRange builds a range from the calendar days of from and to, in the
// locations they carry. Zero times leave that end open.
func NewDateRange(from, to time.Time) (DateRange, error) {
	var r DateRange
	if !from.IsZero() {
		r.start = startOfDay(from)
	}
	if !to.IsZero() {
		r.end = startOfDay(to).AddDate(0, 0, 1)
	}
	if !r.start.IsZero() && !r.end.IsZero() && !r.start.Before(r.end) {
		return DateRange{}, ErrInvalidRange
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD bounds in loc. Empty strings are open ends.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.Local
	}
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = time.ParseInLocation(DayLayout, from, loc); err != nil {
			return DateRange{}, fmt.Errorf("report: invalid start date %q: %w", from, err)
		}
	}
	if to != "" {
		if t, err = time.ParseInLocation(DayLayout, to, loc); err != nil {
			return DateRange{}, fmt.Errorf("report: invalid end date %q: %w", to, err)
		}
	}
	return NewDateRange(f, t)
}

func (r DateRange) IsZero() bool { return r.start.IsZero() && r.end.IsZero() }

// Contains reports whether t falls in the range. A zero t has no date to
// test and always passes.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	if !r.start.IsZero() && t.Before(r.start) {
		return false
	}
	if !r.end.IsZero() && !t.Before(r.end) {
		return false
	}
	return true
}

// From and To return the bounding days as YYYY-MM-DD, empty when open.
func (r DateRange) From() string {
	if r.start.IsZero() {
		return ""
	}
	return r.start.Format(DayLayout)
}

func (r DateRange) To() string {
	if r.end.IsZero() {
		return ""
	}
	return r.end.AddDate(0, 0, -1).Format(DayLayout)
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From string `json:"from,omitempty"`
		To   string `json:"to,omitempty"`
	}{r.From(), r.To()})
}

// dateOf returns the filterable date of record i, if its collection has one.
func dateOf(s *Snapshot, c Collection, i int) (time.Time, bool) {
	switch c {
	case Tickets:
		return s.Tickets[i].CreatedAt, true
	case Equipment:
		return s.Equipment[i].AcquiredAt, true
	}
	return time.Time{}, false
}
