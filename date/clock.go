package date

import (
	"fmt"
	"time"
)

// DefaultAnchor is the day the demo dataset considers to be "today".
var DefaultAnchor = New(2025, time.November, 20)

// Clock maps the actual calendar to the demo calendar.
//
// The demo dataset was generated around a fixed anchor date. A Clock translates dates between
// actual coordinates (the calendar the user lives in) and demo coordinates (the calendar the
// dataset is written in) by a signed offset of whole days.
//
// The offset is computed on every call from the current date, so that a process running across
// midnight picks up the new offset without restart. Within a day it is stable.
type Clock struct {
	anchor Date
	now    func() time.Time
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow sets the function returning the current instant. Its local calendar date is the actual
// "today".
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) { c.now = now }
}

// NewClock returns a Clock anchored on the given demo date.
func NewClock(anchor Date, opts ...ClockOption) *Clock {
	c := &Clock{anchor: anchor, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FixedClock returns a Clock whose actual today is always 'today'. Mostly useful in tests.
func FixedClock(anchor, today Date) *Clock {
	return NewClock(anchor, WithNow(func() time.Time {
		return time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, time.Local)
	}))
}

// Anchor returns the demo anchor date.
func (c *Clock) Anchor() Date { return c.anchor }

// ActualToday returns the actual current date, in the local calendar.
func (c *Clock) ActualToday() Date { return Of(c.now()) }

// DemoToday returns the current date in demo coordinates.
func (c *Clock) DemoToday() Date { return c.ToDemo(c.ActualToday()) }

// Offset returns the number of days from the actual today to the demo anchor.
//
// It is positive when the anchor is in the future.
func (c *Clock) Offset() int { return c.anchor.Sub(c.ActualToday()) }

// ToDemo converts an actual date to demo coordinates.
func (c *Clock) ToDemo(actual Date) Date { return actual.Add(c.Offset()) }

// ToActual converts a demo date to actual coordinates.
func (c *Clock) ToActual(demo Date) Date { return demo.Add(-c.Offset()) }

// RangeToDemo converts an actual range to demo coordinates.
func (c *Clock) RangeToDemo(r Range) Range { return r.Shift(c.Offset()) }

// ToActualString parses a demo date string and converts it to actual coordinates.
func (c *Clock) ToActualString(demo string) (Date, error) {
	d, err := Parse(demo)
	if err != nil {
		return Date{}, err
	}
	return c.ToActual(d), nil
}

const shortFormat = "Jan 2"

// FormatRelative describes a demo date relative to today, the way it would be said out loud.
//
// Dates within a week are "Today", "Yesterday", "3 days ago", "In 2 days"... older or later dates
// are written "Nov 18", with the year only when it is not the current one.
func (c *Clock) FormatRelative(demo string) (string, error) {
	actual, err := c.ToActualString(demo)
	if err != nil {
		return "", err
	}
	today := c.ActualToday()
	switch diff := actual.Sub(today); {
	case diff == 0:
		return "Today", nil
	case diff == -1:
		return "Yesterday", nil
	case diff == 1:
		return "Tomorrow", nil
	case diff < 0 && diff > -7:
		return fmt.Sprintf("%d days ago", -diff), nil
	case diff > 0 && diff < 7:
		return fmt.Sprintf("In %d days", diff), nil
	}
	if actual.Year() != today.Year() {
		return actual.Format(shortFormat + ", 2006"), nil
	}
	return actual.Format(shortFormat), nil
}

// FormatRange describes a range of demo dates as "Nov 3 - Nov 9", or "Nov 3" for a single day.
func (c *Clock) FormatRange(startDemo, endDemo string) (string, error) {
	start, err := c.ToActualString(startDemo)
	if err != nil {
		return "", err
	}
	end, err := c.ToActualString(endDemo)
	if err != nil {
		return "", err
	}
	s, e := start.Format(shortFormat), end.Format(shortFormat)
	if s == e {
		return s, nil
	}
	return s + " - " + e, nil
}
