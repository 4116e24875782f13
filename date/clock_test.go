package date

import (
	"errors"
	"testing"
	"time"
)

func TestOffset(t *testing.T) {
	anchor := New(2025, time.November, 20)
	tests := []struct {
		name  string
		today Date
		want  int
	}{
		{"anchor in the future", New(2024, time.December, 4), 351},
		{"anchor in the past", New(2025, time.November, 30), -10},
		{"anchor is today", anchor, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FixedClock(anchor, tt.today)
			if got := c.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
			if got := c.DemoToday(); got != anchor {
				t.Errorf("DemoToday() = %v, want the anchor %v", got, anchor)
			}
		})
	}
}

func TestOffset_DistantAnchor(t *testing.T) {
	tests := []struct {
		anchor, today Date
		want          int
	}{
		{New(1700, time.January, 1), New(2025, time.January, 1), -118704},
		{New(2400, time.January, 1), New(2025, time.January, 1), 136965},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			c := FixedClock(tt.anchor, tt.today)
			if got := c.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
			if got := c.DemoToday(); got != tt.anchor {
				t.Errorf("DemoToday() = %v, want the anchor %v", got, tt.anchor)
			}
		})
	}
}

func TestOffsetIsNotMemoized(t *testing.T) {
	now := time.Date(2024, time.December, 4, 23, 59, 0, 0, time.Local)
	c := NewClock(DefaultAnchor, WithNow(func() time.Time { return now }))

	first := c.Offset()
	if again := c.Offset(); again != first {
		t.Fatalf("Offset() changed within the same day: %d then %d", first, again)
	}
	now = now.Add(2 * time.Minute) // crosses midnight
	if got := c.Offset(); got != first-1 {
		t.Errorf("Offset() after midnight = %d, want %d", got, first-1)
	}
}

func TestOffsetUsesLocalCalendar(t *testing.T) {
	// late evening west of UTC is already tomorrow in UTC.
	loc := time.FixedZone("UTC-8", -8*3600)
	c := NewClock(DefaultAnchor, WithNow(func() time.Time {
		return time.Date(2024, time.December, 3, 22, 0, 0, 0, loc)
	}))
	if got := c.Offset(); got != 352 {
		t.Errorf("Offset() = %d, want 352", got)
	}
}

func TestRoundTrip(t *testing.T) {
	c := FixedClock(DefaultAnchor, New(2024, time.December, 4))
	start := New(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		d := start.Add(i)
		if got := c.ToActual(c.ToDemo(d)); got != d {
			t.Fatalf("ToActual(ToDemo(%v)) = %v", d, got)
		}
	}
}

func TestToDemo(t *testing.T) {
	c := FixedClock(DefaultAnchor, New(2024, time.December, 4))
	if got, want := c.ToDemo(New(2024, time.December, 3)), New(2025, time.November, 19); got != want {
		t.Errorf("ToDemo() = %v, want %v", got, want)
	}
	got, err := c.ToActualString("2025-11-19")
	if err != nil {
		t.Fatalf("ToActualString() error = %v", err)
	}
	if want := New(2024, time.December, 3); got != want {
		t.Errorf("ToActualString() = %v, want %v", got, want)
	}
}

func TestFormatRelative(t *testing.T) {
	// actual today is 2024-12-04, demo today is 2025-11-20.
	c := FixedClock(DefaultAnchor, New(2024, time.December, 4))
	tests := []struct {
		demo string
		want string
	}{
		{"2025-11-20", "Today"},
		{"2025-11-19", "Yesterday"},
		{"2025-11-21", "Tomorrow"},
		{"2025-11-17", "3 days ago"},
		{"2025-11-14", "6 days ago"},
		{"2025-11-23", "In 3 days"},
		{"2025-11-13", "Nov 27"},
		{"2025-11-27", "Dec 11"},
		{"2025-01-01", "Jan 16"},
		{"2024-12-01", "Dec 16, 2023"},
		{"2025-12-28", "Jan 11, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.demo, func(t *testing.T) {
			got, err := c.FormatRelative(tt.demo)
			if err != nil {
				t.Fatalf("FormatRelative(%q) error = %v", tt.demo, err)
			}
			if got != tt.want {
				t.Errorf("FormatRelative(%q) = %q, want %q", tt.demo, got, tt.want)
			}
		})
	}
}

func TestFormatRange(t *testing.T) {
	c := FixedClock(DefaultAnchor, New(2024, time.December, 4))
	tests := []struct {
		start, end string
		want       string
	}{
		{"2025-11-10", "2025-11-16", "Nov 24 - Nov 30"},
		{"2025-11-19", "2025-11-19", "Dec 3"},
		{"2025-11-16", "2025-11-20", "Nov 30 - Dec 4"},
	}
	for _, tt := range tests {
		got, err := c.FormatRange(tt.start, tt.end)
		if err != nil {
			t.Fatalf("FormatRange(%q, %q) error = %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("FormatRange(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestMalformedDemoDates(t *testing.T) {
	c := FixedClock(DefaultAnchor, New(2024, time.December, 4))
	var perr *ParseError
	if _, err := c.FormatRelative("yesterday"); !errors.As(err, &perr) {
		t.Errorf("FormatRelative() error = %v, want a *ParseError", err)
	}
	if _, err := c.FormatRange("2025-11-19", "2025-13-01"); !errors.As(err, &perr) {
		t.Errorf("FormatRange() error = %v, want a *ParseError", err)
	}
	if _, err := c.ToActualString(""); !errors.As(err, &perr) {
		t.Errorf("ToActualString() error = %v, want a *ParseError", err)
	}
}
