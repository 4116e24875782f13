package timeexpr

import (
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/etnz/portfolio-assistant/date"
)

// wednesday is the actual today used by most tests.
var wednesday = date.New(2024, time.December, 4)

func newTestParser(today date.Date) (*Parser, *date.Clock) {
	clock := date.FixedClock(date.DefaultAnchor, today)
	return New(clock), clock
}

func TestParse(t *testing.T) {
	p, clock := newTestParser(wednesday)
	d := func(m time.Month, day int) date.Date { return date.New(2024, m, day) }

	tests := []struct {
		input       string
		kind        Kind
		from, to    date.Date // actual coordinates
		description string
		dayOfWeek   string
	}{
		{"today", Specific, d(12, 4), d(12, 4), "today", ""},
		{"  Yesterday ", Specific, d(12, 3), d(12, 3), "yesterday", ""},
		{"November 18th", Specific, d(11, 18), d(11, 18), "November 18th", ""},
		{"nov 18", Specific, d(11, 18), d(11, 18), "November 18th", ""},
		{"on Nov 1st", Specific, d(11, 1), d(11, 1), "November 1st", ""},
		{"18th of November", Specific, d(11, 18), d(11, 18), "November 18th", ""},
		{"Sept 2", Specific, d(9, 2), d(9, 2), "September 2nd", ""},
		{"December 25th", Specific, date.New(2023, time.December, 25), date.New(2023, time.December, 25), "December 25th", ""},
		{"december 4", Specific, d(12, 4), d(12, 4), "December 4th", ""},
		{"last week", Range, d(11, 24), d(11, 30), "last week", ""},
		{"past week", Range, d(11, 24), d(11, 30), "last week", ""},
		{"this week", Range, d(12, 1), d(12, 4), "this week", ""},
		{"last 5 days", Range, d(11, 30), d(12, 4), "last 5 days", ""},
		{"past five days", Range, d(11, 30), d(12, 4), "last 5 days", ""},
		{"The last 5 days?", Range, d(11, 30), d(12, 4), "last 5 days", ""},
		{"last twenty days", Range, d(11, 15), d(12, 4), "last 20 days", ""},
		{"last 1 day", Specific, d(12, 4), d(12, 4), "last 1 day", ""},
		{"last 5 trading days", Range, d(11, 28), d(12, 4), "last 5 trading days", ""},
		{"past three trading days", Range, d(11, 30), d(12, 4), "last 3 trading days", ""},
		{"last month", Range, d(11, 1), d(11, 30), "last month", ""},
		{"this month", Range, d(12, 1), d(12, 4), "this month", ""},
		{"Monday", Specific, d(12, 2), d(12, 2), "Monday", "Monday"},
		{"last wednesday", Specific, d(11, 27), d(11, 27), "Wednesday", "Wednesday"},
		{"on friday", Specific, d(11, 29), d(11, 29), "Friday", "Friday"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := p.Parse(tt.input)
			if !ok {
				t.Fatalf("Parse(%q) not recognized", tt.input)
			}
			want := Query{
				Kind: tt.kind,
				DateRange: DateRange{
					StartDate:   clock.ToDemo(tt.from),
					EndDate:     clock.ToDemo(tt.to),
					Description: tt.description,
					DayCount:    tt.to.Sub(tt.from) + 1,
				},
				DayOfWeek: tt.dayOfWeek,
			}
			if got != want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, want)
			}
			if got.DateRange.StartDate.After(got.DateRange.EndDate) {
				t.Errorf("Parse(%q) start %v after end %v", tt.input, got.DateRange.StartDate, got.DateRange.EndDate)
			}
		})
	}
}

func TestParseUnrecognized(t *testing.T) {
	p, _ := newTestParser(wednesday)
	for _, input := range []string{
		"xyzzy",
		"",
		"   ",
		"last 0 days",
		"last zero days",
		"last twentyone days",
		"last -3 days",
		"february 30",
		"november 32nd",
		"next week",
		"tomorrow",
		"last 99999 days",
	} {
		if q, ok := p.Parse(input); ok {
			t.Errorf("Parse(%q) = %+v, want unrecognized", input, q)
		}
	}
}

func TestParseLastDaysScenario(t *testing.T) {
	p, clock := newTestParser(date.New(2024, time.December, 10))
	q, ok := p.Parse("last 5 days")
	if !ok {
		t.Fatal("Parse() not recognized")
	}
	if want := clock.ToDemo(date.New(2024, time.December, 6)); q.DateRange.StartDate != want {
		t.Errorf("StartDate = %v, want %v", q.DateRange.StartDate, want)
	}
	if want := clock.ToDemo(date.New(2024, time.December, 10)); q.DateRange.EndDate != want {
		t.Errorf("EndDate = %v, want %v", q.DateRange.EndDate, want)
	}
	if q.DateRange.DayCount != 5 {
		t.Errorf("DayCount = %d, want 5", q.DateRange.DayCount)
	}
}

func TestParseIsInDemoCoordinates(t *testing.T) {
	p, _ := newTestParser(wednesday)
	q, ok := p.Parse("yesterday")
	if !ok {
		t.Fatal("Parse() not recognized")
	}
	// the demo anchor is 2025-11-20 so yesterday is 2025-11-19 in the database.
	if want := date.New(2025, time.November, 19); q.DateRange.StartDate != want {
		t.Errorf("StartDate = %v, want %v", q.DateRange.StartDate, want)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	p, _ := newTestParser(wednesday)
	first, _ := p.Parse("last week")
	second, _ := p.Parse("last week")
	if first != second {
		t.Errorf("Parse() is not deterministic: %+v then %+v", first, second)
	}
}

func TestParseWeekdayNeverToday(t *testing.T) {
	for i := 0; i < 7; i++ {
		today := wednesday.Add(i)
		p, clock := newTestParser(today)
		for name := range weekdays {
			q, ok := p.Parse(name)
			if !ok {
				t.Fatalf("Parse(%q) not recognized", name)
			}
			on := clock.ToActual(q.DateRange.StartDate)
			if back := today.Sub(on); back < 1 || back > 7 {
				t.Errorf("Parse(%q) on %v = %v, want within the 7 previous days", name, today, on)
			}
		}
	}
}

func TestRuleOrder(t *testing.T) {
	p, _ := newTestParser(wednesday)
	want := []string{
		"today",
		"yesterday",
		"calendar date",
		"last week",
		"this week",
		"last n days",
		"last n trading days",
		"last month",
		"this month",
		"weekday",
	}
	if got := p.Rules(); !slices.Equal(got, want) {
		t.Errorf("Rules() = %v, want %v", got, want)
	}
}

func TestQueryJSON(t *testing.T) {
	p, _ := newTestParser(wednesday)
	q, _ := p.Parse("monday")
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"kind":"specific","dateRange":{"startDate":"2025-11-18","endDate":"2025-11-18","description":"Monday","dayCount":1},"dayOfWeekName":"Monday"}`
	if string(b) != want {
		t.Errorf("json.Marshal() = %s, want %s", b, want)
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 31: "31st"}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
