// Package timeexpr parses natural-language time expressions ("last week", "past 5 trading days",
// "November 18th", "Monday") into date ranges in demo-database coordinates.
package timeexpr

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/etnz/portfolio-assistant/date"
)

// Kind tells whether a query denotes a single day or a span of days.
type Kind int

const (
	Specific Kind = iota // a single calendar day
	Range                // a multi-day span
)

func (k Kind) String() string {
	switch k {
	case Specific:
		return "specific"
	case Range:
		return "range"
	default:
		panic(fmt.Sprintf("unknown kind %d", k))
	}
}

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// DateRange is a range of dates in demo coordinates, ready to be used as query bounds.
type DateRange struct {
	StartDate   date.Date `json:"startDate"`
	EndDate     date.Date `json:"endDate"`
	Description string    `json:"description"` // short human phrase, e.g. "last week"
	DayCount    int       `json:"dayCount"`    // calendar days spanned
}

// Range returns the date.Range covered.
func (r DateRange) Range() date.Range { return date.Range{From: r.StartDate, To: r.EndDate} }

// Query is a parsed time expression.
type Query struct {
	Kind      Kind      `json:"kind"`
	DateRange DateRange `json:"dateRange"`
	DayOfWeek string    `json:"dayOfWeekName,omitempty"`
}

// maxDays bounds "last N days" expressions.
const maxDays = 3660

// rule is a single recognized pattern. resolve works in actual coordinates.
type rule struct {
	name    string
	re      *regexp.Regexp
	resolve func(m []string, today date.Date) (Query, bool)
}

// Parser converts time expressions to date ranges, using the demo clock to map them into demo
// coordinates. A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	clock *date.Clock
	rules []rule
}

// New returns a Parser resolving expressions against the given clock.
func New(clock *date.Clock) *Parser {
	return &Parser{clock: clock, rules: rules}
}

// Rules returns the names of the recognized patterns, in the order they are tried.
func (p *Parser) Rules() []string {
	names := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		names = append(names, r.name)
	}
	return names
}

// Parse parses a time expression.
//
// It returns false when no pattern is recognized; callers should ask the user to clarify.
func (p *Parser) Parse(text string) (Query, bool) {
	text = normalize(text)
	if text == "" {
		return Query{}, false
	}
	today := p.clock.ActualToday()
	for _, r := range p.rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		q, ok := r.resolve(m, today)
		if !ok {
			continue
		}
		// resolved in actual coordinates, shift to the database ones.
		q.DateRange.StartDate = p.clock.ToDemo(q.DateRange.StartDate)
		q.DateRange.EndDate = p.clock.ToDemo(q.DateRange.EndDate)
		return q, true
	}
	return Query{}, false
}

var (
	spacesRE   = regexp.MustCompile(`\s+`)
	trailingRE = regexp.MustCompile(`[\s?.!,;]+$`)
)

// normalize lower-cases, collapses white spaces and drops decorations that do not change the meaning.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = spacesRE.ReplaceAllString(text, " ")
	text = trailingRE.ReplaceAllString(text, "")
	text = strings.TrimPrefix(text, "the ")
	return text
}

// newQuery builds a query over r.
func newQuery(r date.Range, description string) Query {
	k := Range
	if r.From == r.To {
		k = Specific
	}
	return Query{
		Kind: k,
		DateRange: DateRange{
			StartDate:   r.From,
			EndDate:     r.To,
			Description: description,
			DayCount:    r.Days(),
		},
	}
}

const (
	monthNames   = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec`
	weekdayNames = `sunday|monday|tuesday|wednesday|thursday|friday|saturday`
	lastWord     = `(?:last|past|previous)`
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

// rules are tried in order, the first match wins. The order matters for ambiguous phrases.
var rules = []rule{
	{
		name: "today",
		re:   regexp.MustCompile(`^today$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			return newQuery(date.Range{From: today, To: today}, "today"), true
		},
	},
	{
		name: "yesterday",
		re:   regexp.MustCompile(`^yesterday$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			d := today.Add(-1)
			return newQuery(date.Range{From: d, To: d}, "yesterday"), true
		},
	},
	{
		name: "calendar date",
		re: regexp.MustCompile(`^(?:on )?(?:(` + monthNames + `) (\d{1,2})(?:st|nd|rd|th)?` +
			`|(\d{1,2})(?:st|nd|rd|th)? (?:of )?(` + monthNames + `))$`),
		resolve: resolveCalendarDate,
	},
	{
		name: "last week",
		re:   regexp.MustCompile(`^` + lastWord + ` week$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			return newQuery(date.Week(today).Shift(-7), "last week"), true
		},
	},
	{
		name: "this week",
		re:   regexp.MustCompile(`^this week$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			return newQuery(date.Range{From: date.Week(today).From, To: today}, "this week"), true
		},
	},
	{
		name: "last n days",
		re:   regexp.MustCompile(`^` + lastWord + ` (\w+) days?$`),
		resolve: func(m []string, today date.Date) (Query, bool) {
			n, ok := parseCount(m[1])
			if !ok || n > maxDays {
				return Query{}, false
			}
			return newQuery(date.LastDays(today, n), fmt.Sprintf("last %d %s", n, plural(n, "day"))), true
		},
	},
	{
		name: "last n trading days",
		re:   regexp.MustCompile(`^` + lastWord + ` (\w+) trading days?$`),
		resolve: func(m []string, today date.Date) (Query, bool) {
			n, ok := parseCount(m[1])
			if !ok || n > maxDays {
				return Query{}, false
			}
			// approximation: five trading days per seven calendar days, holidays are ignored.
			span := int(math.Ceil(float64(n) * 7 / 5))
			return newQuery(date.LastDays(today, span), fmt.Sprintf("last %d trading %s", n, plural(n, "day"))), true
		},
	},
	{
		name: "last month",
		re:   regexp.MustCompile(`^` + lastWord + ` month$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			first := date.Month(today).From
			return newQuery(date.Month(first.Add(-1)), "last month"), true
		},
	},
	{
		name: "this month",
		re:   regexp.MustCompile(`^this month$`),
		resolve: func(_ []string, today date.Date) (Query, bool) {
			return newQuery(date.Range{From: date.Month(today).From, To: today}, "this month"), true
		},
	},
	{
		name:    "weekday",
		re:      regexp.MustCompile(`^(?:last |on |this past )?(` + weekdayNames + `)$`),
		resolve: resolveWeekday,
	},
}

func resolveCalendarDate(m []string, today date.Date) (Query, bool) {
	name, digits := m[1], m[2]
	if name == "" {
		name, digits = m[4], m[3]
	}
	month, ok := months[name[:3]]
	if !ok {
		return Query{}, false
	}
	day, ok := parseCount(digits)
	if !ok || day > 31 {
		return Query{}, false
	}
	year := today.Year()
	on := date.New(year, month, day)
	if on.After(today) {
		// users talk about the past, never about a future occurrence.
		year--
		on = date.New(year, month, day)
	}
	if on.Month() != month || on.Day() != day {
		// New normalized an impossible day like Feb 30.
		return Query{}, false
	}
	q := newQuery(date.Range{From: on, To: on}, fmt.Sprintf("%s %s", month, ordinal(day)))
	return q, true
}

func resolveWeekday(m []string, today date.Date) (Query, bool) {
	target := weekdays[m[1]]
	back := int(today.Weekday()-target+7) % 7
	if back == 0 {
		back = 7
	}
	on := today.Add(-back)
	q := newQuery(date.Range{From: on, To: on}, target.String())
	q.DayOfWeek = target.String()
	return q, true
}

// ordinal writes 1 as "1st", 2 as "2nd", 11 as "11th" etc.
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
