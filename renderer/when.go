package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/portfolio-assistant/date"
	"github.com/etnz/portfolio-assistant/timeexpr"
)

// When turns the description of a parsed period into an adverbial phrase: "last week",
// "on Monday", "in the last 5 days".
func When(description string) string {
	switch {
	case description == "":
		return ""
	case strings.HasPrefix(description, "last ") && (strings.HasSuffix(description, " days") || strings.HasSuffix(description, " day")):
		return "in the " + description
	}
	switch description {
	case "today", "yesterday", "last week", "this week", "last month", "this month":
		return description
	}
	return "on " + description
}

// relative formats a demo date for the reader, falling back to the ISO format.
func relative(clock *date.Clock, d date.Date) string {
	s, err := clock.FormatRelative(d.String())
	if err != nil {
		return d.String()
	}
	return s
}

// spokenOn turns a relative date into an adverbial phrase: "yesterday", "on Nov 18".
func spokenOn(rel string) string {
	switch {
	case rel == "Today", rel == "Yesterday", rel == "Tomorrow":
		return strings.ToLower(rel)
	case strings.HasSuffix(rel, " ago"), strings.HasPrefix(rel, "In "):
		return strings.ToLower(rel[:1]) + rel[1:]
	}
	return "on " + rel
}

// period formats the range of q, empty for a nil q.
func period(clock *date.Clock, q *timeexpr.DateRange) string {
	if q == nil {
		return ""
	}
	s, err := clock.FormatRange(q.StartDate.String(), q.EndDate.String())
	if err != nil {
		return fmt.Sprintf("%s - %s", q.StartDate, q.EndDate)
	}
	return s
}

// plural returns "1 trade" or "3 trades".
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// join lists items the way they are said: "a", "a and b", "a, b and c".
func join(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
