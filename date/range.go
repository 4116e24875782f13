package date

import "time"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of calendar days spanned by the range.
func (r Range) Days() int { return r.To.Sub(r.From) + 1 }

// Shift returns the range moved by n days.
func (r Range) Shift(n int) Range { return Range{From: r.From.Add(n), To: r.To.Add(n)} }

// Week returns the Sunday to Saturday week containing d.
func Week(d Date) Range {
	sunday := d.Add(-int(d.Weekday() - time.Sunday))
	return Range{From: sunday, To: sunday.Add(6)}
}

// Month returns the calendar month containing d.
func Month(d Date) Range {
	return Range{From: New(d.Year(), d.Month(), 1), To: New(d.Year(), d.Month()+1, 0)}
}

// LastDays returns the n calendar days ending on d (included).
func LastDays(d Date, n int) Range { return Range{From: d.Add(-(n - 1)), To: d} }
