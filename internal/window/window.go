// Package window normalizes optional from/to date parameters into the
// closed calendar-date interval every stats and search operation is
// scoped to.
package window

import "time"

const (
	ISO = "2006-01-02"

	// DefaultDays is the trailing window applied when "from" is absent.
	DefaultDays = 30
)

// Window is an inclusive day range. From and To are midnight UTC.
type Window struct {
	From time.Time
	To   time.Time
}

// Resolve parses optional from/to strings against a reference day.
// Malformed input silently falls back to the defaults (today-29 .. today)
// and inverted bounds are swapped, so the result is never empty.
func Resolve(from, to string, today time.Time) Window {
	day := today.UTC().Truncate(24 * time.Hour)

	f := parseDate(from, day.AddDate(0, 0, -(DefaultDays-1)))
	t := parseDate(to, day)
	if f.After(t) {
		f, t = t, f
	}
	return Window{From: f, To: t}
}

// EndExclusive returns the first instant after the window, so range
// predicates on timestamps can use [From, EndExclusive) and still cover
// the whole "to" day.
func (w Window) EndExclusive() time.Time {
	return w.To.AddDate(0, 0, 1)
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.From) && ts.Before(w.EndExclusive())
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	d, err := time.ParseInLocation(ISO, s, time.UTC)
	if err != nil {
		return fallback
	}
	return d
}
