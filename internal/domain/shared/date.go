package shared

import "time"

// DateLayout is the calendar date format used for every stored date.
// Lexical order of values in this layout equals chronological order.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsValidDate reports whether s is a YYYY-MM-DD date
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate formats t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local date as YYYY-MM-DD
func Today() string {
	return FormatDate(time.Now())
}

// DaysBetween returns the whole days from start to end.
// It returns 0 if either date does not parse.
func DaysBetween(start, end string) int {
	d0, err := ParseDate(start)
	if err != nil {
		return 0
	}
	d1, err := ParseDate(end)
	if err != nil {
		return 0
	}
	return int(d1.Sub(d0).Hours() / 24)
}
