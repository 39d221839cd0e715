package application

import "time"

// DateLayout is the ISO calendar date format used for schedule keys and event ranges.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func validDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// inRange reports whether date lies within [from, to]. ISO dates compare
// lexically, so no parsing is needed once they have been validated.
func inRange(date, from, to string) bool {
	return date >= from && date <= to
}
