package util

import "time"

const dateLayout = "2006-01-02"

// DateString formats a time as the YYYY-MM-DD form used by the upstream
// provider for expiration and series dates.
func DateString(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// DaysFrom returns the date string for now plus the given number of days.
func DaysFrom(now time.Time, days int) string {
	return DateString(now.AddDate(0, 0, days))
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
