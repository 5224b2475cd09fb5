package util

import "strconv"

// ParseInt64Default parses string to int64 or returns default if empty/invalid.
func ParseInt64Default(s string, def int64) int64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// ParseFloat parses an upstream numeric field serialized as text; invalid or
// empty input yields zero.
func ParseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
