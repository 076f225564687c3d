package models

import "time"

// Bucket keying for the four chart dimensions. Keys are plain strings chosen
// so that sorting them as opaque strings yields the natural display order:
// hours and calendar keys sort lexically anyway, weekdays carry a "$<ordinal>"
// prefix (Sunday = 0) that is stripped only at display time.

var weekdayKeys = [7]string{
	"$0Sunday",
	"$1Monday",
	"$2Tuesday",
	"$3Wednesday",
	"$4Thursday",
	"$5Friday",
	"$6Saturday",
}

// HourKey maps t to its time-of-day bucket "00".."23".
func HourKey(t time.Time) string {
	return t.UTC().Format("15")
}

// DayKey maps t to its calendar-day bucket "YYYY-MM-DD".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey maps t to its calendar-month bucket "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// WeekdayKey maps t to its ordinal-prefixed weekday bucket, e.g. "$0Sunday".
func WeekdayKey(t time.Time) string {
	return weekdayKeys[int(t.UTC().Weekday())]
}

// WeekdayDisplay strips the two-character ordinal prefix from a weekday
// bucket key. Keys from other dimensions pass through unchanged.
func WeekdayDisplay(key string) string {
	if len(key) >= 2 && key[0] == '$' {
		return key[2:]
	}
	return key
}
