package services

import (
	"fmt"
	"math"
	"time"
)

const calendarDateLayout = "2006-01-02"

// CalendarDate is a day-granularity date, timezone-resolved at creation
// and stored as zero-padded ISO (YYYY-MM-DD), so ordering is plain
// string comparison.
type CalendarDate string

func (date CalendarDate) String() string {
	return string(date)
}

func (date CalendarDate) Before(other CalendarDate) bool {
	return string(date) < string(other)
}

func (date CalendarDate) After(other CalendarDate) bool {
	return string(date) > string(other)
}

func (date CalendarDate) IsZero() bool {
	return string(date) == ""
}

// ResolveLocation maps a client timezone to a *time.Location. Empty
// means the server's environment zone; unknown names degrade to UTC
// rather than failing the request.
func ResolveLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// Today returns the current wall-clock date in the given IANA zone.
func Today(timezone string) CalendarDate {
	return FormatInTimezone(time.Now(), timezone)
}

// FormatInTimezone projects an absolute instant into the day bucket it
// falls in for the given zone. A UTC truncation is not equivalent: the
// UTC day boundary can differ from the client's local one.
func FormatInTimezone(instant time.Time, timezone string) CalendarDate {
	location := ResolveLocation(timezone)
	return CalendarDate(instant.In(location).Format(calendarDateLayout))
}

// MakeCalendarDate builds a CalendarDate from decomposed components,
// normalizing overflow the way time.Date does.
func MakeCalendarDate(year int, month time.Month, day int) CalendarDate {
	normalized := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return CalendarDate(normalized.Format(calendarDateLayout))
}

// components decomposes a CalendarDate. Malformed values resolve to the
// current UTC date so downstream derivation stays total.
func (date CalendarDate) components() (int, time.Month, int) {
	parsed, err := time.ParseInLocation(calendarDateLayout, string(date), time.UTC)
	if err != nil {
		now := time.Now().UTC()
		return now.Date()
	}
	return parsed.Date()
}

// utcMidpoint anchors a date at noon UTC. Day arithmetic on midpoints
// cannot be skewed by daylight-saving transitions.
func (date CalendarDate) utcMidpoint() time.Time {
	year, month, day := date.components()
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// AddDays shifts a date by n whole days; n may be negative.
func AddDays(date CalendarDate, n int) CalendarDate {
	year, month, day := date.components()
	return MakeCalendarDate(year, month, day+n)
}

// Weekday returns 0..6 with 0 = Sunday.
func Weekday(date CalendarDate) int {
	return int(date.utcMidpoint().Weekday())
}

// WeekStartSunday returns the Sunday on or before date.
func WeekStartSunday(date CalendarDate) CalendarDate {
	return AddDays(date, -Weekday(date))
}

// WeekEndSaturday returns the Saturday on or after date.
func WeekEndSaturday(date CalendarDate) CalendarDate {
	return AddDays(WeekStartSunday(date), 6)
}

// LastSaturday returns the most recent Saturday on or before date.
func LastSaturday(date CalendarDate) CalendarDate {
	return AddDays(date, -((Weekday(date)-6+7)%7))
}

// DiffDays returns the whole-day difference later - earlier. Rounding
// guards against any residual sub-day drift.
func DiffDays(later CalendarDate, earlier CalendarDate) int {
	delta := later.utcMidpoint().Sub(earlier.utcMidpoint())
	return int(math.Round(delta.Hours() / 24))
}

// ParseCalendarDate validates raw input from the API surface. Unlike
// the engine internals it reports failure instead of defaulting, so
// handlers can reject bad requests.
func ParseCalendarDate(raw string) (CalendarDate, error) {
	parsed, err := time.ParseInLocation(calendarDateLayout, raw, time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return CalendarDate(parsed.Format(calendarDateLayout)), nil
}
