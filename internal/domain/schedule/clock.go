package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted by slot queries.
const DateLayout = "2006-01-02"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At.UTC()
}

// Timezone is the clinic's single fixed UTC offset. It has no DST rules.
type Timezone struct {
	loc *time.Location
}

// NewTimezone returns the zone offsetHours away from UTC.
func NewTimezone(offsetHours int) Timezone {
	name := fmt.Sprintf("UTC%+03d", offsetHours)
	return Timezone{loc: time.FixedZone(name, offsetHours*3600)}
}

// Location exposes the underlying *time.Location.
func (tz Timezone) Location() *time.Location {
	if tz.loc == nil {
		return time.UTC
	}
	return tz.loc
}

// ToLocal converts an absolute instant to clinic wall-clock time.
func (tz Timezone) ToLocal(t time.Time) time.Time {
	return t.In(tz.Location())
}

// ToUTC interprets the wall-clock fields of t as clinic time and returns the UTC instant.
func (tz Timezone) ToUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), tz.Location()).UTC()
}

// LocalDayWindow returns the UTC bounds [from, to) of the clinic day containing t.
func (tz Timezone) LocalDayWindow(t time.Time) (time.Time, time.Time) {
	local := tz.ToLocal(t)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz.Location())
	return midnight.UTC(), midnight.AddDate(0, 0, 1).UTC()
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, Validation("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// UTCDayWindow returns [date 00:00 UTC, date+1 00:00 UTC).
func UTCDayWindow(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// SameDate reports whether a and b share year, month and day in their own locations.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MinuteOfDay returns the minutes elapsed since midnight of t's wall clock.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
