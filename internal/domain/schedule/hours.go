package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SlotStep is the grid granularity in minutes.
const SlotStep = 15

var strictClockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Hours is a room's daily operating window in clinic time.
type Hours struct {
	Start        string
	End          string
	StartMinutes int
	EndMinutes   int
}

// NewHours parses start and end. Malformed values yield an ErrConfiguration.
func NewHours(start, end string) (Hours, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return Hours{}, Configuration("invalid operating hours start %q: %v", start, err)
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return Hours{}, Configuration("invalid operating hours end %q: %v", end, err)
	}
	return Hours{Start: start, End: end, StartMinutes: startMin, EndMinutes: endMin}, nil
}

// String renders the window as "HH:MM-HH:MM".
func (h Hours) String() string {
	return h.Start + "-" + h.End
}

// ParseClock converts "H:MM" or "HH:MM" to minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok {
		return 0, fmt.Errorf("missing colon")
	}
	hour, err := parseDigits(hh)
	if err != nil {
		return 0, fmt.Errorf("hour: %w", err)
	}
	minute, err := parseDigits(mm)
	if err != nil {
		return 0, fmt.Errorf("minute: %w", err)
	}
	if hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return 0, fmt.Errorf("minute %d out of range", minute)
	}
	return hour*60 + minute, nil
}

func parseDigits(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
	}
	return strconv.Atoi(s)
}

// FormatClock renders minutes since midnight as zero padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidateHours checks an hours update: strict HH:MM on both ends and end after start.
func ValidateHours(start, end string) error {
	if !strictClockPattern.MatchString(start) {
		return Validation("invalid start time %q, use HH:MM (e.g. 07:00)", start)
	}
	if !strictClockPattern.MatchString(end) {
		return Validation("invalid end time %q, use HH:MM (e.g. 16:00)", end)
	}
	startMin, _ := ParseClock(start)
	endMin, _ := ParseClock(end)
	if endMin <= startMin {
		return Validation("end time %s must be after start time %s", end, start)
	}
	return nil
}
