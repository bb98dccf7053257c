package schedule

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// Overlaps reports whether the two ranges share any instant.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// CheckWithinHours verifies that [local, local+duration) lies inside h.
func CheckWithinHours(roomName string, h Hours, local time.Time, durationMinutes int) error {
	start := MinuteOfDay(local)
	if start < h.StartMinutes || start+durationMinutes > h.EndMinutes {
		return Validation("Appointment outside %s operating hours. Hours: %s-%s (local time: %s)",
			roomName, h.Start, h.End, local.Format("15:04"))
	}
	return nil
}

// FindConflict returns the first non-canceled appointment overlapping candidate.
func FindConflict(candidate Interval, existing []entity.Appointment) *entity.Appointment {
	for i := range existing {
		apt := &existing[i]
		if apt.IsCanceled() {
			continue
		}
		if candidate.Overlaps(NewInterval(apt.AppointmentDate, apt.DurationMinutes)) {
			return apt
		}
	}
	return nil
}
