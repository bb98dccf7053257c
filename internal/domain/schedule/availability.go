package schedule

import "time"

// Slot is one grid label evaluated against occupancy and the clock.
type Slot struct {
	Time        string
	IsOccupied  bool
	IsPast      bool
	IsAvailable bool
	Occupancy   *Occupancy
}

// Evaluate flags each label in grid order. A label is past only when date is
// the clinic's current day and the label is earlier than the current minute.
func Evaluate(date time.Time, labels []string, occupied map[string]Occupancy, now time.Time, tz Timezone) []Slot {
	localNow := tz.ToLocal(now)
	today := SameDate(date, localNow)
	nowMinutes := MinuteOfDay(localNow)

	slots := make([]Slot, 0, len(labels))
	for _, label := range labels {
		slot := Slot{Time: label}
		if info, ok := occupied[label]; ok {
			info := info
			slot.IsOccupied = true
			slot.Occupancy = &info
		}
		if today {
			if minutes, err := ParseClock(label); err == nil && minutes < nowMinutes {
				slot.IsPast = true
			}
		}
		slot.IsAvailable = !slot.IsOccupied && !slot.IsPast
		slots = append(slots, slot)
	}
	return slots
}
