package schedule

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"
)

// Window is an unparsed "HH:MM" pair from configuration.
type Window struct {
	Start string
	End   string
}

// Resolver decides a room's operating hours.
//
// Precedence: the room's fixed schedule when both ends are set, then the
// fallback table keyed by room name, then the default window. Weekly
// schedules are labels only and never consulted here.
type Resolver struct {
	fallback map[string]Window
	def      Window
}

func NewResolver(fallback map[string]Window, def Window) *Resolver {
	table := make(map[string]Window, len(fallback))
	for name, w := range fallback {
		table[name] = w
	}
	return &Resolver{fallback: table, def: def}
}

// Resolve returns the hours for room. Hours do not vary by date; the date
// is accepted so callers need not change if that ever stops being true.
func (r *Resolver) Resolve(room *entity.Room, _ time.Time) (Hours, error) {
	w := r.window(room)
	hours, err := NewHours(w.Start, w.End)
	if err != nil {
		return Hours{}, Configuration("room %s: %v", room.Name, err)
	}
	return hours, nil
}

func (r *Resolver) window(room *entity.Room) Window {
	if room.FixedSchedule.HasHours() {
		return Window{Start: room.FixedSchedule.Start, End: room.FixedSchedule.End}
	}
	if w, ok := r.fallback[room.Name]; ok {
		return w
	}
	return r.def
}
