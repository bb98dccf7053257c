package schedule

import (
	"go-clinic-scheduling/internal/domain/entity"
)

// UnknownName is shown when a patient or doctor id cannot be resolved.
const UnknownName = "Unknown"

// Occupancy describes the appointment holding a slot.
type Occupancy struct {
	AppointmentID string
	PatientName   string
	DoctorName    string
	Status        entity.AppointmentStatus
	Duration      int
}

// Names carries display names keyed by id.
type Names struct {
	Patients map[string]string
	Doctors  map[string]string
}

func (n Names) patient(id string) string {
	if name, ok := n.Patients[id]; ok && name != "" {
		return name
	}
	return UnknownName
}

func (n Names) doctor(id string) string {
	if name, ok := n.Doctors[id]; ok && name != "" {
		return name
	}
	return UnknownName
}

// MapOccupancy stamps each non-canceled appointment onto every SlotStep label
// whose minute falls in its local [start, end) window. Starts off the grid
// round up to the next label. Later appointments overwrite earlier ones on
// shared labels.
func MapOccupancy(appointments []entity.Appointment, tz Timezone, names Names) map[string]Occupancy {
	occupied := make(map[string]Occupancy)
	for i := range appointments {
		apt := &appointments[i]
		if apt.IsCanceled() {
			continue
		}
		info := Occupancy{
			AppointmentID: apt.ID,
			PatientName:   names.patient(apt.PatientID),
			DoctorName:    names.doctor(apt.DoctorID),
			Status:        apt.Status,
			Duration:      apt.DurationMinutes,
		}
		start := MinuteOfDay(tz.ToLocal(apt.AppointmentDate))
		end := start + apt.DurationMinutes
		for m := alignUp(start); m < end; m += SlotStep {
			occupied[FormatClock(m%(24*60))] = info
		}
	}
	return occupied
}

// alignUp returns the first SlotStep boundary at or after minute.
func alignUp(minute int) int {
	if rem := minute % SlotStep; rem != 0 {
		return minute + SlotStep - rem
	}
	return minute
}
