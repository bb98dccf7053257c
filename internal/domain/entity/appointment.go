package entity

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// DefaultDurationMinutes is used when a booking omits its duration
const DefaultDurationMinutes = 30

// Appointment books a room for a patient and doctor.
// AppointmentDate is an absolute instant and is always handled in UTC.
type Appointment struct {
	ID              string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	PatientID       string            `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	DoctorID        string            `gorm:"type:varchar(36);not null;index" json:"doctor_id"`
	RoomID          string            `gorm:"type:varchar(36);not null;index" json:"room_id"`
	AppointmentDate time.Time         `gorm:"type:timestamptz;not null;index" json:"appointment_date"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndsAt returns the instant the appointment ends
func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsScheduled checks if appointment is still active
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCanceled checks if appointment is canceled
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceled
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Only scheduled appointments move; canceled and completed are terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.Status != AppointmentStatusScheduled {
		return false
	}
	return next == AppointmentStatusCompleted || next == AppointmentStatusCanceled
}

// Cancel changes appointment status to canceled
func (a *Appointment) Cancel() bool {
	if !a.CanTransitionTo(AppointmentStatusCanceled) {
		return false
	}
	a.Status = AppointmentStatusCanceled
	return true
}

// Complete changes appointment status to completed
func (a *Appointment) Complete() bool {
	if !a.CanTransitionTo(AppointmentStatusCompleted) {
		return false
	}
	a.Status = AppointmentStatusCompleted
	return true
}
