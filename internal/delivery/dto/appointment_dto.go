package dto

import (
	"time"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       string    `json:"patient_id" validate:"required,max=36"`
	DoctorID        string    `json:"doctor_id" validate:"required,max=36"`
	RoomID          string    `json:"room_id" validate:"required,max=36"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,gte=1,lte=720"`
	Notes           string    `json:"notes" validate:"omitempty,max=1000"`
}

// ListAppointmentsRequest is bound from query parameters
type ListAppointmentsRequest struct {
	RoomID string
	Date   string // Format: YYYY-MM-DD, clinic day
}

// Response DTOs

type AppointmentResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	RoomID          string    `json:"room_id"`
	RoomName        string    `json:"room_name,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
