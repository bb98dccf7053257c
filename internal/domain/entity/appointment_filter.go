package entity

import "time"

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	RoomID string
	From   *time.Time // inclusive, UTC
	To     *time.Time // exclusive, UTC
	Limit  int
}
