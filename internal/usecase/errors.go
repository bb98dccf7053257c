package usecase

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/schedule"
)

var (
	ErrPatientNotFound     = schedule.NotFound("patient not found")
	ErrDoctorNotFound      = schedule.NotFound("doctor not found")
	ErrRoomNotFound        = schedule.NotFound("room not found")
	ErrAppointmentNotFound = schedule.NotFound("appointment not found")
	ErrAuditLogNotFound    = schedule.NotFound("audit log not found")

	ErrSchedulePast      = schedule.Validation("cannot schedule in the past")
	ErrMissingDate       = schedule.Validation("appointment_date is required")
	ErrInvalidDuration   = schedule.Validation("duration_minutes must be between 1 and 720")
	ErrInvalidTransition = schedule.Validation("only scheduled appointments can be canceled")
	ErrInvalidDay        = schedule.Validation("invalid day of week, use monday..sunday")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("user not found in context")
)

// MaxDurationMinutes bounds a single appointment
const MaxDurationMinutes = 720

// Calendar bundles the clinic's hours resolver, timezone and clock.
type Calendar struct {
	Resolver *schedule.Resolver
	Timezone schedule.Timezone
	Clock    schedule.Clock
}

func (c Calendar) now() time.Time {
	if c.Clock == nil {
		return schedule.SystemClock{}.Now()
	}
	return c.Clock.Now()
}
