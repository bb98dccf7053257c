package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Dates are always rendered in UTC.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		RoomID:          appointment.RoomID,
		AppointmentDate: appointment.AppointmentDate.UTC(),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt.UTC(),
		UpdatedAt:       appointment.UpdatedAt.UTC(),
	}
}

// AppointmentNames carries display names for AppointmentsToResponses
type AppointmentNames struct {
	Patients map[string]string
	Doctors  map[string]string
	Rooms    map[string]string
	// Fallback is used for any id missing from the maps
	Fallback string
}

func (n AppointmentNames) lookup(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return n.Fallback
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs with names
func AppointmentsToResponses(appointments []entity.Appointment, names AppointmentNames) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		response := AppointmentToResponse(&appointments[i])
		response.PatientName = names.lookup(names.Patients, appointments[i].PatientID)
		response.DoctorName = names.lookup(names.Doctors, appointments[i].DoctorID)
		response.RoomName = names.lookup(names.Rooms, appointments[i].RoomID)
		responses[i] = *response
	}
	return responses
}
