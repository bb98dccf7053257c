package converter

import (
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/schedule"
)

// RoomToResponse converts a Room entity to RoomResponse DTO
func RoomToResponse(room *entity.Room) *dto.RoomResponse {
	if room == nil {
		return nil
	}

	response := &dto.RoomResponse{
		ID:            room.ID,
		Name:          room.Name,
		Description:   room.Description,
		Capacity:      room.Capacity,
		Equipment:     []string(room.Equipment),
		Location:      room.Location,
		OccupancyType: string(room.OccupancyType),
		IsActive:      room.IsActive,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
	if response.Equipment == nil {
		response.Equipment = []string{}
	}

	if room.FixedSchedule != nil {
		response.FixedSchedule = &dto.FixedScheduleResponse{
			Team:  room.FixedSchedule.Team,
			Start: room.FixedSchedule.Start,
			End:   room.FixedSchedule.End,
		}
	}

	if room.WeeklySchedule != nil {
		response.WeeklySchedule = make(map[string]dto.DayScheduleResponse, len(room.WeeklySchedule))
		for day, labels := range room.WeeklySchedule {
			response.WeeklySchedule[day] = dto.DayScheduleResponse{Morning: labels.Morning, Afternoon: labels.Afternoon}
		}
	}

	return response
}

// RoomsToResponses converts a slice of Room entities to slice of RoomResponse DTOs
func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *RoomToResponse(&rooms[i])
	}
	return responses
}

// CreateRoomRequestToEntity converts CreateRoomRequest DTO to Room entity
func CreateRoomRequestToEntity(req *dto.CreateRoomRequest) *entity.Room {
	room := &entity.Room{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		Equipment:     entity.StringList(req.Equipment),
		Location:      req.Location,
		OccupancyType: entity.OccupancyType(req.OccupancyType),
		IsActive:      true,
	}

	if req.FixedSchedule != nil {
		room.FixedSchedule = &entity.FixedSchedule{
			Team:  req.FixedSchedule.Team,
			Start: req.FixedSchedule.Start,
			End:   req.FixedSchedule.End,
		}
	}

	if len(req.WeeklySchedule) > 0 {
		room.WeeklySchedule = make(entity.WeeklySchedule, len(req.WeeklySchedule))
		for day, labels := range req.WeeklySchedule {
			room.WeeklySchedule[day] = entity.DaySchedule{Morning: labels.Morning, Afternoon: labels.Afternoon}
		}
	}

	return room
}

// SlotsToResponses converts evaluated slots to SlotResponse DTOs
func SlotsToResponses(slots []schedule.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.SlotResponse{
			Time:        slot.Time,
			IsOccupied:  slot.IsOccupied,
			IsPast:      slot.IsPast,
			IsAvailable: slot.IsAvailable,
		}
		if slot.Occupancy != nil {
			responses[i].OccupancyInfo = &dto.OccupancyInfoResponse{
				AppointmentID: slot.Occupancy.AppointmentID,
				PatientName:   slot.Occupancy.PatientName,
				DoctorName:    slot.Occupancy.DoctorName,
				Status:        string(slot.Occupancy.Status),
				Duration:      slot.Occupancy.Duration,
			}
		}
	}
	return responses
}
