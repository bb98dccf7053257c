package dto

import (
	"time"
)

// Request DTOs

type FixedScheduleRequest struct {
	Team  string `json:"team" validate:"omitempty,max=100"`
	Start string `json:"start" validate:"omitempty,hhmm"`
	End   string `json:"end" validate:"omitempty,hhmm"`
}

type DayScheduleRequest struct {
	Morning   string `json:"morning" validate:"max=100"`
	Afternoon string `json:"afternoon" validate:"max=100"`
}

type CreateRoomRequest struct {
	Name           string                        `json:"name" validate:"required,max=50"`
	Description    string                        `json:"description" validate:"omitempty,max=500"`
	Capacity       int                           `json:"capacity" validate:"gte=1,lte=50"`
	Equipment      []string                      `json:"equipment" validate:"omitempty,dive,max=100"`
	Location       string                        `json:"location" validate:"omitempty,max=255"`
	OccupancyType  string                        `json:"occupancy_type" validate:"required,oneof=fixed rotative"`
	FixedSchedule  *FixedScheduleRequest         `json:"fixed_schedule" validate:"omitempty"`
	WeeklySchedule map[string]DayScheduleRequest `json:"weekly_schedule" validate:"omitempty,dive,keys,oneof=monday tuesday wednesday thursday friday saturday sunday,endkeys"`
}

// UpdateHoursRequest is bound from the start and end query parameters
type UpdateHoursRequest struct {
	Start string `validate:"required,hhmm"`
	End   string `validate:"required,hhmm"`
}

// Response DTOs

type FixedScheduleResponse struct {
	Team  string `json:"team"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayScheduleResponse struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
}

type RoomResponse struct {
	ID             string                         `json:"id"`
	Name           string                         `json:"name"`
	Description    string                         `json:"description"`
	Capacity       int                            `json:"capacity"`
	Equipment      []string                       `json:"equipment"`
	Location       string                         `json:"location"`
	OccupancyType  string                         `json:"occupancy_type"`
	FixedSchedule  *FixedScheduleResponse         `json:"fixed_schedule"`
	WeeklySchedule map[string]DayScheduleResponse `json:"weekly_schedule"`
	IsActive       bool                           `json:"is_active"`
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

type RoomHoursResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OccupancyInfoResponse struct {
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	DoctorName    string `json:"doctor_name"`
	Status        string `json:"status"`
	Duration      int    `json:"duration"`
}

type SlotResponse struct {
	Time          string                 `json:"time"`
	IsOccupied    bool                   `json:"is_occupied"`
	IsPast        bool                   `json:"is_past"`
	IsAvailable   bool                   `json:"is_available"`
	OccupancyInfo *OccupancyInfoResponse `json:"occupancy_info"`
}

type RoomSlotsResponse struct {
	RoomID   string         `json:"room_id"`
	RoomName string         `json:"room_name"`
	Date     string         `json:"date"`
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Slots    []SlotResponse `json:"slots"`
}

// DaySchedule holds either the fixed team window or the rotative labels for one day
type DaySchedule struct {
	Type      string `json:"type"`
	Team      string `json:"team,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Morning   string `json:"morning,omitempty"`
	Afternoon string `json:"afternoon,omitempty"`
}

type RoomDayAvailabilityResponse struct {
	RoomResponse
	DaySchedule DaySchedule `json:"day_schedule"`
}

type DayAvailabilityResponse struct {
	DayOfWeek string                        `json:"day_of_week"`
	Rooms     []RoomDayAvailabilityResponse `json:"rooms"`
}

type FixedRoomSummary struct {
	RoomResponse
	Team     string `json:"team"`
	Schedule string `json:"schedule"`
}

type WeeklyScheduleResponse struct {
	FixedRooms    []FixedRoomSummary                        `json:"fixed_rooms"`
	RotativeRooms []RoomResponse                            `json:"rotative_rooms"`
	ScheduleGrid  map[string]map[string]DayScheduleResponse `json:"schedule_grid"`
}
