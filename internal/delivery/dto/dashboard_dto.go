package dto

import "github.com/shopspring/decimal"

type RoomStatsResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	AppointmentCount int             `json:"appointment_count"`
	OccupiedSlots    int             `json:"occupied_slots"`
	TotalSlots       int             `json:"total_slots"`
	OccupancyRate    decimal.Decimal `json:"occupancy_rate"`
}

type DashboardStatsResponse struct {
	TotalPatients      int64                 `json:"total_patients"`
	TotalDoctors       int64                 `json:"total_doctors"`
	TotalRooms         int64                 `json:"total_rooms"`
	TotalAppointments  int64                 `json:"total_appointments"`
	TodayAppointments  int64                 `json:"today_appointments"`
	RecentAppointments []AppointmentResponse `json:"recent_appointments"`
	RoomStats          []RoomStatsResponse   `json:"room_stats"`
}
