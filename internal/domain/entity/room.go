package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// OccupancyType describes how a room is shared between teams
type OccupancyType string

const (
	OccupancyFixed    OccupancyType = "fixed"
	OccupancyRotative OccupancyType = "rotative"
)

// FixedSchedule is a room's single, date-independent daily window.
type FixedSchedule struct {
	Team  string `json:"team"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (f FixedSchedule) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *FixedSchedule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	return scanJSON(value, f)
}

// HasHours reports whether both start and end are set.
func (f *FixedSchedule) HasHours() bool {
	return f != nil && f.Start != "" && f.End != ""
}

// DaySchedule holds the specialty labels for one weekday.
type DaySchedule struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
}

// WeeklySchedule maps lower-case weekday names to their labels.
// Informational only: operating hours never come from here.
type WeeklySchedule map[string]DaySchedule

func (w WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *WeeklySchedule) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	result := WeeklySchedule{}
	if err := scanJSON(value, &result); err != nil {
		return err
	}
	*w = result
	return nil
}

// Room represents a consultation room (consultório)
type Room struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	Capacity       int            `gorm:"not null" json:"capacity"`
	Equipment      StringList     `gorm:"type:jsonb" json:"equipment"`
	Location       string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	OccupancyType  OccupancyType  `gorm:"type:varchar(20);not null" json:"occupancy_type"`
	FixedSchedule  *FixedSchedule `gorm:"type:jsonb" json:"fixed_schedule,omitempty"`
	WeeklySchedule WeeklySchedule `gorm:"type:jsonb" json:"weekly_schedule,omitempty"`
	IsActive       bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

// IsRotative checks if the room is shared on a weekly rotation
func (r *Room) IsRotative() bool {
	return r.OccupancyType == OccupancyRotative
}

// Weekday names used as WeeklySchedule keys
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// FreeLabel marks a weekday half with no specialty assigned
const FreeLabel = "Livre"
