package repository

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id string) (*entity.Appointment, error)
	// FindByRoomAndRange returns every appointment of the room starting in [from, to),
	// canceled ones included, ordered by appointment_date then created_at.
	FindByRoomAndRange(db *gorm.DB, roomID string, from, to time.Time) ([]entity.Appointment, error)
	FindActiveByRoom(db *gorm.DB, roomID string) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error)
	UpdateStatus(db *gorm.DB, id string, from, to entity.AppointmentStatus) (int64, error)
	Count(db *gorm.DB) (int64, error)
	CountActiveInRange(db *gorm.DB, from, to time.Time) (int64, error)
}
