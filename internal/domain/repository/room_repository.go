package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(db *gorm.DB, room *entity.Room) error
	FindByID(db *gorm.DB, id string) (*entity.Room, error)
	FindByIDs(db *gorm.DB, ids []string) ([]entity.Room, error)
	FindAllActive(db *gorm.DB) ([]entity.Room, error)
	UpdateFixedSchedule(db *gorm.DB, id string, schedule *entity.FixedSchedule) error
	Deactivate(db *gorm.DB, id string) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
