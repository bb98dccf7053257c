package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	FindByID(db *gorm.DB, id string) (*entity.Doctor, error)
	FindByIDs(db *gorm.DB, ids []string) ([]entity.Doctor, error)
	CountActive(db *gorm.DB) (int64, error)
}
