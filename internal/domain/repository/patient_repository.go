package repository

import (
	"go-clinic-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	FindByID(db *gorm.DB, id string) (*entity.Patient, error)
	FindByIDs(db *gorm.DB, ids []string) ([]entity.Patient, error)
	Count(db *gorm.DB) (int64, error)
}
