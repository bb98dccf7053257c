package repository

import (
	"errors"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type roomRepository struct{}

func NewRoomRepository() domainRepo.RoomRepository {
	return &roomRepository{}
}

func (r *roomRepository) Create(db *gorm.DB, room *entity.Room) error {
	return translateError(db.Create(room).Error)
}

func (r *roomRepository) FindByID(db *gorm.DB, id string) (*entity.Room, error) {
	var room entity.Room
	err := db.Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByIDs(db *gorm.DB, ids []string) ([]entity.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []entity.Room
	err := db.Where("id IN ?", ids).Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindAllActive(db *gorm.DB) ([]entity.Room, error) {
	var rooms []entity.Room
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// UpdateFixedSchedule replaces the room's fixed schedule and bumps updated_at.
func (r *roomRepository) UpdateFixedSchedule(db *gorm.DB, id string, schedule *entity.FixedSchedule) error {
	return db.Model(&entity.Room{}).
		Where("id = ?", id).
		Update("fixed_schedule", schedule).Error
}

// Deactivate soft deletes an active room. Returns affected rows: 0 when already inactive.
func (r *roomRepository) Deactivate(db *gorm.DB, id string) (int64, error) {
	result := db.Model(&entity.Room{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *roomRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Room{}).Count(&count).Error
	return count, err
}
