package repository

import (
	"errors"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return translateError(db.Create(appointment).Error)
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByRoomAndRange(db *gorm.DB, roomID string, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("room_id = ? AND appointment_date >= ? AND appointment_date < ?", roomID, from.UTC(), to.UTC()).
		Order("appointment_date ASC, created_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByRoom(db *gorm.DB, roomID string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("room_id = ? AND status <> ?", roomID, entity.AppointmentStatusCanceled).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.RoomID != "" {
			query = query.Where("room_id = ?", filter.RoomID)
		}
		if filter.From != nil {
			query = query.Where("appointment_date >= ?", filter.From.UTC())
		}
		if filter.To != nil {
			query = query.Where("appointment_date < ?", filter.To.UTC())
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	err := query.Order("appointment_date ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Order("created_at DESC").Limit(limit).Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus moves an appointment from one status to another atomically.
// Returns affected rows: 1 = success, 0 = status changed concurrently.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id string, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountActiveInRange(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ? AND status <> ?", from.UTC(), to.UTC(), entity.AppointmentStatusCanceled).
		Count(&count).Error
	return count, err
}
