// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"time"

	"go-clinic-scheduling/internal/domain/entity"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRoomRepository is a mock implementation of repository.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(db *gorm.DB, room *entity.Room) error {
	args := m.Called(db, room)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(db *gorm.DB, id string) (*entity.Room, error) {
	args := m.Called(db, id)
	room, _ := args.Get(0).(*entity.Room)
	return room, args.Error(1)
}

func (m *MockRoomRepository) FindByIDs(db *gorm.DB, ids []string) ([]entity.Room, error) {
	args := m.Called(db, ids)
	rooms, _ := args.Get(0).([]entity.Room)
	return rooms, args.Error(1)
}

func (m *MockRoomRepository) FindAllActive(db *gorm.DB) ([]entity.Room, error) {
	args := m.Called(db)
	rooms, _ := args.Get(0).([]entity.Room)
	return rooms, args.Error(1)
}

func (m *MockRoomRepository) UpdateFixedSchedule(db *gorm.DB, id string, schedule *entity.FixedSchedule) error {
	args := m.Called(db, id, schedule)
	return args.Error(0)
}

func (m *MockRoomRepository) Deactivate(db *gorm.DB, id string) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of repository.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(db *gorm.DB, id string) (*entity.Appointment, error) {
	args := m.Called(db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *MockAppointmentRepository) FindByRoomAndRange(db *gorm.DB, roomID string, from, to time.Time) ([]entity.Appointment, error) {
	args := m.Called(db, roomID, from, to)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveByRoom(db *gorm.DB, roomID string) ([]entity.Appointment, error) {
	args := m.Called(db, roomID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	args := m.Called(db, limit)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(db *gorm.DB, id string, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(db, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountActiveInRange(db *gorm.DB, from, to time.Time) (int64, error) {
	args := m.Called(db, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockPatientRepository is a mock implementation of repository.PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindByID(db *gorm.DB, id string) (*entity.Patient, error) {
	args := m.Called(db, id)
	patient, _ := args.Get(0).(*entity.Patient)
	return patient, args.Error(1)
}

func (m *MockPatientRepository) FindByIDs(db *gorm.DB, ids []string) ([]entity.Patient, error) {
	args := m.Called(db, ids)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

func (m *MockPatientRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorRepository is a mock implementation of repository.DoctorRepository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindByID(db *gorm.DB, id string) (*entity.Doctor, error) {
	args := m.Called(db, id)
	doctor, _ := args.Get(0).(*entity.Doctor)
	return doctor, args.Error(1)
}

func (m *MockDoctorRepository) FindByIDs(db *gorm.DB, ids []string) ([]entity.Doctor, error) {
	args := m.Called(db, ids)
	doctors, _ := args.Get(0).([]entity.Doctor)
	return doctors, args.Error(1)
}

func (m *MockDoctorRepository) CountActive(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	args := m.Called(db, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id string) (*entity.User, error) {
	args := m.Called(db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByRole(db *gorm.DB, role string) (bool, error) {
	args := m.Called(db, role)
	return args.Bool(0), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of repository.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	args := m.Called(db, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindAll(db *gorm.DB, filter *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	args := m.Called(db, filter)
	logs, _ := args.Get(0).([]entity.AuditLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(db, id)
	log, _ := args.Get(0).(*entity.AuditLog)
	return log, args.Error(1)
}
