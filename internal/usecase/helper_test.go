package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/schedule"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var testTZ = schedule.NewTimezone(-3)

// localTime builds a clinic wall-clock instant and returns it in UTC
func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return testTZ.ToUTC(time.Date(year, month, day, hour, minute, 0, 0, time.UTC))
}

func newTestCalendar(now time.Time) Calendar {
	fallback := map[string]schedule.Window{
		"C1": {Start: "07:00", End: "16:00"},
		"C3": {Start: "08:00", End: "17:00"},
		"C6": {Start: "07:00", End: "19:00"},
	}
	return Calendar{
		Resolver: schedule.NewResolver(fallback, schedule.Window{Start: "08:00", End: "17:00"}),
		Timezone: testTZ,
		Clock:    schedule.FixedClock{At: now},
	}
}

func sameInstant(want time.Time) interface{} {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}

func roomC3() *entity.Room {
	return &entity.Room{
		ID:            "room-c3",
		Name:          "C3",
		Capacity:      1,
		OccupancyType: entity.OccupancyFixed,
		IsActive:      true,
	}
}

// staticNames resolves every appointment from fixed tables
type staticNames struct {
	names schedule.Names
}

func (s staticNames) Lookup(_ context.Context, _ []entity.Appointment) schedule.Names {
	return s.names
}

// auditRecorder keeps the actions it was asked to log
type auditRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditRecorder) LogCreate(_ context.Context, _ *gorm.DB, _ *string, action, _, _ string, _ interface{}) error {
	return a.record(action)
}

func (a *auditRecorder) LogUpdate(_ context.Context, _ *gorm.DB, _ *string, action, _, _ string, _, _ interface{}) error {
	return a.record(action)
}

func (a *auditRecorder) LogDelete(_ context.Context, _ *gorm.DB, _ *string, action, _, _ string, _ interface{}) error {
	return a.record(action)
}

func (a *auditRecorder) record(action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *auditRecorder) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

// memoryAppointmentRepository is an in-process store with the same
// uniqueness rule as the appointments table.
type memoryAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[string]entity.Appointment
	inserts      int
}

var _ repository.AppointmentRepository = (*memoryAppointmentRepository)(nil)

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{appointments: make(map[string]entity.Appointment)}
}

func (r *memoryAppointmentRepository) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appointments {
		if existing.RoomID == appointment.RoomID && existing.AppointmentDate.Equal(appointment.AppointmentDate) && !existing.IsCanceled() {
			return repository.ErrDuplicateKey
		}
	}
	r.appointments[appointment.ID] = *appointment
	r.inserts++
	return nil
}

func (r *memoryAppointmentRepository) FindByID(_ *gorm.DB, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *memoryAppointmentRepository) FindByRoomAndRange(_ *gorm.DB, roomID string, from, to time.Time) ([]entity.Appointment, error) {
	return r.filter(func(a entity.Appointment) bool {
		return a.RoomID == roomID && !a.AppointmentDate.Before(from) && a.AppointmentDate.Before(to)
	}), nil
}

// FindActiveByRoom sleeps after reading so concurrent callers interleave
// between the overlap check and the insert unless the room lock serializes them.
func (r *memoryAppointmentRepository) FindActiveByRoom(_ *gorm.DB, roomID string) ([]entity.Appointment, error) {
	active := r.filter(func(a entity.Appointment) bool {
		return a.RoomID == roomID && !a.IsCanceled()
	})
	time.Sleep(time.Millisecond)
	return active, nil
}

func (r *memoryAppointmentRepository) FindAll(_ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.filter(func(a entity.Appointment) bool {
		if filter == nil {
			return true
		}
		if filter.RoomID != "" && a.RoomID != filter.RoomID {
			return false
		}
		if filter.From != nil && a.AppointmentDate.Before(*filter.From) {
			return false
		}
		return filter.To == nil || a.AppointmentDate.Before(*filter.To)
	}), nil
}

func (r *memoryAppointmentRepository) FindRecent(_ *gorm.DB, limit int) ([]entity.Appointment, error) {
	all := r.filter(func(entity.Appointment) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryAppointmentRepository) UpdateStatus(_ *gorm.DB, id string, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok || appointment.Status != from {
		return 0, nil
	}
	appointment.Status = to
	r.appointments[id] = appointment
	return 1, nil
}

func (r *memoryAppointmentRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}

func (r *memoryAppointmentRepository) CountActiveInRange(db *gorm.DB, from, to time.Time) (int64, error) {
	matches := r.filter(func(a entity.Appointment) bool {
		return !a.IsCanceled() && !a.AppointmentDate.Before(from) && a.AppointmentDate.Before(to)
	})
	return int64(len(matches)), nil
}

func (r *memoryAppointmentRepository) Inserts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserts
}

func (r *memoryAppointmentRepository) filter(keep func(entity.Appointment) bool) []entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, a := range r.appointments {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppointmentDate.Before(result[j].AppointmentDate) })
	return result
}
