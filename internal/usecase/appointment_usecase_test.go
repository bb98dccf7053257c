package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/repository/mocks"
	"go-clinic-scheduling/internal/domain/schedule"
	"go-clinic-scheduling/internal/service"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	usecase     AppointmentUsecase
	store       *memoryAppointmentRepository
	patientRepo *mocks.MockPatientRepository
	doctorRepo  *mocks.MockDoctorRepository
	roomRepo    *mocks.MockRoomRepository
	audit       *auditRecorder
}

func newBookingFixture(t *testing.T, now time.Time, room *entity.Room) *bookingFixture {
	t.Helper()

	db, _ := setupMockDB(t)
	log := newTestLogger()
	f := &bookingFixture{
		store:       newMemoryAppointmentRepository(),
		patientRepo: new(mocks.MockPatientRepository),
		doctorRepo:  new(mocks.MockDoctorRepository),
		roomRepo:    new(mocks.MockRoomRepository),
		audit:       &auditRecorder{},
	}

	f.patientRepo.On("FindByID", mock.Anything, "patient-1").Return(&entity.Patient{ID: "patient-1", Name: "Maria Souza"}, nil).Maybe()
	f.doctorRepo.On("FindByID", mock.Anything, "doctor-1").Return(&entity.Doctor{ID: "doctor-1", Name: "Dr. Carlos Lima", IsActive: true}, nil).Maybe()
	f.roomRepo.On("FindByID", mock.Anything, room.ID).Return(room, nil).Maybe()
	f.roomRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]entity.Room{*room}, nil).Maybe()

	locker := service.NewRoomLockService(nil, log, time.Second, 2*time.Second)
	t.Cleanup(locker.Stop)

	names := staticNames{names: schedule.Names{
		Patients: map[string]string{"patient-1": "Maria Souza"},
		Doctors:  map[string]string{"doctor-1": "Dr. Carlos Lima"},
	}}
	f.usecase = NewAppointmentUsecase(db, log, f.store, f.patientRepo, f.doctorRepo, f.roomRepo, names, locker, f.audit, newTestCalendar(now), 30)
	return f
}

func bookingRequest(roomID string, start time.Time, duration int) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:       "patient-1",
		DoctorID:        "doctor-1",
		RoomID:          roomID,
		AppointmentDate: start,
		DurationMinutes: duration,
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	now := localTime(2025, 1, 15, 9, 0)
	f := newBookingFixture(t, now, roomC3())

	start := localTime(2025, 1, 16, 14, 30)
	// submitted with a non-UTC offset, stored and returned in UTC
	req := bookingRequest("room-c3", start.In(time.FixedZone("UTC+01", 3600)), 30)
	req.Notes = "first visit"

	resp, err := f.usecase.CreateAppointment(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.AppointmentDate.Equal(start))
	assert.Equal(t, time.UTC, resp.AppointmentDate.Location())
	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Maria Souza", resp.PatientName)
	assert.Equal(t, "Dr. Carlos Lima", resp.DoctorName)
	assert.Equal(t, "C3", resp.RoomName)
	assert.True(t, resp.CreatedAt.Equal(now))

	stored, err := f.store.FindByID(nil, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.AppointmentDate.Equal(start))
	assert.Equal(t, "first visit", stored.Notes)

	// a UTC round trip lands on the same local wall-clock time
	assert.Equal(t, "14:30", testTZ.ToLocal(stored.AppointmentDate).Format("15:04"))
	assert.Equal(t, []string{entity.AuditActionAppointmentCreate}, f.audit.Actions())
}

func TestCreateAppointment_DefaultDuration(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())

	resp, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 0))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultDurationMinutes, resp.DurationMinutes)
}

func TestCreateAppointment_InvalidInput(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	start := localTime(2025, 1, 16, 10, 0)

	_, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", start, 721))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", start, -5))
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", time.Time{}, 30))
	assert.ErrorIs(t, err, ErrMissingDate)
	assert.ErrorIs(t, err, schedule.ErrValidation)

	assert.Zero(t, f.store.Inserts())
}

func TestCreateAppointment_PatientNotFound(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	f.patientRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	req := bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 30)
	req.PatientID = "ghost"

	_, err := f.usecase.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.ErrorIs(t, err, schedule.ErrNotFound)
	f.doctorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateAppointment_PatientCheckedBeforeInputRules(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	f.patientRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	req := bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 721)
	req.PatientID = "ghost"
	_, err := f.usecase.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.NotErrorIs(t, err, ErrInvalidDuration)

	req = bookingRequest("room-c3", time.Time{}, 30)
	req.PatientID = "ghost"
	_, err = f.usecase.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.NotErrorIs(t, err, ErrMissingDate)
}

func TestCreateAppointment_InThePast(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 16, 11, 0), roomC3())

	_, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, 10, 59), 30))
	assert.ErrorIs(t, err, ErrSchedulePast)
	f.doctorRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	// the current instant itself is not in the past
	_, err = f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, 11, 0), 30))
	assert.NoError(t, err)
}

func TestCreateAppointment_DoctorNotFound(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	f.doctorRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	req := bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 30)
	req.DoctorID = "ghost"

	_, err := f.usecase.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateAppointment_RoomMissingOrInactive(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	inactive := &entity.Room{ID: "room-old", Name: "C9", OccupancyType: entity.OccupancyFixed, IsActive: false}
	f.roomRepo.On("FindByID", mock.Anything, "room-old").Return(inactive, nil)
	f.roomRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-old", localTime(2025, 1, 16, 10, 0), 30))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = f.usecase.CreateAppointment(context.Background(), bookingRequest("ghost", localTime(2025, 1, 16, 10, 0), 30))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateAppointment_OperatingHoursBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		minute   int
		duration int
		wantErr  bool
	}{
		{name: "opening time", hour: 8, minute: 0, duration: 30},
		{name: "last fitting start", hour: 16, minute: 30, duration: 30},
		{name: "one minute over closing", hour: 16, minute: 31, duration: 30, wantErr: true},
		{name: "starts one minute before closing", hour: 16, minute: 59, duration: 30, wantErr: true},
		{name: "before opening", hour: 7, minute: 45, duration: 30, wantErr: true},
		{name: "at closing time", hour: 17, minute: 0, duration: 15, wantErr: true},
		{name: "whole day", hour: 8, minute: 0, duration: 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())

			_, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, tt.hour, tt.minute), tt.duration))
			if tt.wantErr {
				assert.ErrorIs(t, err, schedule.ErrValidation)
				assert.Contains(t, err.Error(), "C3")
				assert.Contains(t, err.Error(), "08:00-17:00")
				assert.Zero(t, f.store.Inserts())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateAppointment_UsesFixedScheduleHours(t *testing.T) {
	room := &entity.Room{
		ID:            "room-c1",
		Name:          "C1",
		OccupancyType: entity.OccupancyFixed,
		FixedSchedule: &entity.FixedSchedule{Team: "ESF 1", Start: "10:00", End: "12:00"},
		IsActive:      true,
	}
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), room)

	// 07:00 is inside the fallback table for C1 but not inside the room's own schedule
	_, err := f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c1", localTime(2025, 1, 16, 7, 0), 30))
	assert.ErrorIs(t, err, schedule.ErrValidation)
	assert.Contains(t, err.Error(), "10:00-12:00")

	_, err = f.usecase.CreateAppointment(context.Background(), bookingRequest("room-c1", localTime(2025, 1, 16, 11, 30), 30))
	assert.NoError(t, err)
}

func TestCreateAppointment_ConflictScenario(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	ctx := context.Background()

	_, err := f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 30), 30))
	require.NoError(t, err)

	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 30), 30))
	assert.ErrorIs(t, err, schedule.ErrConflict)
	assert.Contains(t, err.Error(), "14:30")

	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 15), 30))
	assert.ErrorIs(t, err, schedule.ErrConflict)

	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 45), 30))
	assert.ErrorIs(t, err, schedule.ErrConflict)
	assert.Contains(t, err.Error(), "14:30")

	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 15, 0), 30))
	assert.NoError(t, err)

	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 0), 30))
	assert.NoError(t, err, "ending exactly at an existing start does not overlap")

	assert.Equal(t, 3, f.store.Inserts())
}

func TestCreateAppointment_DuplicateKeyIsConflict(t *testing.T) {
	db, _ := setupMockDB(t)
	log := newTestLogger()

	appointmentRepo := new(mocks.MockAppointmentRepository)
	patientRepo := new(mocks.MockPatientRepository)
	doctorRepo := new(mocks.MockDoctorRepository)
	roomRepo := new(mocks.MockRoomRepository)

	patientRepo.On("FindByID", mock.Anything, "patient-1").Return(&entity.Patient{ID: "patient-1", Name: "Maria Souza"}, nil)
	doctorRepo.On("FindByID", mock.Anything, "doctor-1").Return(&entity.Doctor{ID: "doctor-1", Name: "Dr. Carlos Lima"}, nil)
	roomRepo.On("FindByID", mock.Anything, "room-c3").Return(roomC3(), nil)
	appointmentRepo.On("FindActiveByRoom", mock.Anything, "room-c3").Return([]entity.Appointment{}, nil)
	appointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).
		Return(errors.Join(repository.ErrDuplicateKey, errors.New("uq_appointments_room_slot")))

	locker := service.NewRoomLockService(nil, log, time.Second, time.Second)
	t.Cleanup(locker.Stop)
	audit := &auditRecorder{}
	uc := NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, doctorRepo, roomRepo, staticNames{}, locker, audit, newTestCalendar(localTime(2025, 1, 15, 9, 0)), 30)

	_, err := uc.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 30))
	assert.ErrorIs(t, err, schedule.ErrConflict)
	assert.Empty(t, audit.Actions())
	appointmentRepo.AssertExpectations(t)
}

func TestCreateAppointment_StorageErrorIsPropagated(t *testing.T) {
	db, _ := setupMockDB(t)
	log := newTestLogger()

	appointmentRepo := new(mocks.MockAppointmentRepository)
	patientRepo := new(mocks.MockPatientRepository)
	dbErr := errors.New("connection reset")
	patientRepo.On("FindByID", mock.Anything, "patient-1").Return(nil, dbErr)

	locker := service.NewRoomLockService(nil, log, time.Second, time.Second)
	t.Cleanup(locker.Stop)
	uc := NewAppointmentUsecase(db, log, appointmentRepo, patientRepo, new(mocks.MockDoctorRepository), new(mocks.MockRoomRepository), staticNames{}, locker, &auditRecorder{}, newTestCalendar(localTime(2025, 1, 15, 9, 0)), 30)

	_, err := uc.CreateAppointment(context.Background(), bookingRequest("room-c3", localTime(2025, 1, 16, 10, 0), 30))
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, schedule.ErrNotFound)
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	req := bookingRequest("room-c3", localTime(2025, 1, 16, 9, 0), 30)

	const workers = 20
	var successes, conflicts atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Go(func() {
			_, err := f.usecase.CreateAppointment(context.Background(), req)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, schedule.ErrConflict):
				conflicts.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Equal(t, 1, f.store.Inserts())
}

func TestCreateAppointment_ConcurrentOverlappingStarts(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())

	// distinct starts pass the storage uniqueness rule, so only the room lock keeps them apart
	starts := []time.Time{
		localTime(2025, 1, 16, 9, 0),
		localTime(2025, 1, 16, 9, 5),
		localTime(2025, 1, 16, 9, 10),
		localTime(2025, 1, 16, 9, 15),
		localTime(2025, 1, 16, 9, 20),
		localTime(2025, 1, 16, 9, 25),
	}

	var successes, conflicts atomic.Int32
	var wg conc.WaitGroup
	for round := 0; round < 3; round++ {
		for _, start := range starts {
			req := bookingRequest("room-c3", start, 30)
			wg.Go(func() {
				_, err := f.usecase.CreateAppointment(context.Background(), req)
				switch {
				case err == nil:
					successes.Add(1)
				case errors.Is(err, schedule.ErrConflict):
					conflicts.Add(1)
				}
			})
		}
	}
	wg.Wait()

	total := int32(3 * len(starts))
	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, total-1, conflicts.Load())
	assert.Equal(t, 1, f.store.Inserts())
}

func TestCancelAppointment(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	ctx := context.Background()

	created, err := f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 30), 60))
	require.NoError(t, err)

	canceled, err := f.usecase.CancelAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCanceled), canceled.Status)

	// canceling twice returns the appointment unchanged
	again, err := f.usecase.CancelAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCanceled), again.Status)

	// the freed interval can be booked again
	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 14, 45), 30))
	assert.NoError(t, err)

	assert.Equal(t, []string{
		entity.AuditActionAppointmentCreate,
		entity.AuditActionAppointmentCancel,
		entity.AuditActionAppointmentCreate,
	}, f.audit.Actions())
}

func TestCancelAppointment_NotFound(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())

	_, err := f.usecase.CancelAppointment(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelAppointment_CompletedIsInvalidTransition(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	require.NoError(t, f.store.Create(nil, &entity.Appointment{
		ID:              "apt-done",
		RoomID:          "room-c3",
		AppointmentDate: localTime(2025, 1, 14, 10, 0),
		DurationMinutes: 30,
		Status:          entity.AppointmentStatusCompleted,
	}))

	_, err := f.usecase.CancelAppointment(context.Background(), "apt-done")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, schedule.ErrValidation)

	stored, _ := f.store.FindByID(nil, "apt-done")
	assert.Equal(t, entity.AppointmentStatusCompleted, stored.Status)
}

func TestGetAppointment(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	ctx := context.Background()

	created, err := f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 9, 0), 30))
	require.NoError(t, err)

	got, err := f.usecase.GetAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Maria Souza", got.PatientName)
	assert.Equal(t, "C3", got.RoomName)

	_, err = f.usecase.GetAppointment(ctx, "ghost")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListAppointments_FiltersByClinicDay(t *testing.T) {
	f := newBookingFixture(t, localTime(2025, 1, 15, 9, 0), roomC3())
	ctx := context.Background()

	late, err := f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 16, 30), 30))
	require.NoError(t, err)
	early, err := f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 16, 8, 0), 30))
	require.NoError(t, err)
	_, err = f.usecase.CreateAppointment(ctx, bookingRequest("room-c3", localTime(2025, 1, 17, 8, 0), 30))
	require.NoError(t, err)

	list, err := f.usecase.ListAppointments(ctx, &dto.ListAppointmentsRequest{RoomID: "room-c3", Date: "2025-01-16"})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, early.ID, list.Appointments[0].ID)
	assert.Equal(t, late.ID, list.Appointments[1].ID)
	assert.Equal(t, "Dr. Carlos Lima", list.Appointments[0].DoctorName)

	_, err = f.usecase.ListAppointments(ctx, &dto.ListAppointmentsRequest{Date: "16/01/2025"})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}
