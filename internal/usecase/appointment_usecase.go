package usecase

import (
	"context"
	"errors"

	"go-clinic-scheduling/internal/converter"
	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/schedule"
	"go-clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	roomRepo        repository.RoomRepository
	names           service.NameDirectory
	roomLocker      service.RoomLocker
	auditService    service.AuditService
	calendar        Calendar
	defaultDuration int
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	roomRepo repository.RoomRepository,
	names service.NameDirectory,
	roomLocker service.RoomLocker,
	auditService service.AuditService,
	calendar Calendar,
	defaultDuration int,
) AppointmentUsecase {
	if defaultDuration <= 0 {
		defaultDuration = entity.DefaultDurationMinutes
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		roomRepo:        roomRepo,
		names:           names,
		roomLocker:      roomLocker,
		auditService:    auditService,
		calendar:        calendar,
		defaultDuration: defaultDuration,
	}
}

// CreateAppointment books a room.
//
// Flow:
// 1. Patient exists
// 2. Duration is in range, the date is present and not in the past
// 3. Doctor exists
// 4. Room exists and is active
// 5. Appointment fits the room's operating hours (local time)
// 6. No overlap with the room's non-canceled appointments
// 7. Insert
//
// Steps 5-7 run under the per-room lock so concurrent bookings of the same
// room are checked one at a time.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	// Step 1
	patient, err := u.patientRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = u.defaultDuration
	}
	if duration < 1 || duration > MaxDurationMinutes {
		return nil, ErrInvalidDuration
	}
	if req.AppointmentDate.IsZero() {
		return nil, ErrMissingDate
	}
	start := req.AppointmentDate.UTC()

	// Step 2
	if start.Before(u.calendar.now()) {
		return nil, ErrSchedulePast
	}

	// Step 3
	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Step 4
	room, err := u.roomRepo.FindByID(db, req.RoomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", req.RoomID, err)
		return nil, err
	}
	if room == nil || !room.IsActive {
		return nil, ErrRoomNotFound
	}

	unlock, err := u.roomLocker.Lock(ctx, room.ID)
	if err != nil {
		u.log.Warnf("Failed to lock room %s: %+v", room.Name, err)
		return nil, err
	}
	defer unlock()

	// Step 5
	hours, err := u.calendar.Resolver.Resolve(room, start)
	if err != nil {
		u.log.Errorf("Failed to resolve hours of room %s: %+v", room.Name, err)
		return nil, err
	}
	local := u.calendar.Timezone.ToLocal(start)
	if err := schedule.CheckWithinHours(room.Name, hours, local, duration); err != nil {
		return nil, err
	}

	// Step 6
	existing, err := u.appointmentRepo.FindActiveByRoom(db, room.ID)
	if err != nil {
		u.log.Warnf("Failed to find appointments of room %s: %+v", room.Name, err)
		return nil, err
	}
	if clash := schedule.FindConflict(schedule.NewInterval(start, duration), existing); clash != nil {
		return nil, schedule.Conflict("Room %s is already booked from %s to %s (local time)",
			room.Name,
			u.calendar.Timezone.ToLocal(clash.AppointmentDate).Format("15:04"),
			u.calendar.Timezone.ToLocal(clash.EndsAt()).Format("15:04"))
	}

	// Step 7
	now := u.calendar.now()
	appointment := &entity.Appointment{
		ID:              uuid.New().String(),
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		RoomID:          room.ID,
		AppointmentDate: start,
		DurationMinutes: duration,
		Status:          entity.AppointmentStatusScheduled,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, schedule.Conflict("Room %s already has an appointment at %s (local time)", room.Name, local.Format("15:04"))
		}
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)
	response.PatientName = patient.Name
	response.DoctorName = doctor.Name
	response.RoomName = room.Name

	if err := u.auditService.LogCreate(ctx, u.db, middleware.ActorFromContext(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment created: id=%s, room=%s, start=%s, duration=%d", appointment.ID, room.Name, start.Format("2006-01-02T15:04:05Z"), duration)
	return response, nil
}

// CancelAppointment moves a scheduled appointment to canceled. Canceling an
// already canceled appointment returns it unchanged.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsCanceled() {
		return converter.AppointmentToResponse(appointment), nil
	}
	if !appointment.CanTransitionTo(entity.AppointmentStatusCanceled) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.UpdateStatus(db, appointment.ID, entity.AppointmentStatusScheduled, entity.AppointmentStatusCanceled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		// Status moved since it was read
		current, err := u.appointmentRepo.FindByID(db, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
			return nil, err
		}
		if current == nil {
			return nil, ErrAppointmentNotFound
		}
		if current.IsCanceled() {
			return converter.AppointmentToResponse(current), nil
		}
		return nil, ErrInvalidTransition
	}

	appointment.Cancel()
	appointment.UpdatedAt = u.calendar.now()

	if err := u.auditService.LogUpdate(ctx, u.db, middleware.ActorFromContext(ctx), entity.AuditActionAppointmentCancel, "appointment", appointment.ID,
		map[string]string{"status": string(entity.AppointmentStatusScheduled)},
		map[string]string{"status": string(entity.AppointmentStatusCanceled)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Appointment canceled: id=%s, room=%s", appointment.ID, appointment.RoomID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	responses := u.withNames(ctx, []entity.Appointment{*appointment})
	return &responses[0], nil
}

// ListAppointments filters by room and clinic day, ordered by start.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{RoomID: req.RoomID}
	if req.Date != "" {
		day, err := schedule.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		from, to := u.calendar.Timezone.LocalDayWindow(u.calendar.Timezone.ToUTC(day))
		filter.From = &from
		filter.To = &to
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: u.withNames(ctx, appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) withNames(ctx context.Context, appointments []entity.Appointment) []dto.AppointmentResponse {
	return appointmentsWithNames(ctx, u.db, u.log, u.roomRepo, u.names, appointments)
}

// appointmentsWithNames attaches patient, doctor and room names. Lookups that
// fail degrade to schedule.UnknownName.
func appointmentsWithNames(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	roomRepo repository.RoomRepository,
	names service.NameDirectory,
	appointments []entity.Appointment,
) []dto.AppointmentResponse {
	people := names.Lookup(ctx, appointments)

	roomNames := make(map[string]string)
	if len(appointments) > 0 {
		seen := make(map[string]struct{})
		ids := make([]string, 0)
		for i := range appointments {
			if _, ok := seen[appointments[i].RoomID]; !ok {
				seen[appointments[i].RoomID] = struct{}{}
				ids = append(ids, appointments[i].RoomID)
			}
		}
		rooms, err := roomRepo.FindByIDs(db.WithContext(ctx), ids)
		if err != nil {
			log.Warnf("Failed to find rooms for appointments: %+v", err)
		}
		for _, room := range rooms {
			roomNames[room.ID] = room.Name
		}
	}

	return converter.AppointmentsToResponses(appointments, converter.AppointmentNames{
		Patients: people.Patients,
		Doctors:  people.Doctors,
		Rooms:    roomNames,
		Fallback: schedule.UnknownName,
	})
}
