package usecase

import (
	"context"
	"errors"
	"strings"

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

// notAvailable fills fixed-room fields that cannot be resolved
const notAvailable = "N/A"

// gridDays are the weekdays shown in the weekly schedule grid
var gridDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

type RoomUsecase interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context) (*dto.RoomListResponse, error)
	DeactivateRoom(ctx context.Context, roomID string) error
	UpdateHours(ctx context.Context, roomID string, req *dto.UpdateHoursRequest) (*dto.RoomHoursResponse, error)
	GetSlots(ctx context.Context, roomID, date string) (*dto.RoomSlotsResponse, error)
	GetDayAvailability(ctx context.Context, dayOfWeek string) (*dto.DayAvailabilityResponse, error)
	GetWeeklySchedule(ctx context.Context) (*dto.WeeklyScheduleResponse, error)
}

type roomUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	roomRepo        repository.RoomRepository
	appointmentRepo repository.AppointmentRepository
	names           service.NameDirectory
	auditService    service.AuditService
	calendar        Calendar
}

func NewRoomUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roomRepo repository.RoomRepository,
	appointmentRepo repository.AppointmentRepository,
	names service.NameDirectory,
	auditService service.AuditService,
	calendar Calendar,
) RoomUsecase {
	return &roomUsecase{
		db:              db,
		log:             log,
		roomRepo:        roomRepo,
		appointmentRepo: appointmentRepo,
		names:           names,
		auditService:    auditService,
		calendar:        calendar,
	}
}

func (u *roomUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := converter.CreateRoomRequestToEntity(req)

	if fixed := room.FixedSchedule; fixed != nil && (fixed.Start != "" || fixed.End != "") {
		if err := schedule.ValidateHours(fixed.Start, fixed.End); err != nil {
			return nil, err
		}
	}
	if room.FixedSchedule != nil && room.FixedSchedule.Team == "" {
		room.FixedSchedule.Team = room.Name
	}

	now := u.calendar.now()
	room.ID = uuid.New().String()
	room.CreatedAt = now
	room.UpdatedAt = now

	if err := u.roomRepo.Create(u.db.WithContext(ctx), room); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, schedule.Conflict("room %s already exists", room.Name)
		}
		u.log.Warnf("Failed to create room %s: %+v", room.Name, err)
		return nil, err
	}

	response := converter.RoomToResponse(room)
	if err := u.auditService.LogCreate(ctx, u.db, middleware.ActorFromContext(ctx), entity.AuditActionRoomCreate, "room", room.ID, response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Room created: id=%s, name=%s", room.ID, room.Name)
	return response, nil
}

func (u *roomUsecase) GetRoom(ctx context.Context, roomID string) (*dto.RoomResponse, error) {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), roomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", roomID, err)
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	return converter.RoomToResponse(room), nil
}

func (u *roomUsecase) ListRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	rooms, err := u.roomRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active rooms: %+v", err)
		return nil, err
	}

	return &dto.RoomListResponse{
		Rooms: converter.RoomsToResponses(rooms),
		Total: len(rooms),
	}, nil
}

// DeactivateRoom soft-deletes a room. Its appointments are kept.
func (u *roomUsecase) DeactivateRoom(ctx context.Context, roomID string) error {
	db := u.db.WithContext(ctx)

	room, err := u.roomRepo.FindByID(db, roomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", roomID, err)
		return err
	}
	if room == nil || !room.IsActive {
		return ErrRoomNotFound
	}

	rows, err := u.roomRepo.Deactivate(db, roomID)
	if err != nil {
		u.log.Warnf("Failed to deactivate room %s: %+v", roomID, err)
		return err
	}
	if rows == 0 {
		return ErrRoomNotFound
	}

	if err := u.auditService.LogDelete(ctx, u.db, middleware.ActorFromContext(ctx), entity.AuditActionRoomDeactivate, "room", roomID, converter.RoomToResponse(room)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Room deactivated: id=%s, name=%s", room.ID, room.Name)
	return nil
}

// UpdateHours replaces the room's fixed window. The team label is kept when
// present, otherwise the room name becomes the team.
func (u *roomUsecase) UpdateHours(ctx context.Context, roomID string, req *dto.UpdateHoursRequest) (*dto.RoomHoursResponse, error) {
	if err := schedule.ValidateHours(req.Start, req.End); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	room, err := u.roomRepo.FindByID(db, roomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", roomID, err)
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	var oldValue *entity.FixedSchedule
	updated := &entity.FixedSchedule{Team: room.Name, Start: req.Start, End: req.End}
	if room.FixedSchedule != nil {
		old := *room.FixedSchedule
		oldValue = &old
		if old.Team != "" {
			updated.Team = old.Team
		}
	}

	if err := u.roomRepo.UpdateFixedSchedule(db, room.ID, updated); err != nil {
		u.log.Warnf("Failed to update hours of room %s: %+v", room.Name, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db, middleware.ActorFromContext(ctx), entity.AuditActionRoomHoursUpdate, "room", room.ID, oldValue, updated); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Room hours updated: id=%s, name=%s, hours=%s-%s", room.ID, room.Name, updated.Start, updated.End)
	return &dto.RoomHoursResponse{
		ID:        room.ID,
		Name:      room.Name,
		Start:     updated.Start,
		End:       updated.End,
		UpdatedAt: u.calendar.now(),
	}, nil
}

// GetSlots builds the room's slot grid for a calendar date and flags each
// slot as occupied, past or available.
func (u *roomUsecase) GetSlots(ctx context.Context, roomID, date string) (*dto.RoomSlotsResponse, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	room, err := u.roomRepo.FindByID(db, roomID)
	if err != nil {
		u.log.Warnf("Failed to find room %s: %+v", roomID, err)
		return nil, err
	}
	if room == nil || !room.IsActive {
		return nil, ErrRoomNotFound
	}

	hours, err := u.calendar.Resolver.Resolve(room, day)
	if err != nil {
		u.log.Errorf("Failed to resolve hours of room %s: %+v", room.Name, err)
		return nil, err
	}
	labels := schedule.GenerateSlots(hours)

	from, to := schedule.UTCDayWindow(day)
	appointments, err := u.appointmentRepo.FindByRoomAndRange(db, room.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find appointments of room %s on %s: %+v", room.Name, date, err)
		return nil, err
	}

	names := u.names.Lookup(ctx, appointments)
	occupied := schedule.MapOccupancy(appointments, u.calendar.Timezone, names)
	slots := schedule.Evaluate(day, labels, occupied, u.calendar.now(), u.calendar.Timezone)

	return &dto.RoomSlotsResponse{
		RoomID:   room.ID,
		RoomName: room.Name,
		Date:     day.Format(schedule.DateLayout),
		Start:    hours.Start,
		End:      hours.End,
		Slots:    converter.SlotsToResponses(slots),
	}, nil
}

func (u *roomUsecase) GetDayAvailability(ctx context.Context, dayOfWeek string) (*dto.DayAvailabilityResponse, error) {
	day := strings.ToLower(strings.TrimSpace(dayOfWeek))
	if !isWeekday(day) {
		return nil, ErrInvalidDay
	}

	rooms, err := u.roomRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active rooms: %+v", err)
		return nil, err
	}

	result := &dto.DayAvailabilityResponse{
		DayOfWeek: day,
		Rooms:     make([]dto.RoomDayAvailabilityResponse, 0, len(rooms)),
	}
	for i := range rooms {
		room := &rooms[i]
		entry := dto.RoomDayAvailabilityResponse{RoomResponse: *converter.RoomToResponse(room)}
		if room.IsRotative() {
			labels := dayLabels(room, day)
			entry.DaySchedule = dto.DaySchedule{
				Type:      string(entity.OccupancyRotative),
				Morning:   labels.Morning,
				Afternoon: labels.Afternoon,
			}
		} else {
			team, start, end := u.fixedSummary(room)
			entry.DaySchedule = dto.DaySchedule{
				Type:      string(entity.OccupancyFixed),
				Team:      team,
				StartTime: start,
				EndTime:   end,
			}
		}
		result.Rooms = append(result.Rooms, entry)
	}

	return result, nil
}

func (u *roomUsecase) GetWeeklySchedule(ctx context.Context) (*dto.WeeklyScheduleResponse, error) {
	rooms, err := u.roomRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find active rooms: %+v", err)
		return nil, err
	}

	result := &dto.WeeklyScheduleResponse{
		FixedRooms:    []dto.FixedRoomSummary{},
		RotativeRooms: []dto.RoomResponse{},
		ScheduleGrid:  make(map[string]map[string]dto.DayScheduleResponse),
	}
	for i := range rooms {
		room := &rooms[i]
		if !room.IsRotative() {
			team, start, end := u.fixedSummary(room)
			result.FixedRooms = append(result.FixedRooms, dto.FixedRoomSummary{
				RoomResponse: *converter.RoomToResponse(room),
				Team:         team,
				Schedule:     start + " - " + end,
			})
			continue
		}

		result.RotativeRooms = append(result.RotativeRooms, *converter.RoomToResponse(room))
		row := make(map[string]dto.DayScheduleResponse, len(gridDays))
		for _, day := range gridDays {
			labels := dayLabels(room, day)
			row[day] = dto.DayScheduleResponse{Morning: labels.Morning, Afternoon: labels.Afternoon}
		}
		result.ScheduleGrid[room.Name] = row
	}

	return result, nil
}

// fixedSummary reports the team and the hours slot queries would use
func (u *roomUsecase) fixedSummary(room *entity.Room) (string, string, string) {
	team := notAvailable
	if room.FixedSchedule != nil && room.FixedSchedule.Team != "" {
		team = room.FixedSchedule.Team
	}

	hours, err := u.calendar.Resolver.Resolve(room, u.calendar.now())
	if err != nil {
		u.log.Warnf("Failed to resolve hours of room %s: %+v", room.Name, err)
		return team, notAvailable, notAvailable
	}
	return team, hours.Start, hours.End
}

func dayLabels(room *entity.Room, day string) entity.DaySchedule {
	labels := room.WeeklySchedule[day]
	if labels.Morning == "" {
		labels.Morning = entity.FreeLabel
	}
	if labels.Afternoon == "" {
		labels.Afternoon = entity.FreeLabel
	}
	return labels
}

func isWeekday(day string) bool {
	for _, d := range entity.Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
