package usecase

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/delivery/dto"
	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/schedule"
	"go-clinic-scheduling/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// recentAppointmentsLimit is how many of the latest bookings the dashboard shows
const recentAppointmentsLimit = 5

type DashboardUsecase interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	roomRepo        repository.RoomRepository
	appointmentRepo repository.AppointmentRepository
	names           service.NameDirectory
	calendar        Calendar
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	roomRepo repository.RoomRepository,
	appointmentRepo repository.AppointmentRepository,
	names service.NameDirectory,
	calendar Calendar,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		roomRepo:        roomRepo,
		appointmentRepo: appointmentRepo,
		names:           names,
		calendar:        calendar,
	}
}

// GetStats reports totals, today's load and per-room occupancy for the
// current clinic day.
func (u *dashboardUsecase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats := &dto.DashboardStatsResponse{}
	from, to := u.calendar.Timezone.LocalDayWindow(u.calendar.now())

	var rooms []entity.Room
	var recent []entity.Appointment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalPatients, err = u.patientRepo.Count(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDoctors, err = u.doctorRepo.CountActive(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		rooms, err = u.roomRepo.FindAllActive(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAppointments, err = u.appointmentRepo.Count(u.db.WithContext(gctx))
		return err
	})
	g.Go(func() (err error) {
		stats.TodayAppointments, err = u.appointmentRepo.CountActiveInRange(u.db.WithContext(gctx), from, to)
		return err
	})
	g.Go(func() (err error) {
		recent, err = u.appointmentRepo.FindRecent(u.db.WithContext(gctx), recentAppointmentsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load dashboard stats: %+v", err)
		return nil, err
	}

	stats.TotalRooms = int64(len(rooms))
	stats.RecentAppointments = appointmentsWithNames(ctx, u.db, u.log, u.roomRepo, u.names, recent)

	stats.RoomStats = make([]dto.RoomStatsResponse, 0, len(rooms))
	for i := range rooms {
		roomStats, err := u.roomStats(ctx, &rooms[i], from, to)
		if err != nil {
			return nil, err
		}
		stats.RoomStats = append(stats.RoomStats, roomStats)
	}

	return stats, nil
}

// roomStats counts today's bookings of a room and the share of its grid they occupy
func (u *dashboardUsecase) roomStats(ctx context.Context, room *entity.Room, from, to time.Time) (dto.RoomStatsResponse, error) {
	result := dto.RoomStatsResponse{
		ID:            room.ID,
		Name:          room.Name,
		OccupancyRate: decimal.Zero,
	}

	appointments, err := u.appointmentRepo.FindByRoomAndRange(u.db.WithContext(ctx), room.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find today's appointments of room %s: %+v", room.Name, err)
		return result, err
	}
	for i := range appointments {
		if !appointments[i].IsCanceled() {
			result.AppointmentCount++
		}
	}

	hours, err := u.calendar.Resolver.Resolve(room, from)
	if err != nil {
		u.log.Warnf("Failed to resolve hours of room %s: %+v", room.Name, err)
		return result, nil
	}
	labels := schedule.GenerateSlots(hours)
	occupied := schedule.MapOccupancy(appointments, u.calendar.Timezone, schedule.Names{})
	for _, label := range labels {
		if _, ok := occupied[label]; ok {
			result.OccupiedSlots++
		}
	}

	result.TotalSlots = len(labels)
	if result.TotalSlots > 0 {
		result.OccupancyRate = decimal.NewFromInt(int64(result.OccupiedSlots)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(int64(result.TotalSlots)), 2)
	}
	return result, nil
}
