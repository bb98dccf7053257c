package service

import (
	"context"
	"fmt"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ProvisioningService seeds the canonical rooms and the first admin account.
type ProvisioningService struct {
	db        *gorm.DB
	log       *logrus.Logger
	roomRepo  repository.RoomRepository
	userRepo  repository.UserRepository
	roomHours map[string]schedule.Window
}

func NewProvisioningService(
	db *gorm.DB,
	log *logrus.Logger,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	roomHours map[string]schedule.Window,
) *ProvisioningService {
	return &ProvisioningService{
		db:        db,
		log:       log,
		roomRepo:  roomRepo,
		userRepo:  userRepo,
		roomHours: roomHours,
	}
}

// Seed runs both seeds. Each one is a no-op when its data already exists.
func (s *ProvisioningService) Seed(ctx context.Context, adminPassword string) error {
	if err := s.SeedRooms(ctx); err != nil {
		return err
	}
	return s.SeedAdmin(ctx, adminPassword)
}

// SeedRooms inserts C1..C8 when the rooms table is empty.
func (s *ProvisioningService) SeedRooms(ctx context.Context) error {
	count, err := s.roomRepo.Count(s.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("count rooms: %w", err)
	}
	if count > 0 {
		s.log.Debugf("Rooms already provisioned (%d), skipping seed", count)
		return nil
	}

	rooms := DefaultRooms(s.roomHours)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rooms {
			if err := s.roomRepo.Create(tx, &rooms[i]); err != nil {
				return fmt.Errorf("seed room %s: %w", rooms[i].Name, err)
			}
		}
		s.log.Infof("Provisioned %d default rooms", len(rooms))
		return nil
	})
}

// SeedAdmin creates the "admin" account when no admin exists.
func (s *ProvisioningService) SeedAdmin(ctx context.Context, password string) error {
	exists, err := s.userRepo.ExistsByRole(s.db.WithContext(ctx), entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@consultorio.com",
		FullName:     "Administrador",
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(s.db.WithContext(ctx), admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	s.log.Warn("Provisioned default admin user; change its password")
	return nil
}

// DefaultRooms returns fresh copies of the eight canonical rooms. Fixed rooms
// take their start and end from hours, keyed by room name.
func DefaultRooms(hours map[string]schedule.Window) []entity.Room {
	basic := entity.StringList{"Estetoscópio", "Tensiômetro", "Balança", "Mesa ginecológica"}

	fixed := func(n int, location string) entity.Room {
		name := fmt.Sprintf("C%d", n)
		team := fmt.Sprintf("ESF %d", n)
		w := hours[name]
		return entity.Room{
			ID:            uuid.New().String(),
			Name:          name,
			Description:   fmt.Sprintf("Consultório %d - Estratégia Saúde da Família %d", n, n),
			Capacity:      2,
			Equipment:     append(entity.StringList(nil), basic...),
			Location:      location,
			OccupancyType: entity.OccupancyFixed,
			FixedSchedule: &entity.FixedSchedule{Team: team, Start: w.Start, End: w.End},
			IsActive:      true,
		}
	}
	rotative := func(name, description, location string, capacity int, equipment entity.StringList, week entity.WeeklySchedule) entity.Room {
		return entity.Room{
			ID:             uuid.New().String(),
			Name:           name,
			Description:    description,
			Capacity:       capacity,
			Equipment:      equipment,
			Location:       location,
			OccupancyType:  entity.OccupancyRotative,
			WeeklySchedule: week,
			IsActive:       true,
		}
	}
	same := func(label string) entity.DaySchedule {
		return entity.DaySchedule{Morning: label, Afternoon: label}
	}
	free := same(entity.FreeLabel)

	return []entity.Room{
		fixed(1, "Térreo - Ala Oeste"),
		fixed(2, "Térreo - Ala Oeste"),
		fixed(3, "Térreo - Ala Leste"),
		fixed(4, "Térreo - Ala Leste"),
		fixed(5, "1º Andar - Ala Central"),
		rotative("C6", "Consultório 6 - Uso Rotativo (Especialidades)", "1º Andar - Ala Central", 2,
			entity.StringList{"Estetoscópio", "Tensiômetro", "Eletrocardiógrafo", "Maca"},
			entity.WeeklySchedule{
				"monday":    same("Cardiologia"),
				"tuesday":   same("Acupuntura"),
				"wednesday": same("Cardiologia"),
				"thursday":  {Morning: "Cardiologia", Afternoon: "Ginecologista"},
				"friday":    same("Acupuntura"),
				"saturday":  free,
				"sunday":    free,
			}),
		rotative("C7", "Consultório 7 - Uso Rotativo (Médico Apoio/Especialistas)", "1º Andar - Ala Norte", 2,
			entity.StringList{"Estetoscópio", "Tensiômetro", "Otoscópio", "Oftalmoscópio"},
			entity.WeeklySchedule{
				"monday":    same("Médico Apoio"),
				"tuesday":   {Morning: entity.FreeLabel, Afternoon: "Cardiologia"},
				"wednesday": {Morning: "Pediatria", Afternoon: "Acupuntura"},
				"thursday":  {Morning: "Pediatria", Afternoon: "Acupuntura"},
				"friday":    same("Médico Apoio"),
				"saturday":  free,
				"sunday":    free,
			}),
		rotative("C8", "Consultório 8 - Coringa (E-Multi/Apoio/Reserva)", "1º Andar - Ala Sul", 3,
			entity.StringList{"Estetoscópio", "Tensiômetro", "Balança", "Mesa auxiliar"},
			entity.WeeklySchedule{
				"monday":    same("E-MULTI"),
				"tuesday":   same("Médico Apoio"),
				"wednesday": same("E-MULTI"),
				"thursday":  same("Médico Apoio"),
				"friday":    same("Apoio/Reserva"),
				"saturday":  free,
				"sunday":    free,
			}),
	}
}
