package service

import (
	"context"
	"time"

	"go-clinic-scheduling/internal/domain/entity"
	"go-clinic-scheduling/internal/domain/repository"
	"go-clinic-scheduling/internal/domain/schedule"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// NameDirectory resolves patient and doctor display names for appointments.
type NameDirectory interface {
	Lookup(ctx context.Context, appointments []entity.Appointment) schedule.Names
}

type nameDirectory struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	patients    *expirable.LRU[string, string]
	doctors     *expirable.LRU[string, string]
}

// NewNameDirectory caches up to size names per kind for ttl.
func NewNameDirectory(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	size int,
	ttl time.Duration,
) NameDirectory {
	return &nameDirectory{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		patients:    expirable.NewLRU[string, string](size, nil, ttl),
		doctors:     expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Lookup fetches missing names for both kinds in parallel. Names that cannot
// be loaded are left out and render as schedule.UnknownName.
func (d *nameDirectory) Lookup(ctx context.Context, appointments []entity.Appointment) schedule.Names {
	names := schedule.Names{
		Patients: make(map[string]string),
		Doctors:  make(map[string]string),
	}
	if len(appointments) == 0 {
		return names
	}

	var patientMisses, doctorMisses []string
	seenPatients := make(map[string]struct{})
	seenDoctors := make(map[string]struct{})
	for i := range appointments {
		apt := &appointments[i]
		if _, ok := seenPatients[apt.PatientID]; !ok {
			seenPatients[apt.PatientID] = struct{}{}
			if name, ok := d.patients.Get(apt.PatientID); ok {
				names.Patients[apt.PatientID] = name
			} else {
				patientMisses = append(patientMisses, apt.PatientID)
			}
		}
		if _, ok := seenDoctors[apt.DoctorID]; !ok {
			seenDoctors[apt.DoctorID] = struct{}{}
			if name, ok := d.doctors.Get(apt.DoctorID); ok {
				names.Doctors[apt.DoctorID] = name
			} else {
				doctorMisses = append(doctorMisses, apt.DoctorID)
			}
		}
	}

	var patients []entity.Patient
	var doctors []entity.Doctor

	g, gctx := errgroup.WithContext(ctx)
	if len(patientMisses) > 0 {
		g.Go(func() error {
			var err error
			patients, err = d.patientRepo.FindByIDs(d.db.WithContext(gctx), patientMisses)
			return err
		})
	}
	if len(doctorMisses) > 0 {
		g.Go(func() error {
			var err error
			doctors, err = d.doctorRepo.FindByIDs(d.db.WithContext(gctx), doctorMisses)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		d.log.Warnf("Failed to resolve appointment names: %+v", err)
	}

	for _, p := range patients {
		d.patients.Add(p.ID, p.Name)
		names.Patients[p.ID] = p.Name
	}
	for _, doc := range doctors {
		d.doctors.Add(doc.ID, doc.Name)
		names.Doctors[doc.ID] = doc.Name
	}

	return names
}
