package reports

import (
	"context"
	"fmt"

	"consultorio-server/internal/models"
	"consultorio-server/internal/store"
)

// Service loads snapshots from the store and computes reports over them.
type Service struct {
	store *store.Store
}

// NewService creates a report Service.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// Snapshot loads every record.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Users, err = s.store.Users.List(ctx); err != nil {
		return snap, fmt.Errorf("load users: %w", err)
	}
	if snap.Appointments, err = s.store.Appointments.List(ctx); err != nil {
		return snap, fmt.Errorf("load appointments: %w", err)
	}
	if snap.Payments, err = s.store.Payments.List(ctx); err != nil {
		return snap, fmt.Errorf("load payments: %w", err)
	}
	if snap.ClinicalNotes, err = s.store.ClinicalNotes.List(ctx); err != nil {
		return snap, fmt.Errorf("load clinical notes: %w", err)
	}
	return snap, nil
}

// Summary computes the clinic-wide overview.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load users: %w", err)
	}
	appointments, err := s.store.Appointments.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load appointments: %w", err)
	}
	return Summarize(Snapshot{Users: users, Appointments: appointments}), nil
}

// Detailed computes the overview including payments and notes.
func (s *Service) Detailed(ctx context.Context) (Detailed, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Detailed{}, err
	}
	return Detail(snap), nil
}

// Psychologist reports on one psychologist's appointments. An unknown id
// yields an empty report.
func (s *Service) Psychologist(ctx context.Context, id uint) (PsychologistReport, error) {
	appointments, err := s.store.AppointmentsByPsychologist(ctx, id)
	if err != nil {
		return PsychologistReport{}, err
	}
	return ForPsychologist(appointments), nil
}

// Patient reports on one patient's appointments. An unknown id yields an
// empty report.
func (s *Service) Patient(ctx context.Context, id uint) (PatientReport, error) {
	appointments, err := s.store.AppointmentsByPatient(ctx, id)
	if err != nil {
		return PatientReport{}, err
	}
	return ForPatient(appointments), nil
}

// History assembles a patient's complete record. It returns
// store.ErrNotFound when the patient does not exist.
func (s *Service) History(ctx context.Context, patientID uint) (PatientHistory, error) {
	patient, err := s.store.Users.Get(ctx, patientID)
	if err != nil {
		return PatientHistory{}, err
	}
	appointments, err := s.store.AppointmentsByPatient(ctx, patientID)
	if err != nil {
		return PatientHistory{}, err
	}
	payments, err := s.store.PaymentsByPatient(ctx, patientID)
	if err != nil {
		return PatientHistory{}, err
	}
	notes, err := s.store.NotesByPatient(ctx, patientID)
	if err != nil {
		return PatientHistory{}, err
	}
	return History(patient, appointments, payments, notes), nil
}

// Search returns the appointments matching every criterion in f.
func (s *Service) Search(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	return s.store.Appointments.ListBy(ctx, f.Query())
}
