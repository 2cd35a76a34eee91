package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"consultorio-server/internal/models"
)

// Store bundles the clinic's repositories.
type Store struct {
	Users         *Repository[models.User]
	Appointments  *Repository[models.Appointment]
	Payments      *Repository[models.Payment]
	ClinicalNotes *Repository[models.ClinicalNote]
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:         NewRepository[models.User](db),
		Appointments:  NewRepository[models.Appointment](db),
		Payments:      NewRepository[models.Payment](db),
		ClinicalNotes: NewRepository[models.ClinicalNote](db),
	}
}

// UserByUsername looks a user up by login name.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := s.Users.ListBy(ctx, Where("username", username))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: username %q", ErrNotFound, username)
	}
	return &users[0], nil
}

// CreateUser persists a new user, refusing taken usernames.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.UserByUsername(ctx, user.Username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
	case !errors.Is(err, ErrNotFound):
		return err
	}
	return s.Users.Save(ctx, user)
}

// UsersByRole lists the users holding role.
func (s *Store) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return s.Users.ListBy(ctx, Where("role", role))
}

// AppointmentsByPatient lists a patient's appointments.
func (s *Store) AppointmentsByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	return s.Appointments.ListBy(ctx, Where("patient_id", patientID))
}

// AppointmentsByPsychologist lists a psychologist's appointments.
func (s *Store) AppointmentsByPsychologist(ctx context.Context, psychologistID uint) ([]models.Appointment, error) {
	return s.Appointments.ListBy(ctx, Where("psychologist_id", psychologistID))
}

// PaymentsByPatient lists a patient's payments.
func (s *Store) PaymentsByPatient(ctx context.Context, patientID uint) ([]models.Payment, error) {
	return s.Payments.ListBy(ctx, Where("patient_id", patientID))
}

// PaymentsByPsychologist lists the payments received by a psychologist.
func (s *Store) PaymentsByPsychologist(ctx context.Context, psychologistID uint) ([]models.Payment, error) {
	return s.Payments.ListBy(ctx, Where("psychologist_id", psychologistID))
}

// PendingPayments lists PENDIENTE payments, oldest first.
func (s *Store) PendingPayments(ctx context.Context) ([]models.Payment, error) {
	return s.Payments.ListBy(ctx, Where("status", models.PaymentPending).OrderBy("paid_at asc, id"))
}

// NotesByPatient lists a patient's clinical notes, newest first.
func (s *Store) NotesByPatient(ctx context.Context, patientID uint) ([]models.ClinicalNote, error) {
	return s.ClinicalNotes.ListBy(ctx, Where("patient_id", patientID).OrderBy("written_at desc, id desc"))
}

// NotesByPsychologist lists a psychologist's clinical notes, newest first.
func (s *Store) NotesByPsychologist(ctx context.Context, psychologistID uint) ([]models.ClinicalNote, error) {
	return s.ClinicalNotes.ListBy(ctx, Where("psychologist_id", psychologistID).OrderBy("written_at desc, id desc"))
}

// NotesByAppointment lists the notes written for one appointment.
func (s *Store) NotesByAppointment(ctx context.Context, appointmentID uint) ([]models.ClinicalNote, error) {
	return s.ClinicalNotes.ListBy(ctx, Where("appointment_id", appointmentID))
}

// NotesRequiringFollowUp lists notes flagged for follow-up, soonest review first.
func (s *Store) NotesRequiringFollowUp(ctx context.Context) ([]models.ClinicalNote, error) {
	return s.ClinicalNotes.ListBy(ctx, Where("requires_follow_up", true).OrderBy("next_review_at asc, id"))
}

// EnsureAdmin creates an administrator account named username unless one
// already exists. It reports whether an account was created.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if _, err := s.UserByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	admin := &models.User{
		Username: username,
		Password: password,
		Email:    username + "@consultorio.local",
		Role:     models.RoleAdmin,
		Name:     "Administrador",
		Active:   true,
	}
	if err := s.Users.Save(ctx, admin); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
