// Package consistency keeps appointments in step with the payments and
// clinical notes recorded against them.
package consistency

import (
	"context"
	"errors"
	"fmt"

	"consultorio-server/internal/models"
	"consultorio-server/internal/store"
)

// AppointmentStore is the slice of the entity store the synchronizer needs.
type AppointmentStore interface {
	Get(ctx context.Context, id uint) (*models.Appointment, error)
	Save(ctx context.Context, appointment *models.Appointment) error
}

// Synchronizer applies the secondary writes that follow a payment or a
// clinical note. Writes are not transactional: the triggering entity is
// already persisted when these run.
type Synchronizer struct {
	appointments AppointmentStore
}

// NewSynchronizer creates a Synchronizer over appointments.
func NewSynchronizer(appointments AppointmentStore) *Synchronizer {
	return &Synchronizer{appointments: appointments}
}

// PaymentRecorded marks the payment's appointment as paid when the payment
// is COMPLETADO. A missing appointment is not an error.
func (s *Synchronizer) PaymentRecorded(ctx context.Context, payment *models.Payment) error {
	if payment.Status != models.PaymentCompleted {
		return nil
	}

	appointment, ok, err := s.lookup(ctx, payment.AppointmentID)
	if err != nil || !ok {
		return err
	}
	if appointment.Paid {
		return nil
	}

	appointment.Paid = true
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return fmt.Errorf("mark appointment %d paid: %w", appointment.ID, err)
	}
	return nil
}

// ClinicalNoteRecorded points the linked appointment's notes at the new
// clinical note, replacing whatever text was there.
func (s *Synchronizer) ClinicalNoteRecorded(ctx context.Context, note *models.ClinicalNote) error {
	if note.AppointmentID == nil {
		return nil
	}

	appointment, ok, err := s.lookup(ctx, *note.AppointmentID)
	if err != nil || !ok {
		return err
	}

	appointment.Notes = models.NoteReference(note.ID)
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return fmt.Errorf("link note %d to appointment %d: %w", note.ID, appointment.ID, err)
	}
	return nil
}

func (s *Synchronizer) lookup(ctx context.Context, id uint) (*models.Appointment, bool, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load appointment %d: %w", id, err)
	}
	return appointment, true, nil
}
