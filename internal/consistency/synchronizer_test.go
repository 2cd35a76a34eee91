package consistency

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"consultorio-server/internal/models"
	"consultorio-server/internal/store"
	"consultorio-server/internal/testutil"
)

func newFixture(t *testing.T) (*store.Store, *Synchronizer, *models.Appointment) {
	t.Helper()
	s := store.New(testutil.NewDB(t))
	appointment := &models.Appointment{
		PatientID:      1,
		PsychologistID: 2,
		ScheduledAt:    time.Now(),
		Status:         models.StatusReserved,
		Modality:       models.ModalityInPerson,
		Notes:          "primera sesión",
		Price:          testutil.Float(100),
	}
	if err := s.Appointments.Save(context.Background(), appointment); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return s, NewSynchronizer(s.Appointments), appointment
}

func TestPaymentRecordedMarksAppointmentPaid(t *testing.T) {
	s, sync, appointment := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		status   models.PaymentStatus
		wantPaid bool
	}{
		{models.PaymentPending, false},
		{models.PaymentFailed, false},
		{models.PaymentCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			payment := &models.Payment{AppointmentID: appointment.ID, Amount: 100, Method: models.MethodCash, Status: tt.status}
			if err := sync.PaymentRecorded(ctx, payment); err != nil {
				t.Fatalf("PaymentRecorded failed: %v", err)
			}
			got, err := s.Appointments.Get(ctx, appointment.ID)
			if err != nil {
				t.Fatalf("reload appointment: %v", err)
			}
			if got.Paid != tt.wantPaid {
				t.Errorf("expected pagado=%v, got %v", tt.wantPaid, got.Paid)
			}
		})
	}
}

func TestPaymentRecordedIgnoresMissingAppointment(t *testing.T) {
	s, sync, _ := newFixture(t)
	ctx := context.Background()

	payment := &models.Payment{AppointmentID: 999, PatientID: 1, PsychologistID: 2, Amount: 50, Method: models.MethodYape, Status: models.PaymentCompleted, PaidAt: time.Now()}
	if err := s.Payments.Save(ctx, payment); err != nil {
		t.Fatalf("save payment: %v", err)
	}
	if err := sync.PaymentRecorded(ctx, payment); err != nil {
		t.Fatalf("expected no error for a missing appointment, got %v", err)
	}

	got, err := s.Payments.Get(ctx, payment.ID)
	if err != nil {
		t.Fatalf("payment should stay persisted: %v", err)
	}
	if got.Amount != 50 || got.Status != models.PaymentCompleted {
		t.Errorf("payment changed: %+v", got)
	}
}

func TestClinicalNoteRecordedWritesBackReference(t *testing.T) {
	s, sync, appointment := newFixture(t)
	ctx := context.Background()

	note := &models.ClinicalNote{AppointmentID: testutil.UintPtr(appointment.ID), PatientID: 1, PsychologistID: 2, Type: models.NoteFollowUp, Content: "avances"}
	if err := s.ClinicalNotes.Save(ctx, note); err != nil {
		t.Fatalf("save note: %v", err)
	}
	if err := sync.ClinicalNoteRecorded(ctx, note); err != nil {
		t.Fatalf("ClinicalNoteRecorded failed: %v", err)
	}

	got, err := s.Appointments.Get(ctx, appointment.ID)
	if err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if !strings.Contains(got.Notes, strconv.FormatUint(uint64(note.ID), 10)) {
		t.Errorf("expected notes to reference note %d, got %q", note.ID, got.Notes)
	}
	if strings.Contains(got.Notes, "primera sesión") {
		t.Errorf("expected previous notes to be replaced, got %q", got.Notes)
	}
}

func TestClinicalNoteWithoutAppointmentTouchesNothing(t *testing.T) {
	s, sync, appointment := newFixture(t)
	ctx := context.Background()

	note := &models.ClinicalNote{PatientID: 1, PsychologistID: 2, Type: models.NoteEmergency, Content: "crisis"}
	if err := sync.ClinicalNoteRecorded(ctx, note); err != nil {
		t.Fatalf("ClinicalNoteRecorded failed: %v", err)
	}

	got, err := s.Appointments.Get(ctx, appointment.ID)
	if err != nil {
		t.Fatalf("reload appointment: %v", err)
	}
	if got.Notes != "primera sesión" {
		t.Errorf("expected notes untouched, got %q", got.Notes)
	}
}

type failingStore struct {
	appointment models.Appointment
	saveErr     error
}

func (f *failingStore) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	a := f.appointment
	return &a, nil
}

func (f *failingStore) Save(ctx context.Context, a *models.Appointment) error {
	return f.saveErr
}

func TestSecondaryWriteFailureIsReturned(t *testing.T) {
	boom := errors.New("disk full")
	sync := NewSynchronizer(&failingStore{appointment: models.Appointment{BaseModel: models.BaseModel{ID: 3}}, saveErr: boom})

	err := sync.PaymentRecorded(context.Background(), &models.Payment{AppointmentID: 3, Status: models.PaymentCompleted})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
}
