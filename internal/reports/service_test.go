package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultorio-server/internal/models"
	"consultorio-server/internal/store"
	"consultorio-server/internal/testutil"
)

func seed(t *testing.T, s *store.Store) (psychologist, patient *models.User) {
	t.Helper()
	ctx := context.Background()

	psychologist = &models.User{Username: "psico", Password: "p", Email: "p@x.pe", Role: models.RolePsychologist, Name: "Dra. Vega", Active: true}
	patient = &models.User{Username: "paciente", Password: "p", Email: "c@x.pe", Role: models.RolePatient, Name: "Carla", Active: true}
	other := &models.User{Username: "otro", Password: "p", Email: "o@x.pe", Role: models.RolePsychologist, Name: "Dr. Soto", Active: true}
	for _, u := range []*models.User{psychologist, patient, other} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	appointments := []*models.Appointment{
		{PatientID: patient.ID, PsychologistID: psychologist.ID, Status: models.StatusReserved, Modality: models.ModalityInPerson, Price: testutil.Float(100)},
		{PatientID: patient.ID, PsychologistID: psychologist.ID, Status: models.StatusCompleted, Modality: models.ModalityVideo, Price: testutil.Float(100), Paid: true},
		{PatientID: patient.ID, PsychologistID: other.ID, Status: models.StatusReserved, Modality: models.ModalityInPerson, Price: testutil.Float(90)},
	}
	for _, a := range appointments {
		a.ScheduledAt = time.Now()
		if err := s.Appointments.Save(ctx, a); err != nil {
			t.Fatalf("seed appointment: %v", err)
		}
	}

	payment := &models.Payment{AppointmentID: appointments[1].ID, PatientID: patient.ID, PsychologistID: psychologist.ID, Amount: 100, Method: models.MethodCard, Status: models.PaymentCompleted, PaidAt: time.Now()}
	if err := s.Payments.Save(ctx, payment); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return psychologist, patient
}

func TestServiceSearchIntersectsCriteria(t *testing.T) {
	s := store.New(testutil.NewDB(t))
	psychologist, _ := seed(t, s)
	svc := NewService(s)

	status := models.StatusReserved
	got, err := svc.Search(context.Background(), AppointmentFilter{Status: &status, PsychologistID: &psychologist.ID})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(got))
	}
	if got[0].Status != models.StatusReserved || got[0].PsychologistID != psychologist.ID {
		t.Errorf("unexpected match %+v", got[0])
	}

	all, err := svc.Search(context.Background(), AppointmentFilter{})
	if err != nil || len(all) != 3 {
		t.Errorf("expected every appointment without criteria, got %d (%v)", len(all), err)
	}
}

func TestServiceSummaryAndHistory(t *testing.T) {
	s := store.New(testutil.NewDB(t))
	psychologist, patient := seed(t, s)
	svc := NewService(s)
	ctx := context.Background()

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Revenue != 100 || summary.PaidAppointments != 1 || summary.PendingRevenue != 190 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.Psychologists[StatsKey(psychologist.ID)].Revenue != 100 {
		t.Errorf("unexpected psychologist stats %+v", summary.Psychologists)
	}

	history, err := svc.History(ctx, patient.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history.TotalSessions != 3 || history.Spent != 100 || len(history.Payments) != 1 {
		t.Errorf("unexpected history %+v", history)
	}

	if _, err := svc.History(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unknown patient, got %v", err)
	}
}
