package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultorio-server/internal/models"
	"consultorio-server/internal/testutil"
)

func TestRepositorySaveAssignsMonotonicIDs(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	first := &models.Appointment{PatientID: 1, PsychologistID: 2, ScheduledAt: time.Now(), Status: models.StatusReserved, Modality: models.ModalityVideo}
	second := &models.Appointment{PatientID: 1, PsychologistID: 2, ScheduledAt: time.Now(), Status: models.StatusReserved, Modality: models.ModalityVideo}

	if err := s.Appointments.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Appointments.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}

	id := first.ID
	first.Notes = "updated"
	if err := s.Appointments.Save(ctx, first); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if first.ID != id {
		t.Errorf("expected id %d to be kept on update, got %d", id, first.ID)
	}

	got, err := s.Appointments.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Notes != "updated" {
		t.Errorf("expected notes to be updated, got %q", got.Notes)
	}
}

func TestRepositoryGetAndDeleteMissing(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	if _, err := s.Payments.Get(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Get, got %v", err)
	}
	if err := s.Payments.Delete(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Delete, got %v", err)
	}
}

func TestRepositoryListByIntersectsPredicates(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	seed := []models.Appointment{
		{PatientID: 1, PsychologistID: 7, Status: models.StatusReserved, Modality: models.ModalityInPerson},
		{PatientID: 2, PsychologistID: 7, Status: models.StatusCompleted, Modality: models.ModalityInPerson},
		{PatientID: 1, PsychologistID: 8, Status: models.StatusReserved, Modality: models.ModalityVideo},
	}
	for i := range seed {
		seed[i].ScheduledAt = time.Now()
		if err := s.Appointments.Save(ctx, &seed[i]); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	got, err := s.Appointments.ListBy(ctx, Where("psychologist_id", 7).And("status", models.StatusReserved))
	if err != nil {
		t.Fatalf("ListBy failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != seed[0].ID {
		t.Fatalf("expected only appointment %d, got %+v", seed[0].ID, got)
	}

	all, err := s.Appointments.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 appointments, got %d", len(all))
	}

	n, err := s.Appointments.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("expected count 3, got %d (%v)", n, err)
	}
}

func TestQueryAndDoesNotMutateReceiver(t *testing.T) {
	base := Where("patient_id", 1)
	_ = base.And("status", models.StatusReserved)

	if len(base.conds) != 1 {
		t.Errorf("expected base query to keep 1 predicate, got %d", len(base.conds))
	}
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	user := &models.User{Username: "ana", Password: "x", Email: "ana@example.com", Role: models.RolePatient, Name: "Ana", Active: true}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	dup := &models.User{Username: "ana", Password: "y", Email: "other@example.com", Role: models.RolePatient, Name: "Ana B", Active: true}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	found, err := s.UserByUsername(ctx, "ana")
	if err != nil {
		t.Fatalf("UserByUsername failed: %v", err)
	}
	if found.RegisteredAt.IsZero() {
		t.Error("expected registration time to be stamped")
	}
}

func TestNotesByPatientNewestFirst(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	older := &models.ClinicalNote{PatientID: 3, PsychologistID: 4, Type: models.NoteInitialAssessment, Content: "first", WrittenAt: time.Now().Add(-48 * time.Hour)}
	newer := &models.ClinicalNote{PatientID: 3, PsychologistID: 4, Type: models.NoteFollowUp, Content: "second", WrittenAt: time.Now()}
	for _, n := range []*models.ClinicalNote{older, newer} {
		if err := s.ClinicalNotes.Save(ctx, n); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	notes, err := s.NotesByPatient(ctx, 3)
	if err != nil {
		t.Fatalf("NotesByPatient failed: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != newer.ID {
		t.Fatalf("expected newest note first, got %+v", notes)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	created, err := s.EnsureAdmin(ctx, "admin", "secret")
	if err != nil || !created {
		t.Fatalf("expected admin to be created, got created=%v err=%v", created, err)
	}
	created, err = s.EnsureAdmin(ctx, "admin", "secret")
	if err != nil || created {
		t.Fatalf("expected second call to be a no-op, got created=%v err=%v", created, err)
	}

	admins, err := s.UsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		t.Fatalf("UsersByRole failed: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("expected 1 admin, got %d", len(admins))
	}
}
