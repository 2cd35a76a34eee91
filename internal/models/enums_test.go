package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAppointmentStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    AppointmentStatus
		wantErr bool
	}{
		{raw: "RESERVADA", want: StatusReserved},
		{raw: " completada ", want: StatusCompleted},
		{raw: "cancelada", want: StatusCancelled},
		{raw: "PENDIENTE", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAppointmentStatus(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEnum) {
					t.Fatalf("expected ErrInvalidEnum, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEnumsRejectUnknownJSON(t *testing.T) {
	var body struct {
		Method PaymentMethod `json:"metodoPago"`
	}

	if err := json.Unmarshal([]byte(`{"metodoPago":"yape"}`), &body); err != nil {
		t.Fatalf("expected lowercase method to be accepted: %v", err)
	}
	if body.Method != MethodYape {
		t.Errorf("expected %q, got %q", MethodYape, body.Method)
	}

	if err := json.Unmarshal([]byte(`{"metodoPago":"BITCOIN"}`), &body); err == nil {
		t.Fatal("expected unknown payment method to be rejected")
	}
}

func TestEnumValidity(t *testing.T) {
	valid := []interface{ Valid() bool }{
		RoleAdmin, RolePsychologist, RolePatient,
		ModalityInPerson, ModalityVideo,
		PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded,
		NoteInitialAssessment, NoteFollowUp, NoteClosing, NoteEmergency,
		FunctionalityHigh, FunctionalityMedium, FunctionalityLow,
	}
	for _, v := range valid {
		if !v.Valid() {
			t.Errorf("expected %v to be valid", v)
		}
	}

	if Role("DOCTOR").Valid() {
		t.Error("expected DOCTOR to be an invalid role")
	}
}

func TestAppointmentPriceOrZero(t *testing.T) {
	price := 120.5
	if got := (&Appointment{Price: &price}).PriceOrZero(); got != 120.5 {
		t.Errorf("expected 120.5, got %v", got)
	}
	if got := (&Appointment{}).PriceOrZero(); got != 0 {
		t.Errorf("expected 0 for a missing price, got %v", got)
	}
}

func TestNoteReferenceContainsID(t *testing.T) {
	if got := NoteReference(42); got != "Ver nota clínica detallada ID: 42" {
		t.Errorf("unexpected reference %q", got)
	}
}
