package patch

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"consultorio-server/internal/models"
)

func decodePatch[P any](t *testing.T, body string) *P {
	t.Helper()
	var p P
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return &p
}

func TestAppointmentPatchChangesOnlySentFields(t *testing.T) {
	price := 80.0
	scheduled := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	appointment := models.Appointment{
		PatientID:      1,
		PsychologistID: 2,
		ScheduledAt:    scheduled,
		Status:         models.StatusReserved,
		Modality:       models.ModalityVideo,
		Notes:          "nota previa",
		Price:          &price,
	}
	before := appointment

	p := decodePatch[AppointmentPatch](t, `{"estado":"COMPLETADA"}`)
	res := p.Apply(&appointment)

	if appointment.Status != models.StatusCompleted {
		t.Fatalf("expected estado COMPLETADA, got %q", appointment.Status)
	}
	before.Status = models.StatusCompleted
	if appointment.Notes != before.Notes || appointment.Paid != before.Paid ||
		!appointment.ScheduledAt.Equal(before.ScheduledAt) || appointment.Modality != before.Modality ||
		appointment.Price != before.Price || appointment.PatientID != before.PatientID {
		t.Errorf("unexpected changes: before %+v after %+v", before, appointment)
	}
	if len(res.Applied) != 1 || res.Applied[0] != "estado" || len(res.Skipped) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestAppointmentPatchCoercesScalars(t *testing.T) {
	var appointment models.Appointment
	p := decodePatch[AppointmentPatch](t, `{
		"precio": "120.50",
		"pagado": "true",
		"fechaHora": "2025-04-01T15:30",
		"modalidad": "presencial",
		"notas": 42
	}`)
	res := p.Apply(&appointment)

	if len(res.Skipped) != 0 {
		t.Fatalf("expected no skipped fields, got %+v", res.Skipped)
	}
	if appointment.PriceOrZero() != 120.5 {
		t.Errorf("expected price 120.5, got %v", appointment.PriceOrZero())
	}
	if !appointment.Paid {
		t.Error("expected pagado to be true")
	}
	want := time.Date(2025, 4, 1, 15, 30, 0, 0, time.Local)
	if !appointment.ScheduledAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, appointment.ScheduledAt)
	}
	if appointment.Modality != models.ModalityInPerson {
		t.Errorf("expected PRESENCIAL, got %q", appointment.Modality)
	}
	if appointment.Notes != "42" {
		t.Errorf("expected numeric notes rendered as text, got %q", appointment.Notes)
	}
}

func TestAppointmentPatchSkipsUnusableValues(t *testing.T) {
	appointment := models.Appointment{Status: models.StatusReserved, Notes: "sin cambios"}
	p := decodePatch[AppointmentPatch](t, `{
		"estado": "PERDIDA",
		"precio": "",
		"pagado": null,
		"fechaHora": "mañana",
		"notas": "actualizada"
	}`)
	res := p.Apply(&appointment)

	price := 100.0
	priced := models.Appointment{Price: &price}
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`} {
		r := decodePatch[AppointmentPatch](t, `{"precio": `+raw+`, "pagado": true}`).Apply(&priced)
		if priced.Price == nil || *priced.Price != 100 {
			t.Errorf("precio %s: expected the stored price to be kept, got %v", raw, priced.Price)
		}
		if len(r.Skipped) != 1 || !errors.Is(r.Skipped[0].Err, ErrNotFinite) {
			t.Errorf("precio %s: expected ErrNotFinite skip, got %+v", raw, r.Skipped)
		}
		if !priced.Paid {
			t.Errorf("precio %s: expected pagado to still apply", raw)
		}
	}

	if appointment.Status != models.StatusReserved {
		t.Errorf("expected unknown estado to be ignored, got %q", appointment.Status)
	}
	if appointment.Price != nil {
		t.Errorf("expected price to stay unset, got %v", *appointment.Price)
	}
	if appointment.Notes != "actualizada" {
		t.Errorf("expected the valid field to apply, got %q", appointment.Notes)
	}

	skipped := map[string]error{}
	for _, s := range res.Skipped {
		skipped[s.Field] = s.Err
	}
	if len(skipped) != 4 {
		t.Fatalf("expected 4 skipped fields, got %+v", res.Skipped)
	}
	if !errors.Is(skipped["estado"], models.ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum for estado, got %v", skipped["estado"])
	}
	if !errors.Is(skipped["precio"], ErrEmpty) {
		t.Errorf("expected ErrEmpty for precio, got %v", skipped["precio"])
	}
	if !errors.Is(skipped["pagado"], ErrNull) {
		t.Errorf("expected ErrNull for pagado, got %v", skipped["pagado"])
	}
}

func TestUserPatchDatesAndNumbers(t *testing.T) {
	user := models.User{Name: "Lucía", Active: true}
	p := decodePatch[UserPatch](t, `{
		"fechaNacimiento": "1990-05-17",
		"aniosExperiencia": "7",
		"tarifaConsulta": 150,
		"activo": false,
		"horarioAtencion": "{\"lunes\":\"9-13\"}"
	}`)
	res := p.Apply(&user)

	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skipped fields %+v", res.Skipped)
	}
	if user.BirthDate == nil || user.BirthDate.Format("2006-01-02") != "1990-05-17" {
		t.Errorf("unexpected birth date %v", user.BirthDate)
	}
	if user.YearsExperience == nil || *user.YearsExperience != 7 {
		t.Errorf("unexpected years of experience %v", user.YearsExperience)
	}
	if user.ConsultationRate == nil || *user.ConsultationRate != 150 {
		t.Errorf("unexpected rate %v", user.ConsultationRate)
	}
	if user.Active {
		t.Error("expected user to be deactivated")
	}
	if user.Name != "Lucía" {
		t.Errorf("expected name to be untouched, got %q", user.Name)
	}
}

func TestClinicalNotePatchRefusesBlankContent(t *testing.T) {
	note := models.ClinicalNote{Content: "original"}
	p := decodePatch[ClinicalNotePatch](t, `{"contenido":"   ","requiereSeguimiento":"true","proximaRevision":"2025-06-01T10:00:00"}`)
	res := p.Apply(&note)

	if note.Content != "original" {
		t.Errorf("expected content to be kept, got %q", note.Content)
	}
	if !note.RequiresFollowUp || note.NextReviewAt == nil {
		t.Errorf("expected follow-up fields to apply, got %+v", note)
	}
	if len(res.Skipped) != 1 || !errors.Is(res.Skipped[0].Err, ErrBlankContent) {
		t.Errorf("expected one blank-content skip, got %+v", res.Skipped)
	}
}

func TestRequireCollectsFailures(t *testing.T) {
	var body struct {
		PatientID Field[uint]                 `json:"pacienteId"`
		Method    Field[models.PaymentMethod] `json:"metodoPago"`
		Amount    Field[float64]              `json:"monto"`
	}
	if err := json.Unmarshal([]byte(`{"pacienteId":"12","metodoPago":"CHEQUE"}`), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var verr ValidationError
	id := Require(&verr, "pacienteId", body.PatientID)
	Require(&verr, "metodoPago", body.Method)
	Require(&verr, "monto", body.Amount)

	if id != 12 {
		t.Errorf("expected id 12, got %d", id)
	}
	err := verr.Err()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.Is(err, ErrMissing) {
		t.Errorf("expected ErrMissing in %v", err)
	}
	if !errors.Is(err, models.ErrInvalidEnum) {
		t.Errorf("expected ErrInvalidEnum in %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 failures, got %d", len(verr.Fields))
	}
}

func TestSetAndOptional(t *testing.T) {
	f := Set(models.StatusCancelled)
	v, ok := Optional(f)
	if !ok || v != models.StatusCancelled {
		t.Errorf("expected CANCELADA, got %q ok=%v", v, ok)
	}

	var absent Field[string]
	if _, ok := Optional(absent); ok {
		t.Error("expected absent field to be reported missing")
	}
}
