package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"

	"consultorio-server/internal/models"
	"consultorio-server/internal/reports"
)

func TestWriteWorkbook(t *testing.T) {
	price := 120.0
	appointments := []models.Appointment{{
		BaseModel:        models.BaseModel{ID: 4},
		ScheduledAt:      time.Date(2025, 2, 3, 10, 0, 0, 0, time.Local),
		PatientName:      "Marta",
		PsychologistName: "Dr. Ríos",
		Status:           models.StatusCompleted,
		Modality:         models.ModalityVideo,
		Price:            &price,
		Paid:             true,
	}}
	payments := []models.Payment{{
		BaseModel:         models.BaseModel{ID: 9},
		AppointmentID:     4,
		Amount:            120,
		Method:            models.MethodYape,
		Status:            models.PaymentCompleted,
		PaidAt:            time.Date(2025, 2, 3, 11, 0, 0, 0, time.Local),
		TransactionNumber: "TXN-1",
	}}
	summary := reports.Summary{TotalAppointments: 1, PaidAppointments: 1, Revenue: 120}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, summary, appointments, payments); err != nil {
		t.Fatalf("WriteWorkbook failed: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{SummarySheet, "A1", "Indicador"},
		{SummarySheet, "B11", "120"},
		{AppointmentsSheet, "B1", "Fecha"},
		{AppointmentsSheet, "A2", "4"},
		{AppointmentsSheet, "C2", "Marta"},
		{AppointmentsSheet, "E2", "COMPLETADA"},
		{AppointmentsSheet, "H2", "Sí"},
		{PaymentsSheet, "G2", "YAPE"},
		{PaymentsSheet, "I2", "TXN-1"},
	}
	for _, c := range checks {
		if got := file.GetCellValue(c.sheet, c.cell); got != c.want {
			t.Errorf("%s!%s: expected %q, got %q", c.sheet, c.cell, c.want, got)
		}
	}
}

func TestWriteReceipt(t *testing.T) {
	payment := &models.Payment{
		BaseModel:        models.BaseModel{ID: 1},
		AppointmentID:    2,
		Amount:           80,
		Method:           models.MethodCash,
		Status:           models.PaymentCompleted,
		PaidAt:           time.Now(),
		ReceiptNumber:    "REC-1234",
		PatientName:      "José Núñez",
		PsychologistName: "Dra. Peña",
		Observations:     "Pago en recepción",
	}

	var buf bytes.Buffer
	if err := WriteReceipt(&buf, payment); err != nil {
		t.Fatalf("WriteReceipt failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected a PDF document, got %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}
