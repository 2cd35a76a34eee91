// Package export renders clinic data as downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"consultorio-server/internal/models"
	"consultorio-server/internal/reports"
)

// Sheet names of the exported workbook.
const (
	SummarySheet      = "Resumen"
	AppointmentsSheet = "Citas"
	PaymentsSheet     = "Pagos"
)

const timeLayout = "2006-01-02 15:04"

var (
	appointmentHeaders = []interface{}{"ID", "Fecha", "Paciente", "Psicólogo", "Estado", "Modalidad", "Precio", "Pagado"}
	paymentHeaders     = []interface{}{"ID", "Cita", "Fecha", "Paciente", "Psicólogo", "Monto", "Método", "Estado", "Transacción", "Comprobante"}
)

// WriteWorkbook writes an xlsx workbook with the summary, appointments and
// payments to w.
func WriteWorkbook(w io.Writer, summary reports.Summary, appointments []models.Appointment, payments []models.Payment) error {
	file := excelize.NewFile()
	file.NewSheet(SummarySheet)
	file.NewSheet(AppointmentsSheet)
	file.NewSheet(PaymentsSheet)
	file.DeleteSheet("Sheet1")

	writeSummary(file, summary)

	file.SetSheetRow(AppointmentsSheet, "A1", &appointmentHeaders)
	for i := range appointments {
		appendAppointment(file, i+2, &appointments[i])
	}

	file.SetSheetRow(PaymentsSheet, "A1", &paymentHeaders)
	for i := range payments {
		appendPayment(file, i+2, &payments[i])
	}

	file.SetActiveSheet(file.GetSheetIndex(SummarySheet))
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(file *excelize.File, s reports.Summary) {
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Total usuarios", s.TotalUsers},
		{"Psicólogos", s.TotalPsychologists},
		{"Pacientes", s.TotalPatients},
		{"Administradores", s.TotalAdmins},
		{"Total citas", s.TotalAppointments},
		{"Citas pendientes", s.PendingAppointments},
		{"Citas completadas", s.CompletedAppointments},
		{"Citas canceladas", s.CancelledAppointments},
		{"Citas pagadas", s.PaidAppointments},
		{"Ingreso total", s.Revenue},
		{"Ingresos pendientes", s.PendingRevenue},
	}
	for i := range rows {
		file.SetSheetRow(SummarySheet, fmt.Sprintf("A%d", i+1), &rows[i])
	}
}

func appendAppointment(file *excelize.File, row int, a *models.Appointment) {
	values := []interface{}{
		a.ID,
		a.ScheduledAt.Format(timeLayout),
		a.PatientName,
		a.PsychologistName,
		string(a.Status),
		string(a.Modality),
		a.PriceOrZero(),
		yesNo(a.Paid),
	}
	file.SetSheetRow(AppointmentsSheet, fmt.Sprintf("A%d", row), &values)
}

func appendPayment(file *excelize.File, row int, p *models.Payment) {
	values := []interface{}{
		p.ID,
		p.AppointmentID,
		p.PaidAt.Format(timeLayout),
		p.PatientName,
		p.PsychologistName,
		p.Amount,
		string(p.Method),
		string(p.Status),
		p.TransactionNumber,
		p.ReceiptNumber,
	}
	file.SetSheetRow(PaymentsSheet, fmt.Sprintf("A%d", row), &values)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
