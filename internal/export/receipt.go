package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"consultorio-server/internal/models"
)

// ClinicName is printed at the top of every receipt.
const ClinicName = "Consultorio Psicológico"

// WriteReceipt renders a one-page PDF receipt for a payment.
func WriteReceipt(w io.Writer, p *models.Payment) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Comprobante "+p.ReceiptNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(ClinicName))
	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, tr("Comprobante de pago "+p.ReceiptNumber))
	pdf.Ln(12)

	concept := p.Concept
	if concept == "" {
		concept = models.DefaultPaymentConcept
	}

	pdf.SetFont("Arial", "", 12)
	lines := [][2]string{
		{"Paciente", p.PatientName},
		{"Psicólogo", p.PsychologistName},
		{"Concepto", concept},
		{"Cita", fmt.Sprintf("#%d", p.AppointmentID)},
		{"Fecha", p.PaidAt.Format(timeLayout)},
		{"Método de pago", string(p.Method)},
		{"Transacción", p.TransactionNumber},
		{"Estado", string(p.Status)},
	}
	for _, l := range lines {
		pdf.CellFormat(50, 8, tr(l[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(l[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(50, 10, "Monto:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("S/ %.2f", p.Amount), "T", 1, "L", false, 0, "")

	if p.Observations != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, tr(p.Observations), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return nil
}
