package models

import (
	"time"
)

// DefaultPaymentConcept is used when a payment is recorded without one.
const DefaultPaymentConcept = "Consulta psicológica"

// Payment is a financial transaction linked to an appointment.
type Payment struct {
	BaseModel
	AppointmentID     uint          `gorm:"not null;index" json:"appointmentId"`
	PatientID         uint          `gorm:"not null;index" json:"pacienteId"`
	PsychologistID    uint          `gorm:"not null;index" json:"psicologoId"`
	Amount            float64       `gorm:"not null" json:"monto"`
	Method            PaymentMethod `gorm:"size:20;not null" json:"metodoPago"`
	Status            PaymentStatus `gorm:"size:20;not null;index" json:"estado"`
	PaidAt            time.Time     `gorm:"not null" json:"fechaPago"`
	TransactionNumber string        `gorm:"size:100" json:"numeroTransaccion,omitempty"`
	ReceiptNumber     string        `gorm:"size:100" json:"numeroComprobante,omitempty"`
	Concept           string        `gorm:"size:255" json:"conceptoPago,omitempty"`
	Observations      string        `gorm:"type:text" json:"observaciones,omitempty"`

	PatientName      string `gorm:"size:150" json:"nombrePaciente"`
	PsychologistName string `gorm:"size:150" json:"nombrePsicologo"`
}
