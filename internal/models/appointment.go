package models

import (
	"time"
)

// Appointment represents a scheduled session between a patient and a
// psychologist.
type Appointment struct {
	BaseModel
	PatientID      uint              `gorm:"not null;index" json:"pacienteId"`
	PsychologistID uint              `gorm:"not null;index" json:"psicologoId"`
	ScheduledAt    time.Time         `gorm:"not null" json:"fechaHora"`
	Status         AppointmentStatus `gorm:"size:20;not null;index" json:"estado"`
	Modality       Modality          `gorm:"size:20;not null" json:"modalidad"`
	Notes          string            `gorm:"type:text" json:"notas"`
	Price          *float64          `json:"precio"`
	Paid           bool              `gorm:"not null;index" json:"pagado"`

	// Captured at creation time and not kept in sync with the users table.
	PatientName      string `gorm:"size:150" json:"nombrePaciente"`
	PsychologistName string `gorm:"size:150" json:"nombrePsicologo"`
}

// PriceOrZero returns the session price, treating a missing one as zero.
func (a *Appointment) PriceOrZero() float64 {
	if a.Price == nil {
		return 0
	}
	return *a.Price
}
