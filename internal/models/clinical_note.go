package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ClinicalNote is free-text clinical documentation written by a
// psychologist, optionally tied to one appointment.
type ClinicalNote struct {
	BaseModel
	AppointmentID  *uint     `gorm:"index" json:"appointmentId"` // nil for notes outside a session
	PatientID      uint      `gorm:"not null;index" json:"pacienteId"`
	PsychologistID uint      `gorm:"not null;index" json:"psicologoId"`
	WrittenAt      time.Time `gorm:"not null;index" json:"fechaCreacion"`
	Type           NoteType  `gorm:"size:30;not null" json:"tipoNota"`
	Content        string    `gorm:"type:text;not null" json:"contenido"`

	GeneralObservations string             `gorm:"type:text" json:"observacionesGenerales,omitempty"`
	TreatmentPlan       string             `gorm:"type:text" json:"planTratamiento,omitempty"`
	PatientTasks        string             `gorm:"type:text" json:"tareasPaciente,omitempty"`
	EmotionalState      string             `gorm:"size:50" json:"estadoEmocional,omitempty"`
	Functionality       FunctionalityLevel `gorm:"size:10" json:"nivelFuncionalidad,omitempty"`
	SessionNumber       *int               `json:"sesionNumero,omitempty"`
	RequiresFollowUp    bool               `gorm:"not null;index" json:"requiereSeguimiento"`
	NextReviewAt        *time.Time         `json:"proximaRevision,omitempty"`

	PatientName      string   `gorm:"size:150" json:"nombrePaciente"`
	PsychologistName string   `gorm:"size:150" json:"nombrePsicologo"`
	SessionModality  Modality `gorm:"size:20" json:"modalidadSesion,omitempty"`
}

// BeforeCreate stamps the writing time.
func (n *ClinicalNote) BeforeCreate(tx *gorm.DB) error {
	if n.WrittenAt.IsZero() {
		n.WrittenAt = time.Now()
	}
	return nil
}

// NoteReference is the marker stored in an appointment's notes once a
// clinical note has been written for it.
func NoteReference(noteID uint) string {
	return fmt.Sprintf("Ver nota clínica detallada ID: %d", noteID)
}
