package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the clinic: administrators, psychologists
// and patients share one table and are told apart by Role.
type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Email    string `gorm:"size:255;not null" json:"email"`
	Role     Role   `gorm:"size:20;not null;index" json:"role"`
	Name     string `gorm:"size:150;not null" json:"nombre"`

	Phone          string     `gorm:"size:50" json:"telefono,omitempty"`
	DNI            string     `gorm:"size:20" json:"dni,omitempty"`
	BirthDate      *time.Time `json:"fechaNacimiento,omitempty"`
	Address        string     `gorm:"size:255" json:"direccion,omitempty"`
	EmergencyPhone string     `gorm:"size:50" json:"telefonoEmergencia,omitempty"`
	Gender         string     `gorm:"size:30" json:"genero,omitempty"`
	MaritalStatus  string     `gorm:"size:30" json:"estadoCivil,omitempty"`

	// Psychologists only
	Specialty        string   `gorm:"size:150" json:"especialidad,omitempty"`
	LicenseNumber    string   `gorm:"size:50" json:"colegiatura,omitempty"` // CPsP registry
	University       string   `gorm:"size:150" json:"universidad,omitempty"`
	YearsExperience  *int     `json:"aniosExperiencia,omitempty"`
	Description      string   `gorm:"type:text" json:"descripcion,omitempty"`
	ConsultationRate *float64 `json:"tarifaConsulta,omitempty"`

	ProfilePhoto         string     `gorm:"size:255" json:"fotoPerfil,omitempty"`
	Active               bool       `gorm:"not null" json:"activo"`
	RegisteredAt         time.Time  `json:"fechaCreacion"`
	LastLoginAt          *time.Time `json:"ultimaConexion,omitempty"`
	NotificationSettings string     `gorm:"type:text" json:"configuracionNotificaciones,omitempty"` // JSON document
	OfficeHours          string     `gorm:"type:text" json:"horarioAtencion,omitempty"`             // JSON document
}

// BeforeCreate stamps the registration time.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now()
	}
	return nil
}

// CheckPassword compares the supplied credential with the stored one.
func (u *User) CheckPassword(password string) bool {
	return u.Password == password
}
