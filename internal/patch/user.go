package patch

import "consultorio-server/internal/models"

// UserPatch holds the user attributes a client may change.
type UserPatch struct {
	Name                 Field[string]  `json:"nombre"`
	Email                Field[string]  `json:"email"`
	Phone                Field[string]  `json:"telefono"`
	Address              Field[string]  `json:"direccion"`
	DNI                  Field[string]  `json:"dni"`
	BirthDate            Field[Day]     `json:"fechaNacimiento"`
	Gender               Field[string]  `json:"genero"`
	MaritalStatus        Field[string]  `json:"estadoCivil"`
	EmergencyPhone       Field[string]  `json:"telefonoEmergencia"`
	Specialty            Field[string]  `json:"especialidad"`
	LicenseNumber        Field[string]  `json:"colegiatura"`
	University           Field[string]  `json:"universidad"`
	YearsExperience      Field[int]     `json:"aniosExperiencia"`
	Description          Field[string]  `json:"descripcion"`
	ConsultationRate     Field[float64] `json:"tarifaConsulta"`
	OfficeHours          Field[string]  `json:"horarioAtencion"`
	NotificationSettings Field[string]  `json:"configuracionNotificaciones"`
	Active               Field[bool]    `json:"activo"`
}

// Apply merges p onto u.
func (p *UserPatch) Apply(u *models.User) Result {
	var r Result
	assign(&r, "nombre", p.Name, func(v string) { u.Name = v })
	assign(&r, "email", p.Email, func(v string) { u.Email = v })
	assign(&r, "telefono", p.Phone, func(v string) { u.Phone = v })
	assign(&r, "direccion", p.Address, func(v string) { u.Address = v })
	assign(&r, "dni", p.DNI, func(v string) { u.DNI = v })
	assign(&r, "fechaNacimiento", p.BirthDate, func(v Day) {
		t := v.Time
		u.BirthDate = &t
	})
	assign(&r, "genero", p.Gender, func(v string) { u.Gender = v })
	assign(&r, "estadoCivil", p.MaritalStatus, func(v string) { u.MaritalStatus = v })
	assign(&r, "telefonoEmergencia", p.EmergencyPhone, func(v string) { u.EmergencyPhone = v })
	assign(&r, "especialidad", p.Specialty, func(v string) { u.Specialty = v })
	assign(&r, "colegiatura", p.LicenseNumber, func(v string) { u.LicenseNumber = v })
	assign(&r, "universidad", p.University, func(v string) { u.University = v })
	assign(&r, "aniosExperiencia", p.YearsExperience, func(v int) { u.YearsExperience = &v })
	assign(&r, "descripcion", p.Description, func(v string) { u.Description = v })
	assign(&r, "tarifaConsulta", p.ConsultationRate, func(v float64) { u.ConsultationRate = &v })
	assign(&r, "horarioAtencion", p.OfficeHours, func(v string) { u.OfficeHours = v })
	assign(&r, "configuracionNotificaciones", p.NotificationSettings, func(v string) { u.NotificationSettings = v })
	assign(&r, "activo", p.Active, func(v bool) { u.Active = v })
	return r
}
