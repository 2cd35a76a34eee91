package patch

import (
	"time"

	"consultorio-server/internal/models"
)

// AppointmentPatch holds the appointment attributes a client may change.
type AppointmentPatch struct {
	Status      Field[models.AppointmentStatus] `json:"estado"`
	Notes       Field[string]                   `json:"notas"`
	Paid        Field[bool]                     `json:"pagado"`
	ScheduledAt Field[time.Time]                `json:"fechaHora"`
	Modality    Field[models.Modality]          `json:"modalidad"`
	Price       Field[float64]                  `json:"precio"`
}

// Apply merges p onto a.
func (p *AppointmentPatch) Apply(a *models.Appointment) Result {
	var r Result
	assign(&r, "estado", p.Status, func(v models.AppointmentStatus) { a.Status = v })
	assign(&r, "notas", p.Notes, func(v string) { a.Notes = v })
	assign(&r, "pagado", p.Paid, func(v bool) { a.Paid = v })
	assign(&r, "fechaHora", p.ScheduledAt, func(v time.Time) { a.ScheduledAt = v })
	assign(&r, "modalidad", p.Modality, func(v models.Modality) { a.Modality = v })
	assign(&r, "precio", p.Price, func(v float64) { a.Price = &v })
	return r
}
