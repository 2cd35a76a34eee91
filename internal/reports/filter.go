package reports

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"consultorio-server/internal/models"
	"consultorio-server/internal/store"
)

// AppointmentFilter narrows an appointment search. Nil criteria are not
// applied; the rest must all match.
type AppointmentFilter struct {
	Status         *models.AppointmentStatus
	Modality       *models.Modality
	PsychologistID *uint
	PatientID      *uint
}

// ParseFilter reads the search criteria from query parameters. Empty
// parameters are ignored; unknown enum values and malformed ids are errors.
func ParseFilter(values url.Values) (AppointmentFilter, error) {
	var f AppointmentFilter

	if raw := strings.TrimSpace(values.Get("estado")); raw != "" {
		status, err := models.ParseAppointmentStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	if raw := strings.TrimSpace(values.Get("modalidad")); raw != "" {
		modality, err := models.ParseModality(raw)
		if err != nil {
			return f, err
		}
		f.Modality = &modality
	}

	var err error
	if f.PsychologistID, err = parseID(values, "psicologoId"); err != nil {
		return f, err
	}
	if f.PatientID, err = parseID(values, "pacienteId"); err != nil {
		return f, err
	}
	return f, nil
}

func parseID(values url.Values, key string) (*uint, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	id := uint(n)
	return &id, nil
}

// Query translates the filter into store predicates.
func (f AppointmentFilter) Query() store.Query {
	var q store.Query
	if f.Status != nil {
		q = q.And("status", *f.Status)
	}
	if f.Modality != nil {
		q = q.And("modality", *f.Modality)
	}
	if f.PsychologistID != nil {
		q = q.And("psychologist_id", *f.PsychologistID)
	}
	if f.PatientID != nil {
		q = q.And("patient_id", *f.PatientID)
	}
	return q
}
