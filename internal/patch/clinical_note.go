package patch

import (
	"errors"
	"strings"
	"time"

	"consultorio-server/internal/models"
)

// ErrBlankContent is reported when a note's content would become empty.
var ErrBlankContent = errors.New("content must not be blank")

// ClinicalNotePatch holds the clinical note attributes a client may change.
type ClinicalNotePatch struct {
	Content             Field[string]                    `json:"contenido"`
	GeneralObservations Field[string]                    `json:"observacionesGenerales"`
	TreatmentPlan       Field[string]                    `json:"planTratamiento"`
	PatientTasks        Field[string]                    `json:"tareasPaciente"`
	EmotionalState      Field[string]                    `json:"estadoEmocional"`
	Functionality       Field[models.FunctionalityLevel] `json:"nivelFuncionalidad"`
	SessionNumber       Field[int]                       `json:"sesionNumero"`
	RequiresFollowUp    Field[bool]                      `json:"requiereSeguimiento"`
	NextReviewAt        Field[time.Time]                 `json:"proximaRevision"`
	Type                Field[models.NoteType]           `json:"tipoNota"`
}

// Apply merges p onto n. Blank content is refused.
func (p *ClinicalNotePatch) Apply(n *models.ClinicalNote) Result {
	var r Result
	if p.Content.Present() {
		if v, err := p.Content.Value(); err == nil && strings.TrimSpace(v) == "" {
			r.Skipped = append(r.Skipped, Skipped{Field: "contenido", Err: ErrBlankContent})
		} else {
			assign(&r, "contenido", p.Content, func(v string) { n.Content = v })
		}
	}
	assign(&r, "observacionesGenerales", p.GeneralObservations, func(v string) { n.GeneralObservations = v })
	assign(&r, "planTratamiento", p.TreatmentPlan, func(v string) { n.TreatmentPlan = v })
	assign(&r, "tareasPaciente", p.PatientTasks, func(v string) { n.PatientTasks = v })
	assign(&r, "estadoEmocional", p.EmotionalState, func(v string) { n.EmotionalState = v })
	assign(&r, "nivelFuncionalidad", p.Functionality, func(v models.FunctionalityLevel) { n.Functionality = v })
	assign(&r, "sesionNumero", p.SessionNumber, func(v int) { n.SessionNumber = &v })
	assign(&r, "requiereSeguimiento", p.RequiresFollowUp, func(v bool) { n.RequiresFollowUp = v })
	assign(&r, "proximaRevision", p.NextReviewAt, func(v time.Time) { n.NextReviewAt = &v })
	assign(&r, "tipoNota", p.Type, func(v models.NoteType) { n.Type = v })
	return r
}
