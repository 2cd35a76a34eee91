package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/consistency"
	"consultorio-server/internal/logging"
	"consultorio-server/internal/models"
	"consultorio-server/internal/patch"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// ClinicalNoteHandler handles clinical note related requests.
type ClinicalNoteHandler struct {
	Store *store.Store
	Sync  *consistency.Synchronizer
}

// NewClinicalNoteHandler creates a new ClinicalNoteHandler.
func NewClinicalNoteHandler(s *store.Store, sync *consistency.Synchronizer) *ClinicalNoteHandler {
	return &ClinicalNoteHandler{Store: s, Sync: sync}
}

// CreateClinicalNoteRequest represents the request body for writing a
// clinical note. appointmentId may be omitted or null for notes written
// outside a session.
type CreateClinicalNoteRequest struct {
	AppointmentID    patch.Field[uint]            `json:"appointmentId"`
	PatientID        patch.Field[uint]            `json:"pacienteId"`
	PsychologistID   patch.Field[uint]            `json:"psicologoId"`
	Type             patch.Field[models.NoteType] `json:"tipoNota"`
	Content          patch.Field[string]          `json:"contenido"`
	PatientName      patch.Field[string]          `json:"nombrePaciente"`
	PsychologistName patch.Field[string]          `json:"nombrePsicologo"`
	SessionModality  patch.Field[models.Modality] `json:"modalidadSesion"`
	patch.ClinicalNotePatch
}

// CreateClinicalNote stores a note and points its appointment, if any, at it.
func (h *ClinicalNoteHandler) CreateClinicalNote(c *gin.Context) {
	var req CreateClinicalNoteRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var verr patch.ValidationError
	note := models.ClinicalNote{
		PatientID:      patch.Require(&verr, "pacienteId", req.PatientID),
		PsychologistID: patch.Require(&verr, "psicologoId", req.PsychologistID),
		Type:           patch.Require(&verr, "tipoNota", req.Type),
		Content:        patch.Require(&verr, "contenido", req.Content),
	}
	if req.Content.Present() && strings.TrimSpace(note.Content) == "" {
		verr.Add("contenido", patch.ErrBlankContent)
	}
	if req.AppointmentID.Present() && !req.AppointmentID.Null() {
		appointmentID := patch.Require(&verr, "appointmentId", req.AppointmentID)
		note.AppointmentID = &appointmentID
	}
	if err := verr.Err(); err != nil {
		utils.BadRequest(c, err)
		return
	}

	res := req.ClinicalNotePatch.Apply(&note)

	ctx := c.Request.Context()
	note.PatientName = nameOrLookup(req.PatientName, func() string { return userName(ctx, h.Store, note.PatientID) })
	note.PsychologistName = nameOrLookup(req.PsychologistName, func() string { return userName(ctx, h.Store, note.PsychologistID) })
	if modality, ok := patch.Optional(req.SessionModality); ok {
		note.SessionModality = modality
	} else if note.AppointmentID != nil {
		if appointment, err := h.Store.Appointments.Get(ctx, *note.AppointmentID); err == nil {
			note.SessionModality = appointment.Modality
		}
	}

	if err := h.Store.ClinicalNotes.Save(ctx, &note); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	res.Log(logging.FromContext(c), "clinical_note", note.ID)
	logSyncFailure(c, h.Sync.ClinicalNoteRecorded(ctx, &note), "clinical_note", note.ID)

	utils.OK(c, note)
}

// GetClinicalNotes lists every clinical note.
func (h *ClinicalNoteHandler) GetClinicalNotes(c *gin.Context) {
	notes, err := h.Store.ClinicalNotes.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, notes)
}

// GetPatientNotes lists a patient's notes, newest first.
func (h *ClinicalNoteHandler) GetPatientNotes(c *gin.Context) {
	h.listByID(c, h.Store.NotesByPatient)
}

// GetPsychologistNotes lists a psychologist's notes, newest first.
func (h *ClinicalNoteHandler) GetPsychologistNotes(c *gin.Context) {
	h.listByID(c, h.Store.NotesByPsychologist)
}

// GetAppointmentNotes lists the notes written for one appointment.
func (h *ClinicalNoteHandler) GetAppointmentNotes(c *gin.Context) {
	h.listByID(c, h.Store.NotesByAppointment)
}

// GetFollowUps lists notes that require follow-up, soonest review first.
func (h *ClinicalNoteHandler) GetFollowUps(c *gin.Context) {
	notes, err := h.Store.NotesRequiringFollowUp(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, notes)
}

func (h *ClinicalNoteHandler) listByID(c *gin.Context, find func(ctx context.Context, id uint) ([]models.ClinicalNote, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	notes, err := find(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, notes)
}

// GetClinicalNoteByID fetches one note.
func (h *ClinicalNoteHandler) GetClinicalNoteByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	note, err := h.Store.ClinicalNotes.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.OK(c, note)
}

// UpdateClinicalNote merges the sent attributes onto a note. The linked
// appointment is not touched.
func (h *ClinicalNoteHandler) UpdateClinicalNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req patch.ClinicalNotePatch
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	note, err := h.Store.ClinicalNotes.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	res := req.Apply(note)
	res.Log(logging.FromContext(c), "clinical_note", note.ID)

	if err := h.Store.ClinicalNotes.Save(ctx, note); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, note)
}

// DeleteClinicalNote removes a note. The appointment's back-reference is left
// as it was.
func (h *ClinicalNoteHandler) DeleteClinicalNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Store.ClinicalNotes.Delete(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
