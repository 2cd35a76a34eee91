package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/logging"
	"consultorio-server/internal/models"
	"consultorio-server/internal/patch"
	"consultorio-server/internal/reports"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Store   *store.Store
	Reports *reports.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(s *store.Store, r *reports.Service) *AppointmentHandler {
	return &AppointmentHandler{Store: s, Reports: r}
}

// CreateAppointmentRequest represents the request body for creating an
// appointment. Values are converted leniently: ids and prices may arrive as
// strings.
type CreateAppointmentRequest struct {
	PatientID      patch.Field[uint]            `json:"pacienteId"`
	PsychologistID patch.Field[uint]            `json:"psicologoId"`
	ScheduledAt    patch.Field[time.Time]       `json:"fechaHora"`
	Modality       patch.Field[models.Modality] `json:"modalidad"`
	Price          patch.Field[float64]         `json:"precio"`
	Notes          patch.Field[string]          `json:"notas"`
}

// CreateAppointment books a new, unpaid RESERVADA appointment. Participant
// names are copied from their user records.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var verr patch.ValidationError
	appointment := models.Appointment{
		PatientID:      patch.Require(&verr, "pacienteId", req.PatientID),
		PsychologistID: patch.Require(&verr, "psicologoId", req.PsychologistID),
		ScheduledAt:    patch.Require(&verr, "fechaHora", req.ScheduledAt),
		Modality:       patch.Require(&verr, "modalidad", req.Modality),
		Status:         models.StatusReserved,
		Paid:           false,
	}
	price := patch.Require(&verr, "precio", req.Price)
	appointment.Price = &price
	if err := verr.Err(); err != nil {
		utils.BadRequest(c, err)
		return
	}
	if notes, ok := patch.Optional(req.Notes); ok {
		appointment.Notes = notes
	}

	ctx := c.Request.Context()
	appointment.PatientName = userName(ctx, h.Store, appointment.PatientID)
	appointment.PsychologistName = userName(ctx, h.Store, appointment.PsychologistID)

	if err := h.Store.Appointments.Save(ctx, &appointment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointment)
}

// GetAppointments lists every appointment.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	appointments, err := h.Store.Appointments.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointments)
}

// GetAppointmentByID fetches one appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.Store.Appointments.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.OK(c, appointment)
}

// GetPatientAppointments lists a patient's appointments.
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	appointments, err := h.Store.AppointmentsByPatient(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointments)
}

// GetPsychologistAppointments lists a psychologist's appointments.
func (h *AppointmentHandler) GetPsychologistAppointments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	appointments, err := h.Store.AppointmentsByPsychologist(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointments)
}

// UpdateAppointment merges the sent attributes onto an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req patch.AppointmentPatch
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	appointment, err := h.Store.Appointments.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	res := req.Apply(appointment)
	res.Log(logging.FromContext(c), "appointment", appointment.ID)

	if err := h.Store.Appointments.Save(ctx, appointment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointment)
}

// DeleteAppointment removes an appointment. Its payments and notes are kept.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Store.Appointments.Delete(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// PayAppointment marks an appointment as paid without recording a payment.
func (h *AppointmentHandler) PayAppointment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	appointment, err := h.Store.Appointments.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	appointment.Paid = true
	if err := h.Store.Appointments.Save(ctx, appointment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointment)
}

// SearchAppointments filters appointments by estado, modalidad, psicologoId
// and pacienteId. Only the parameters present are applied.
func (h *AppointmentHandler) SearchAppointments(c *gin.Context) {
	filter, err := reports.ParseFilter(c.Request.URL.Query())
	if err != nil {
		utils.BadRequest(c, err)
		return
	}

	appointments, err := h.Reports.Search(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, appointments)
}
