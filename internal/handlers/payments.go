package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consultorio-server/internal/consistency"
	"consultorio-server/internal/export"
	"consultorio-server/internal/logging"
	"consultorio-server/internal/models"
	"consultorio-server/internal/patch"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// PaymentHandler handles payment related requests.
type PaymentHandler struct {
	Store *store.Store
	Sync  *consistency.Synchronizer
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(s *store.Store, sync *consistency.Synchronizer) *PaymentHandler {
	return &PaymentHandler{Store: s, Sync: sync}
}

// CreatePaymentRequest represents the request body for recording a payment.
// estado defaults to COMPLETADO.
type CreatePaymentRequest struct {
	AppointmentID    patch.Field[uint]                 `json:"appointmentId"`
	PatientID        patch.Field[uint]                 `json:"pacienteId"`
	PsychologistID   patch.Field[uint]                 `json:"psicologoId"`
	Amount           patch.Field[float64]              `json:"monto"`
	Method           patch.Field[models.PaymentMethod] `json:"metodoPago"`
	PatientName      patch.Field[string]               `json:"nombrePaciente"`
	PsychologistName patch.Field[string]               `json:"nombrePsicologo"`
	Concept          patch.Field[string]               `json:"conceptoPago"`
	patch.PaymentPatch
}

// CreatePayment records a payment and, when it is COMPLETADO, marks its
// appointment as paid.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var verr patch.ValidationError
	now := time.Now()
	payment := models.Payment{
		AppointmentID:     patch.Require(&verr, "appointmentId", req.AppointmentID),
		PatientID:         patch.Require(&verr, "pacienteId", req.PatientID),
		PsychologistID:    patch.Require(&verr, "psicologoId", req.PsychologistID),
		Amount:            patch.Require(&verr, "monto", req.Amount),
		Method:            patch.Require(&verr, "metodoPago", req.Method),
		Status:            models.PaymentCompleted,
		PaidAt:            now,
		TransactionNumber: fmt.Sprintf("TXN-%d", now.UnixMilli()),
		ReceiptNumber:     newReceiptNumber(),
		Concept:           models.DefaultPaymentConcept,
	}
	if err := verr.Err(); err != nil {
		utils.BadRequest(c, err)
		return
	}

	if concept, ok := patch.Optional(req.Concept); ok && strings.TrimSpace(concept) != "" {
		payment.Concept = concept
	}
	res := req.PaymentPatch.Apply(&payment)

	ctx := c.Request.Context()
	payment.PatientName = nameOrLookup(req.PatientName, func() string { return userName(ctx, h.Store, payment.PatientID) })
	payment.PsychologistName = nameOrLookup(req.PsychologistName, func() string { return userName(ctx, h.Store, payment.PsychologistID) })

	if err := h.Store.Payments.Save(ctx, &payment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	res.Log(logging.FromContext(c), "payment", payment.ID)
	logSyncFailure(c, h.Sync.PaymentRecorded(ctx, &payment), "payment", payment.ID)

	utils.OK(c, payment)
}

// GetPayments lists every payment.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.Store.Payments.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, payments)
}

// GetPatientPayments lists a patient's payments.
func (h *PaymentHandler) GetPatientPayments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	payments, err := h.Store.PaymentsByPatient(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, payments)
}

// GetPsychologistPayments lists the payments received by a psychologist.
func (h *PaymentHandler) GetPsychologistPayments(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	payments, err := h.Store.PaymentsByPsychologist(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, payments)
}

// GetPendingPayments lists PENDIENTE payments, oldest first.
func (h *PaymentHandler) GetPendingPayments(c *gin.Context) {
	payments, err := h.Store.PendingPayments(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, payments)
}

// UpdatePayment merges the sent attributes onto a payment. A payment that
// becomes COMPLETADO marks its appointment as paid.
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req patch.PaymentPatch
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	payment, err := h.Store.Payments.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	previous := payment.Status
	res := req.Apply(payment)
	res.Log(logging.FromContext(c), "payment", payment.ID)

	if err := h.Store.Payments.Save(ctx, payment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	if previous != models.PaymentCompleted && payment.Status == models.PaymentCompleted {
		logSyncFailure(c, h.Sync.PaymentRecorded(ctx, payment), "payment", payment.ID)
	}

	utils.OK(c, payment)
}

// GetReceipt renders a payment's PDF receipt. A payment without a receipt
// number is given one on first download.
func (h *PaymentHandler) GetReceipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	payment, err := h.Store.Payments.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}
	if payment.ReceiptNumber == "" {
		payment.ReceiptNumber = fmt.Sprintf("REC-%06d", payment.ID)
		if err := h.Store.Payments.Save(ctx, payment); err != nil {
			utils.InternalServerError(c, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := export.WriteReceipt(&buf, payment); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payment.ReceiptNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func newReceiptNumber() string {
	return "REC-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// nameOrLookup prefers a non-blank name sent by the client.
func nameOrLookup(sent patch.Field[string], lookup func() string) string {
	if name, ok := patch.Optional(sent); ok && strings.TrimSpace(name) != "" {
		return name
	}
	return lookup()
}
