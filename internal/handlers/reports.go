package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/export"
	"consultorio-server/internal/reports"
	"consultorio-server/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves read-only statistics.
type ReportHandler struct {
	Reports *reports.Service
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(r *reports.Service) *ReportHandler {
	return &ReportHandler{Reports: r}
}

// GetSummary returns the clinic-wide overview.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.Reports.Summary(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, summary)
}

// GetDetailed returns the overview including payments and clinical notes.
func (h *ReportHandler) GetDetailed(c *gin.Context) {
	detailed, err := h.Reports.Detailed(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, detailed)
}

// GetPsychologistReport reports on one psychologist's appointments.
func (h *ReportHandler) GetPsychologistReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	report, err := h.Reports.Psychologist(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, report)
}

// GetPatientReport reports on one patient's appointments.
func (h *ReportHandler) GetPatientReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	report, err := h.Reports.Patient(c.Request.Context(), id)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, report)
}

// GetPatientHistory returns everything recorded for a patient.
func (h *ReportHandler) GetPatientHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	history, err := h.Reports.History(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.OK(c, history)
}

// ExportWorkbook downloads the summary, appointments and payments as an xlsx
// workbook. The appointment sheet honours the search parameters.
func (h *ReportHandler) ExportWorkbook(c *gin.Context) {
	filter, err := reports.ParseFilter(c.Request.URL.Query())
	if err != nil {
		utils.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	snap, err := h.Reports.Snapshot(ctx)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	appointments, err := h.Reports.Search(ctx, filter)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, reports.Summarize(snap), appointments, snap.Payments); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="reporte-consultorio.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
