package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// SystemHandler answers operational checks.
type SystemHandler struct {
	Store         *store.Store
	AdminUsername string
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(s *store.Store, adminUsername string) *SystemHandler {
	return &SystemHandler{Store: s, AdminUsername: adminUsername}
}

// TestData reports the size of every table and whether the administrator
// account exists.
func (h *SystemHandler) TestData(c *gin.Context) {
	ctx := c.Request.Context()
	counts := gin.H{}
	for name, count := range map[string]func(ctx context.Context) (int64, error){
		"users":         h.Store.Users.Count,
		"appointments":  h.Store.Appointments.Count,
		"payments":      h.Store.Payments.Count,
		"clinicalNotes": h.Store.ClinicalNotes.Count,
	} {
		n, err := count(ctx)
		if err != nil {
			utils.InternalServerError(c, err)
			return
		}
		counts[name] = n
	}

	_, err := h.Store.UserByUsername(ctx, h.AdminUsername)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		utils.InternalServerError(c, err)
		return
	}
	counts["admin_exists"] = err == nil

	utils.OK(c, counts)
}

// Health reports liveness.
func (h *SystemHandler) Health(c *gin.Context) {
	utils.OK(c, gin.H{"status": "UP"})
}
