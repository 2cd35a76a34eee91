package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/logging"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// paramID reads a numeric path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		utils.BadRequest(c, fmt.Errorf("invalid %s %q: %w", name, raw, err))
		return 0, false
	}
	return uint(id), true
}

// storeError answers with the status matching a store failure.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFound(c, err)
	case errors.Is(err, store.ErrDuplicate):
		utils.BadRequest(c, err)
	default:
		utils.InternalServerError(c, err)
	}
}

// userName returns the display name of a user, or "" when the user cannot
// be loaded.
func userName(ctx context.Context, s *store.Store, id uint) string {
	user, err := s.Users.Get(ctx, id)
	if err != nil {
		return ""
	}
	return user.Name
}

// logSyncFailure records a secondary write that did not go through. The
// primary write already succeeded, so the request is not failed.
func logSyncFailure(c *gin.Context, err error, entity string, id uint) {
	if err == nil {
		return
	}
	logging.FromContext(c).Error().
		Err(err).
		Str("entity", entity).
		Uint("id", id).
		Msg("appointment synchronization failed")
}
