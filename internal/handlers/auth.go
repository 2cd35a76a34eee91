package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/config"
	"consultorio-server/internal/middleware"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// InvalidCredentialsMessage is the error body returned by a failed login.
const InvalidCredentialsMessage = "Credenciales inválidas"

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Store *store.Store
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s *store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Store: s, Cfg: cfg}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials, stamps the last login time and returns the
// user record. A session token is issued as a cookie and a header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectLogin(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.UserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.rejectLogin(c, err)
		} else {
			utils.InternalServerError(c, err)
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		h.rejectLogin(c, errors.New("password mismatch"))
		return
	}
	if !user.Active {
		h.rejectLogin(c, errors.New("account disabled"))
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := h.Store.Users.Save(ctx, user); err != nil {
		utils.InternalServerError(c, err)
		return
	}

	ttl := time.Duration(h.Cfg.JWTExpirationMinutes) * time.Minute
	token, err := utils.GenerateSessionToken(user, h.Cfg.JWTSecret, ttl)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", !h.Cfg.IsDevelopment(), true)
	c.Header(middleware.SessionHeader, token)

	utils.OK(c, user)
}

func (h *AuthHandler) rejectLogin(c *gin.Context, reason error) {
	_ = c.Error(reason)
	utils.ErrorMessage(c, http.StatusBadRequest, InvalidCredentialsMessage)
}

// GetProfile returns the authenticated user's record.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, errors.New("user not authenticated"))
		return
	}

	user, err := h.Store.Users.Get(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.OK(c, user)
}
