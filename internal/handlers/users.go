package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consultorio-server/internal/logging"
	"consultorio-server/internal/models"
	"consultorio-server/internal/patch"
	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// UserHandler handles user account requests.
type UserHandler struct {
	Store *store.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{Store: s}
}

// CreateUserRequest represents the request body for creating a user. Every
// other profile attribute is optional and merged like an update.
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Role     models.Role `json:"role" binding:"required"`
	Name     string      `json:"nombre" binding:"required"`
	patch.UserPatch
}

// CreateUser handles creating a new user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
		Name:     req.Name,
		Active:   true,
	}
	res := req.UserPatch.Apply(&user)

	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		storeError(c, err)
		return
	}
	res.Log(logging.FromContext(c), "user", user.ID)

	utils.OK(c, user)
}

// GetUsers handles fetching all users.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.Store.Users.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, users)
}

// GetUserByID handles fetching a single user by ID.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.Store.Users.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	utils.OK(c, user)
}

// UpdateUser merges the sent attributes onto a user. Attributes that cannot
// be converted are skipped; the rest are saved.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req patch.UserPatch
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.Users.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	res := req.Apply(user)
	res.Log(logging.FromContext(c), "user", user.ID)

	if err := h.Store.Users.Save(ctx, user); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, user)
}

// DeleteUser removes a user. Appointments, payments and notes that refer to
// it are left in place.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Store.Users.Delete(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetPsychologists lists every user with the PSICOLOGO role.
func (h *UserHandler) GetPsychologists(c *gin.Context) {
	h.listByRole(c, models.RolePsychologist)
}

// GetPatients lists every user with the PACIENTE role.
func (h *UserHandler) GetPatients(c *gin.Context) {
	h.listByRole(c, models.RolePatient)
}

func (h *UserHandler) listByRole(c *gin.Context, role models.Role) {
	users, err := h.Store.UsersByRole(c.Request.Context(), role)
	if err != nil {
		utils.InternalServerError(c, err)
		return
	}
	utils.OK(c, users)
}
