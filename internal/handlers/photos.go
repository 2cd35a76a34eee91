package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"consultorio-server/internal/store"
	"consultorio-server/internal/utils"
)

// PhotoHandler stores and serves profile photos.
type PhotoHandler struct {
	Store     *store.Store
	UploadDir string
}

// NewPhotoHandler creates a new PhotoHandler writing under uploadDir.
func NewPhotoHandler(s *store.Store, uploadDir string) *PhotoHandler {
	return &PhotoHandler{Store: s, UploadDir: uploadDir}
}

// UploadPhoto saves the multipart "photo" file and points the user's
// profile photo at it.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.Users.Get(ctx, id)
	if err != nil {
		storeError(c, err)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		utils.BadRequest(c, fmt.Errorf("read photo: %w", err))
		return
	}
	if file.Size == 0 {
		utils.BadRequest(c, errors.New("empty photo"))
		return
	}
	if contentType := file.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		utils.BadRequest(c, fmt.Errorf("unsupported photo type %q", contentType))
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		utils.InternalServerError(c, err)
		return
	}
	filename := fmt.Sprintf("profile_%d_%s%s", id, uuid.NewString(), strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, filename)); err != nil {
		utils.InternalServerError(c, err)
		return
	}

	photoURL := fmt.Sprintf("/api/users/%d/photo/%s", id, filename)
	user.ProfilePhoto = photoURL
	if err := h.Store.Users.Save(ctx, user); err != nil {
		utils.InternalServerError(c, err)
		return
	}

	utils.OK(c, gin.H{"photoUrl": photoURL, "message": "Foto subida exitosamente"})
}

// GetPhoto serves a stored profile photo.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	filename := c.Param("filename")
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		utils.BadRequest(c, fmt.Errorf("invalid photo name %q", filename))
		return
	}

	path := filepath.Join(h.UploadDir, filename)
	if _, err := os.Stat(path); err != nil {
		utils.NotFound(c, err)
		return
	}
	c.File(path)
}
