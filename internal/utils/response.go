package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes data as the JSON response body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error ends the request with statusCode and an empty body. The reason is
// attached to the context so the request logger records it.
func Error(c *gin.Context, statusCode int, reason error) {
	if reason != nil {
		_ = c.Error(reason)
	}
	c.AbortWithStatus(statusCode)
}

// ErrorMessage ends the request with statusCode and an {"error": message} body.
func ErrorMessage(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// BadRequest sends an empty 400 Bad Request response.
func BadRequest(c *gin.Context, reason error) {
	Error(c, http.StatusBadRequest, reason)
}

// Unauthorized sends an empty 401 Unauthorized response.
func Unauthorized(c *gin.Context, reason error) {
	Error(c, http.StatusUnauthorized, reason)
}

// NotFound sends an empty 404 Not Found response.
func NotFound(c *gin.Context, reason error) {
	Error(c, http.StatusNotFound, reason)
}

// InternalServerError sends an empty 500 Internal Server Error response.
func InternalServerError(c *gin.Context, reason error) {
	Error(c, http.StatusInternalServerError, reason)
}
