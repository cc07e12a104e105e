package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterpad/rosterpad/internal/auth"
	"github.com/rosterpad/rosterpad/internal/models"
	"github.com/rosterpad/rosterpad/pkg/logger"
)

// writeError maps domain errors to HTTP statuses so the UI can render
// specific messages instead of a generic failure.
func writeError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMemberNotFound), errors.Is(err, models.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUsernameTaken), errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStorageUnavailable):
		// transient: the caller may retry
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	case errors.Is(err, models.ErrCorruptDocument):
		logger.Errorf("corrupt document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored document is corrupt"})
	default:
		logger.Errorf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
