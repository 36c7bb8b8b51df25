package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/logger"
	"sentinel/internal/middleware"
	"sentinel/internal/models"
)

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// getActor extracts the authenticated actor from the Gin context.
// Returns ErrUnauthorized if not present.
func getActor(c *gin.Context) (authz.Actor, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return authz.Actor{}, apperrors.ErrUnauthorized
	}
	role, exists := c.Get(middleware.ContextRole)
	if !exists {
		return authz.Actor{}, apperrors.ErrUnauthorized
	}
	return authz.Actor{ID: userID.(string), Role: models.Role(role.(string))}, nil
}

// requestMeta captures the client details stamped onto audit entries.
func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// parseDate parses an optional YYYY-MM-DD value. An empty string yields nil.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date: "+value)
	}
	return &t, nil
}

// parseTimestamp parses an RFC 3339 timestamp.
func parseTimestamp(value string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid timestamp: "+value)
	}
	return &t, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
