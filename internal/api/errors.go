package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/github-release-tracker/internal/errors"
)

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsInvalidInput(err):
		return http.StatusBadRequest
	case apperrors.IsConflict(err):
		return http.StatusConflict
	case apperrors.IsSyncFailed(err):
		return http.StatusBadGateway
	}

	if remoteErr, ok := apperrors.AsRemote(err); ok {
		if remoteErr.IsNotFound() {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	if apperrors.IsTransport(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// messageFor returns the text shown to API clients
func messageFor(err error, status int) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Type == apperrors.ErrSyncFailed && appErr.Cause != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
		}
		return appErr.Message
	}
	if remoteErr, ok := apperrors.AsRemote(err); ok {
		if remoteErr.IsNotFound() {
			return "repository not found on GitHub"
		}
		return remoteErr.Error()
	}
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func (h *Handler) respondWithError(c *gin.Context, err error) {
	status := statusFor(err)
	entry := h.logger.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.FullPath(),
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request rejected")
	}

	c.JSON(status, ErrorResponse{Error: messageFor(err, status)})
}
