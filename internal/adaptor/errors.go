package adaptor

import (
	"net/http"
	"strings"

	"course-platform/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service error phrases to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"),
		strings.Contains(errMsg, "invalid course ID format"),
		strings.Contains(errMsg, "invalid lecture ID format"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already enrolled"),
		strings.Contains(errMsg, "cannot publish"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "not allowed"),
		strings.Contains(errMsg, "not enrolled"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid or expired"),
		strings.Contains(errMsg, "invalid token format"),
		strings.Contains(errMsg, "invalid payment signature"),
		strings.Contains(errMsg, "invalid webhook signature"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
