package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-compass/internal/service"
)

// APIError es el cuerpo de error estructurado de todas las respuestas.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Codigos de error expuestos al cliente.
const (
	CodeInvalidRequest           = "invalid_request"
	CodeInvalidInput             = "invalid_input"
	CodeUserNotFound             = "user_not_found"
	CodeNotFound                 = "not_found"
	CodeSkillAnalysisUnavailable = "skill_analysis_unavailable"
	CodeInternal                 = "internal_error"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{Message: message, Code: code},
	})
}

// respondServiceError traduce errores de servicio a status HTTP. Lo inesperado se loguea y sale como 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, service.ErrSkillAnalysisUnavailable):
		logger.Error(op+" failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeSkillAnalysisUnavailable, "skill analysis is unavailable, please try again")
	default:
		logger.Error(op+" failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
	}
}

// respondBindError responde 400 ante un body que no se pudo decodificar.
func respondBindError(c *gin.Context, logger *zap.Logger, op string, err error) {
	logger.Warn("invalid "+op+" request", zap.Error(err))
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid request body")
}
