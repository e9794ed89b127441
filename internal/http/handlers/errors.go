package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"charter/internal/domain"
	"charter/internal/http/middleware"
	"charter/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Status    int    `json:"status"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message, field string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Message:   message,
		Code:      code,
		Status:    status,
		Field:     field,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	field := domain.FieldOf(err)
	switch {
	case domain.IsMalformedInput(err):
		respondError(c, http.StatusBadRequest, "malformed_input", err.Error(), "")
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), field)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), field)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), field)
	case domain.IsUpstream(err):
		utils.LogWarn(middleware.GetRequestID(c), "http", "upstream", err)
		respondError(c, http.StatusBadGateway, "upstream_error", err.Error(), "")
	default:
		_ = c.Error(err)
		utils.LogWarn(middleware.GetRequestID(c), "http", "internal", err)
		msg := "internal error"
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Msg != "" {
			msg = ie.Msg
		}
		respondError(c, http.StatusInternalServerError, "internal_error", msg, "")
	}
}
