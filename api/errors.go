package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/agentbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable"`
}

// writeError maps the domain error kinds onto HTTP statuses. Server side
// causes stay out of the body; they are attached to the context for
// RequestLogger.
func writeError(c *gin.Context, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

func errorStatus(err error) (int, errorResponse) {
	body := errorResponse{Error: err.Error()}

	var (
		validation *domain.ValidationError
		transient  *domain.TransientServiceError
	)
	switch {
	case errors.As(err, &validation):
		body.Field = validation.Field
		return http.StatusBadRequest, body
	case errors.As(err, &transient):
		return http.StatusServiceUnavailable, errorResponse{Error: transient.Op + ": temporarily unavailable", Retryable: true}
	case domain.IsFatal(err):
		return http.StatusPaymentRequired, body
	case errors.Is(err, domain.ErrAgentNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, body
	case errors.Is(err, domain.ErrWrongStage),
		errors.Is(err, domain.ErrCannotGoBack),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPaymentInProgress):
		return http.StatusConflict, body
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func bindError(c *gin.Context, err error) {
	writeError(c, domain.NewValidationError("body", err.Error()))
}
