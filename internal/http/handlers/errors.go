package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain"
	"hoponhub/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error            string `json:"error"`
	Code             string `json:"code,omitempty"`
	Message          string `json:"message,omitempty"`
	RequestID        string `json:"request_id,omitempty"`
	UnavailableSeats []int  `json:"unavailable_seats,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, seats []int) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:            message,
		Code:             code,
		Message:          message,
		RequestID:        middleware.GetRequestID(c),
		UnavailableSeats: seats,
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), domain.ConflictSeats(err))
	default:
		msg := "Server error"
		cause := err
		var internal domain.InternalError
		if errors.As(err, &internal) {
			if internal.Msg != "" {
				msg = internal.Msg
			}
			if internal.Err != nil {
				cause = internal.Err
			}
		}
		log.Printf("[HTTP] request_id=%s %s: %v", middleware.GetRequestID(c), msg, cause)
		respondError(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
