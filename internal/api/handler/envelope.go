package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-api/internal/core/domain"
)

// Envelope is the body of every /api response, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const internalErrorMessage = "internal server error"

// Error kinds, used as the metrics "kind" label.
const (
	kindValidation = "validation"
	kindNotFound   = "not_found"
	kindConflict   = "conflict"
	kindUnexpected = "unexpected"
)

// Success writes a successful envelope.
func Success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failed envelope with a null data field.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message, Data: nil})
}

// resolveError maps a use case error onto a status, a kind and the message
// shown to the client. Unexpected errors are only described when expose is
// set; otherwise a generic message is used.
func resolveError(err error, expose bool) (int, string, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, kindValidation, ve.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, kindValidation, domain.ErrValidation.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, kindNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, kindConflict, domain.ErrEmailTaken.Error()
	}

	if expose {
		return http.StatusInternalServerError, kindUnexpected, err.Error()
	}
	return http.StatusInternalServerError, kindUnexpected, internalErrorMessage
}
