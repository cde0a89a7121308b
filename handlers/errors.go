package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"

	"donorhub/internal/gateway"
	"donorhub/security"
	"donorhub/services"
)

// errorResponse maps service errors onto HTTP replies. Backend errors keep
// their original status and message; eligibility violations are client
// errors; anything else means the backend could not be reached.
func errorResponse(c echo.Context, err error) error {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return c.JSON(gwErr.StatusCode, map[string]any{"message": gwErr.Message})
	}

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		return c.JSON(http.StatusUnauthorized, map[string]any{"message": err.Error()})
	case errors.Is(err, security.ErrActionInFlight):
		return c.JSON(http.StatusConflict, map[string]any{"message": err.Error()})
	case errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrNotJoined),
		errors.Is(err, services.ErrInvalidMembers),
		errors.Is(err, services.ErrEventNotPast),
		errors.Is(err, services.ErrEventUnknown),
		errors.Is(err, services.ErrCertificateTooEarly),
		errors.Is(err, services.ErrNoReminderSelection),
		errors.Is(err, services.ErrInvalidHours):
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	case errors.Is(err, services.ErrViewClosed):
		return c.JSON(http.StatusUnauthorized, map[string]any{"message": "session expired, please login again"})
	}

	return c.JSON(http.StatusBadGateway, map[string]any{"message": err.Error()})
}
