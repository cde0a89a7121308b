package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"

	"donorhub/services"
)

type NotificationsHandler struct {
	notifier *services.Notifier
	log      *zerolog.Logger
}

func NewNotificationsHandler(notifier *services.Notifier, log *zerolog.Logger) *NotificationsHandler {
	return &NotificationsHandler{notifier: notifier, log: log}
}

// List returns the notification feed. With ?fresh=true only entries the
// user has not been shown yet come back.
func (h *NotificationsHandler) List(c echo.Context) error {
	sess := currentSession(c)
	if sess == nil {
		return errorResponse(c, services.ErrAuthRequired)
	}

	ctx := c.Request().Context()
	if c.QueryParam("fresh") == "true" {
		fresh, err := h.notifier.Fresh(ctx, sess.Token, sess.UserID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"notifications": fresh})
	}

	feed, err := h.notifier.Feed(ctx, sess.Token, sess.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"notifications": feed})
}

// MarkRead marks the whole feed as read.
func (h *NotificationsHandler) MarkRead(c echo.Context) error {
	sess := currentSession(c)
	if sess == nil {
		return errorResponse(c, services.ErrAuthRequired)
	}

	if err := h.notifier.MarkRead(c.Request().Context(), sess.Token, sess.UserID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Notifications marked as read"})
}
