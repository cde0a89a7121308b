package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"

	"donorhub/security"
	"donorhub/services"
)

type EventsHandler struct {
	views *services.ViewRegistry
	anon  *services.EventView
	guard *security.ActionGuard
	log   *zerolog.Logger
}

func NewEventsHandler(views *services.ViewRegistry, anon *services.EventView, guard *security.ActionGuard, log *zerolog.Logger) *EventsHandler {
	return &EventsHandler{views: views, anon: anon, guard: guard, log: log}
}

// view resolves the caller's event view. Anonymous callers share a
// read-only view whose operations all require a login anyway.
func (h *EventsHandler) view(c echo.Context) *services.EventView {
	sess := currentSession(c)
	if sess == nil {
		return h.anon
	}
	return h.views.Attach(sess)
}

func eventID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.PathParam("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id")
	}
	return id, nil
}

// GetPage renders the events page under the query-string filters.
func (h *EventsHandler) GetPage(c echo.Context) error {
	view := h.view(c)

	if view.Authenticated() {
		if err := view.RefreshParticipation(c.Request().Context()); err != nil {
			h.log.Warn().Err(err).Msg("participation refresh on page load failed")
		}
	}

	filter := services.Filter{
		Type:   c.QueryParam("type"),
		City:   c.QueryParam("city"),
		Month:  c.QueryParam("month"),
		Search: c.QueryParam("search"),
	}

	page, err := view.Page(filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Join registers the user for an event. A second join for the same event
// while the first is still in flight is rejected.
func (h *EventsHandler) Join(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	var req struct {
		Members int `json:"members"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "invalid request body"})
	}
	if req.Members == 0 {
		req.Members = 1
	}

	release, err := h.guard.Acquire(c.Request().Context(), currentSessionID(c), "join", id)
	if err != nil {
		return errorResponse(c, err)
	}
	defer release()

	if err := h.view(c).Join(c.Request().Context(), id, req.Members); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Joined successfully"})
}

// OpenReminder starts a reminder selection and returns the preselected
// hours.
func (h *EventsHandler) OpenReminder(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	view := h.view(c)
	if err := view.OpenReminder(id); err != nil {
		return errorResponse(c, err)
	}
	hours, _ := view.ReminderSelection(id)
	return c.JSON(http.StatusOK, map[string]any{"hoursBefore": hours})
}

// SubmitReminder sends the selection to the backend. An optional
// hoursBefore in the body updates the selection first.
func (h *EventsHandler) SubmitReminder(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	var req struct {
		HoursBefore int `json:"hoursBefore"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "invalid request body"})
	}

	view := h.view(c)
	if req.HoursBefore != 0 {
		if err := view.SetReminderHours(id, req.HoursBefore); err != nil {
			return errorResponse(c, err)
		}
	}
	if err := view.SubmitReminder(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Reminder set"})
}

// CancelReminder discards an open selection.
func (h *EventsHandler) CancelReminder(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}
	h.view(c).CancelReminder(id)
	return c.JSON(http.StatusOK, map[string]any{"message": "Reminder cancelled"})
}

// Certificate streams the attendance certificate PDF.
func (h *EventsHandler) Certificate(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	pdf, filename, err := h.view(c).DownloadCertificate(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
