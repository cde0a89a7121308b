package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"

	"donorhub/internal/gateway"
	"donorhub/internal/session"
	"donorhub/models"
	"donorhub/services"
)

type AuthHandler struct {
	gw       *gateway.Client
	store    *session.Store
	views    *services.ViewRegistry
	notifier *services.Notifier
	log      *zerolog.Logger
}

func NewAuthHandler(gw *gateway.Client, store *session.Store, views *services.ViewRegistry, notifier *services.Notifier, log *zerolog.Logger) *AuthHandler {
	return &AuthHandler{gw: gw, store: store, views: views, notifier: notifier, log: log}
}

// Login exchanges credentials for a backend token, stores it server side
// and hands the browser an opaque session id.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "email and password are required"})
	}

	result, err := h.gw.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	sess := &models.Session{
		Token:    result.Token,
		UserID:   result.User.ID,
		Email:    result.User.Email,
		Username: result.User.Username,
	}
	id, err := h.store.Create(c.Request().Context(), sess)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to store session")
		return c.JSON(http.StatusInternalServerError, map[string]any{"message": "could not create session"})
	}

	h.log.Info().Int64("user_id", sess.UserID).Msg("user logged in")
	return c.JSON(http.StatusOK, map[string]any{
		"sessionId": id,
		"user": map[string]any{
			"id":       result.User.ID,
			"username": result.User.Username,
			"email":    result.User.Email,
		},
	})
}

// Logout drops the session and closes its view, so any response from a
// request that raced the logout is discarded instead of repopulating state.
func (h *AuthHandler) Logout(c echo.Context) error {
	id := currentSessionID(c)
	if id == "" {
		return c.JSON(http.StatusOK, map[string]any{"message": "logged out"})
	}

	sess := currentSession(c)
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		h.log.Warn().Err(err).Msg("failed to delete session")
	}
	h.views.Remove(id)
	if sess != nil {
		h.notifier.Forget(c.Request().Context(), sess.UserID)
		h.log.Info().Int64("user_id", sess.UserID).Msg("user logged out")
	}

	return c.JSON(http.StatusOK, map[string]any{"message": "logged out"})
}
