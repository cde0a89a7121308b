package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"

	"donorhub/security"
	"donorhub/services"
)

type GalleryHandler struct {
	views *services.ViewRegistry
	anon  *services.EventView
	guard *security.ActionGuard
	log   *zerolog.Logger
}

func NewGalleryHandler(views *services.ViewRegistry, anon *services.EventView, guard *security.ActionGuard, log *zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{views: views, anon: anon, guard: guard, log: log}
}

func (h *GalleryHandler) view(c echo.Context) *services.EventView {
	sess := currentSession(c)
	if sess == nil {
		return h.anon
	}
	return h.views.Attach(sess)
}

// Upload takes a multipart file, pushes it to the image host and attaches
// the hosted URL to the event's gallery.
func (h *GalleryHandler) Upload(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "could not read file"})
	}
	defer file.Close()

	release, err := h.guard.Acquire(c.Request().Context(), currentSessionID(c), "upload", id)
	if err != nil {
		return errorResponse(c, err)
	}
	defer release()

	url, err := h.view(c).UploadGalleryPhoto(c.Request().Context(), id, fileHeader.Filename, file)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"url": url})
}

// Delete removes a photo from the event's gallery.
func (h *GalleryHandler) Delete(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "url is required"})
	}

	if err := h.view(c).DeleteGalleryPhoto(c.Request().Context(), id, req.URL); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Photo deleted"})
}
