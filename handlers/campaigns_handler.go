package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"

	"donorhub/services"
)

type CampaignsHandler struct {
	donations *services.Donations
	log       *zerolog.Logger
}

func NewCampaignsHandler(donations *services.Donations, log *zerolog.Logger) *CampaignsHandler {
	return &CampaignsHandler{donations: donations, log: log}
}

// List returns the visible campaigns with progress percentages.
func (h *CampaignsHandler) List(c echo.Context) error {
	campaigns, err := h.donations.Campaigns(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"campaigns": campaigns})
}

// MyDonations returns the logged-in user's donation history.
func (h *CampaignsHandler) MyDonations(c echo.Context) error {
	sess := currentSession(c)
	if sess == nil {
		return errorResponse(c, services.ErrAuthRequired)
	}

	summary, err := h.donations.MyDonations(c.Request().Context(), sess.Token)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
