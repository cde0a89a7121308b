package gateway

import (
	"context"
	"net/http"

	"donorhub/models"
)

// ListCampaigns returns the donation campaigns visible to donors.
func (c *Client) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := c.doJSON(ctx, "listCampaigns", http.MethodGet, "/api/user/campaigns", "", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListMyDonations returns the current user's donation history.
func (c *Client) ListMyDonations(ctx context.Context, token string) ([]models.Donation, error) {
	var donations []models.Donation
	if err := c.doJSON(ctx, "listMyDonations", http.MethodGet, "/api/donations/my", token, nil, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}
