package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"donorhub/models"
)

var hundred = decimal.NewFromInt(100)

// CampaignProgress returns the percentage of the campaign goal raised,
// capped at 100. A zero or negative goal reads as 0 rather than dividing.
func CampaignProgress(c models.Campaign) decimal.Decimal {
	if c.Goal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pct := c.Raised.Div(c.Goal).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// CampaignGateway is the slice of the backend API the campaigns panel uses.
type CampaignGateway interface {
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	ListMyDonations(ctx context.Context, token string) ([]models.Donation, error)
}

// CampaignView is one campaign decorated with its progress percentage.
type CampaignView struct {
	models.Campaign
	Progress decimal.Decimal `json:"progress"`
}

// DonationSummary totals a user's donation history.
type DonationSummary struct {
	Donations []models.Donation `json:"donations"`
	Total     decimal.Decimal   `json:"total"`
}

// Donations serves the campaigns panel and the donor's own history.
type Donations struct {
	gw  CampaignGateway
	log *zerolog.Logger
}

func NewDonations(gw CampaignGateway, log *zerolog.Logger) *Donations {
	return &Donations{gw: gw, log: log}
}

// Campaigns returns the visible campaigns with progress computed.
func (d *Donations) Campaigns(ctx context.Context) ([]CampaignView, error) {
	campaigns, err := d.gw.ListCampaigns(ctx)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch campaigns")
		return nil, err
	}

	views := make([]CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, CampaignView{Campaign: c, Progress: CampaignProgress(c)})
	}
	return views, nil
}

// MyDonations returns the user's donation history with a running total.
func (d *Donations) MyDonations(ctx context.Context, token string) (DonationSummary, error) {
	if token == "" {
		return DonationSummary{}, ErrAuthRequired
	}

	donations, err := d.gw.ListMyDonations(ctx, token)
	if err != nil {
		d.log.Error().Err(err).Msg("failed to fetch donations")
		return DonationSummary{}, err
	}

	total := decimal.Zero
	for _, dn := range donations {
		total = total.Add(dn.Amount)
	}
	return DonationSummary{Donations: donations, Total: total}, nil
}
