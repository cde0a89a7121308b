package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/models"
)

func TestCampaignProgress(t *testing.T) {
	tests := []struct {
		name   string
		goal   string
		raised string
		want   string
	}{
		{"halfway", "1000", "500", "50"},
		{"over goal capped at 100", "1000", "1500", "100"},
		{"zero goal reads as zero", "0", "500", "0"},
		{"fractional", "300", "100", "33.33333333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := models.Campaign{
				Goal:   decimal.RequireFromString(tt.goal),
				Raised: decimal.RequireFromString(tt.raised),
			}
			assert.True(t, CampaignProgress(c).Equal(decimal.RequireFromString(tt.want)),
				"got %s", CampaignProgress(c))
		})
	}
}

type fakeCampaignGateway struct {
	campaigns []models.Campaign
	donations []models.Donation
	err       error
}

func (f *fakeCampaignGateway) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return f.campaigns, f.err
}

func (f *fakeCampaignGateway) ListMyDonations(ctx context.Context, token string) ([]models.Donation, error) {
	return f.donations, f.err
}

func TestDonationsCampaigns(t *testing.T) {
	gw := &fakeCampaignGateway{
		campaigns: []models.Campaign{
			{ID: 1, Name: "School Fund", Goal: decimal.NewFromInt(1000), Raised: decimal.NewFromInt(250)},
		},
	}
	d := NewDonations(gw, testLogger())

	views, err := d.Campaigns(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Progress.Equal(decimal.NewFromInt(25)))
}

func TestMyDonationsTotals(t *testing.T) {
	gw := &fakeCampaignGateway{
		donations: []models.Donation{
			{ID: 1, Amount: decimal.RequireFromString("10.50")},
			{ID: 2, Amount: decimal.RequireFromString("4.25")},
		},
	}
	d := NewDonations(gw, testLogger())

	summary, err := d.MyDonations(context.Background(), "tok")

	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.RequireFromString("14.75")))
}

func TestMyDonationsRequiresLogin(t *testing.T) {
	d := NewDonations(&fakeCampaignGateway{}, testLogger())

	_, err := d.MyDonations(context.Background(), "")

	assert.ErrorIs(t, err, ErrAuthRequired)
}
