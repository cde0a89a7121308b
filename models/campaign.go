package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Campaign struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Beneficiary string          `json:"beneficiary"`
	Description string          `json:"description"`
	Impact      string          `json:"impact"`
	Goal        decimal.Decimal `json:"goal"`
	Raised      decimal.Decimal `json:"raised"`
	Status      string          `json:"status"` // Active / Inactive / Completed
	ImageURL    string          `json:"imageUrl"`
}

type Donation struct {
	ID         int64           `json:"id"`
	CampaignID int64           `json:"campaignId"`
	DonorName  string          `json:"donorName"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}
