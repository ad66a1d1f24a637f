package domain

import "time"

// Campaign is a fundraising campaign. CurrentAmount is a cached
// projection of the campaign's contributions; the repository's atomic
// increment is the only writer.
type Campaign struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"targetValue"`
	CurrentAmount float64   `json:"currentValue"`
	Category      string    `json:"category"`
	ForWho        string    `json:"forWho"`
	IsActive      bool      `json:"isActive"`
	UserID        string    `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CampaignFilter narrows campaign listings.
type CampaignFilter struct {
	Name     string
	IsActive *bool
}
