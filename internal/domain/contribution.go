package domain

import "time"

// Contribution is an immutable record of a single donation.
// TransactionID is an opaque reference from an external payment
// provider; the recorder does not deduplicate by it.
type Contribution struct {
	ID            string    `json:"id"`
	Amount        float64   `json:"amount"`
	UserID        string    `json:"userId"`
	CampaignID    string    `json:"campaignId"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DonationReceipt summarizes a successful contribution.
type DonationReceipt struct {
	Donation Donation `json:"donation"`
}

type Donation struct {
	Campaign  DonationCampaign `json:"campaign"`
	Value     float64          `json:"value"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type DonationCampaign struct {
	Name string `json:"name"`
}

// ContributionChannel carries contribution-recorded events.
const ContributionChannel = "kitadi:contributions"

// ContributionEvent is published after a contribution is recorded.
type ContributionEvent struct {
	ContributionID string    `json:"contributionId"`
	CampaignID     string    `json:"campaignId"`
	CampaignName   string    `json:"campaignName"`
	UserID         string    `json:"userId"`
	Amount         float64   `json:"amount"`
	RecordedAt     time.Time `json:"recordedAt"`
}
