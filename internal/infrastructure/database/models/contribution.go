package models

import (
	"time"
)

type Contribution struct {
	ID            string    `json:"id" gorm:"type:text;primaryKey"`
	Amount        float64   `json:"amount" gorm:"not null"`
	UserID        string    `json:"userId" gorm:"type:text;index;not null"`
	User          User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:RESTRICT;"`
	CampaignID    string    `json:"campaignId" gorm:"type:text;index;not null"`
	Campaign      Campaign  `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:RESTRICT;"`
	TransactionID string    `json:"transactionId" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
