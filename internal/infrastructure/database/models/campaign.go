package models

import (
	"time"
)

type Campaign struct {
	ID            string    `json:"id" gorm:"type:text;primaryKey"`
	Name          string    `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Slug          string    `json:"slug" gorm:"type:text;uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	TargetAmount  float64   `json:"targetValue" gorm:"not null;default:0"`
	CurrentAmount float64   `json:"currentValue" gorm:"not null;default:0"`
	Category      string    `json:"category" gorm:"type:text;not null"`
	ForWho        string    `json:"forWho" gorm:"type:text;not null"`
	IsActive      bool      `json:"isActive" gorm:"not null;default:true"`
	UserID        string    `json:"userId" gorm:"type:text;index;not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
