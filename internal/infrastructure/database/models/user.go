package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey"`
	Phone     string    `json:"phone" gorm:"type:text;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:text;not null"`
	Name      string    `json:"name" gorm:"type:text"`
	Role      string    `json:"role" gorm:"type:text;not null;default:'USER'"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
