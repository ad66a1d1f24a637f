package domain

import "time"

// User is a registered identity, keyed by canonical phone number.
// PasswordHash never leaves the process boundary.
type User struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthSession is what register and login hand back to the caller.
type AuthSession struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
