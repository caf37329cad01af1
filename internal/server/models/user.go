package models

import "time"

// User is an account. PasswordHash is a bcrypt hash and Token is the single
// active bearer token, nil when logged out.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Token        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
