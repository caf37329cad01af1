// Package users declares and implements storage of user accounts: the
// credential store behind registration, login and bearer-token resolution.
package users

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

// Update lists the profile fields to change. Nil fields are left untouched.
type Update struct {
	Name         *string
	PasswordHash *string
}

type Repository interface {
	// Create inserts the user and fills ID and timestamps. A duplicate
	// username yields common.ErrorUsernameTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByToken finds the user whose stored token equals token exactly.
	GetByToken(ctx context.Context, token string) (*models.User, error)

	// SetToken stores token for the user; nil clears it.
	SetToken(ctx context.Context, userID int64, token *string) error

	// Update applies the non-nil fields of u and returns the stored row.
	Update(ctx context.Context, userID int64, u Update) (*models.User, error)
}
