// Package contacts stores contacts. Every method takes the owning user's ID
// and filters on it, so a contact owned by someone else behaves exactly like
// one that does not exist.
package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts c for c.UserID and fills ID and timestamps.
	Create(ctx context.Context, c *models.Contact) (*models.Contact, error)

	// ListByOwner returns the owner's contacts in insertion order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Contact, error)

	// Get returns common.ErrorNotFound unless the contact exists and belongs to ownerID.
	Get(ctx context.Context, ownerID, contactID int64) (*models.Contact, error)

	// Update replaces the editable fields of the contact identified by
	// c.ID and c.UserID.
	Update(ctx context.Context, c *models.Contact) (*models.Contact, error)

	Delete(ctx context.Context, ownerID, contactID int64) error
}
