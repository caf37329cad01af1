// Package addresses stores contact addresses. Reads and writes that take an
// ownerID join through contacts.user_id, so an address is only reachable by
// the user who owns its contact.
package addresses

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a for a.ContactID. The caller must already have checked
	// that the contact belongs to the requester.
	Create(ctx context.Context, a *models.Address) (*models.Address, error)

	ListByContact(ctx context.Context, ownerID, contactID int64) ([]*models.Address, error)

	Get(ctx context.Context, ownerID, contactID, addressID int64) (*models.Address, error)

	// Update replaces the editable fields of the address identified by
	// a.ID and a.ContactID, provided the contact belongs to ownerID.
	Update(ctx context.Context, ownerID int64, a *models.Address) (*models.Address, error)

	Delete(ctx context.Context, ownerID, contactID, addressID int64) error
}
