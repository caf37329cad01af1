package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
)

// AddressService manages addresses of contacts. A contact that does not
// belong to the requester is reported as common.ErrorNotFound, so the
// requester cannot tell it apart from a missing one.
type AddressService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
}

func NewAddressService(db *sql.DB, rm repomanager.RepositoryManager) *AddressService {
	return &AddressService{db: db, repoManager: rm}
}

func (s *AddressService) Create(ctx context.Context, ownerID, contactID int64, in AddressInput) (*models.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	var created *models.Address
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repoManager.Contacts(tx).Get(ctx, ownerID, contactID); err != nil {
			return err
		}

		var err error
		created, err = s.repoManager.Addresses(tx).Create(ctx, &models.Address{
			ContactID:  contactID,
			Street:     in.Street,
			City:       in.City,
			Province:   in.Province,
			Country:    in.Country,
			PostalCode: in.PostalCode,
		})
		return err
	})
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return created, nil
}

// List returns the contact's addresses. An empty list means the contact is
// owned by the requester but has no addresses.
func (s *AddressService) List(ctx context.Context, ownerID, contactID int64) ([]*models.Address, error) {
	if _, err := s.repoManager.Contacts(s.db).Get(ctx, ownerID, contactID); err != nil {
		return nil, notFoundOrInternal(err)
	}

	list, err := s.repoManager.Addresses(s.db).ListByContact(ctx, ownerID, contactID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *AddressService) Get(ctx context.Context, ownerID, contactID, addressID int64) (*models.Address, error) {
	a, err := s.repoManager.Addresses(s.db).Get(ctx, ownerID, contactID, addressID)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return a, nil
}

func (s *AddressService) Update(ctx context.Context, ownerID, contactID, addressID int64, in AddressInput) (*models.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	a, err := s.repoManager.Addresses(s.db).Update(ctx, ownerID, &models.Address{
		ID:         addressID,
		ContactID:  contactID,
		Street:     in.Street,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	})
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, ownerID, contactID, addressID int64) error {
	if err := s.repoManager.Addresses(s.db).Delete(ctx, ownerID, contactID, addressID); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}
