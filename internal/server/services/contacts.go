package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
)

// ContactService manages the contacts of one owner at a time. Every method
// takes the owner explicitly; contacts of other users are reported as
// common.ErrorNotFound.
type ContactService struct {
	db          *sql.DB
	repoManager repomanager.RepositoryManager
}

func NewContactService(db *sql.DB, rm repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repoManager: rm}
}

// notFoundOrInternal passes common.ErrorNotFound through and wraps anything
// else as an internal error.
func notFoundOrInternal(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return internal(err)
}

func (s *ContactService) Create(ctx context.Context, ownerID int64, in ContactInput) (*models.Contact, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	c, err := s.repoManager.Contacts(s.db).Create(ctx, &models.Contact{
		UserID:    ownerID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	})
	if err != nil {
		return nil, internal(err)
	}
	return c, nil
}

func (s *ContactService) List(ctx context.Context, ownerID int64) ([]*models.Contact, error) {
	list, err := s.repoManager.Contacts(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, contactID int64) (*models.Contact, error) {
	c, err := s.repoManager.Contacts(s.db).Get(ctx, ownerID, contactID)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return c, nil
}

// Update replaces the editable fields of the contact.
func (s *ContactService) Update(ctx context.Context, ownerID, contactID int64, in ContactInput) (*models.Contact, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalize()

	c, err := s.repoManager.Contacts(s.db).Update(ctx, &models.Contact{
		ID:        contactID,
		UserID:    ownerID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	})
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return c, nil
}

// Delete removes the contact together with its addresses.
func (s *ContactService) Delete(ctx context.Context, ownerID, contactID int64) error {
	if err := s.repoManager.Contacts(s.db).Delete(ctx, ownerID, contactID); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}
