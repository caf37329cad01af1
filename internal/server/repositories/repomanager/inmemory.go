package repomanager

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all data in process memory. The db handle
// passed to the factories is ignored, so transactions give no isolation.
// It backs service and handler tests.
type InMemoryRepositoryManager struct {
	store *memStore
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: &memStore{
		users:     map[int64]models.User{},
		contacts:  map[int64]models.Contact{},
		addresses: map[int64]models.Address{},
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memUsers{m.store}
}

func (m *InMemoryRepositoryManager) Contacts(dbx.DBTX) contacts.Repository {
	return memContacts{m.store}
}

func (m *InMemoryRepositoryManager) Addresses(dbx.DBTX) addresses.Repository {
	return memAddresses{m.store}
}

type memStore struct {
	mu        sync.Mutex
	lastID    int64
	users     map[int64]models.User
	contacts  map[int64]models.Contact
	addresses map[int64]models.Address
}

func (s *memStore) nextID() int64 {
	s.lastID++
	return s.lastID
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, common.ErrorUsernameTaken
		}
	}
	now := time.Now()
	user.ID, user.CreatedAt, user.UpdatedAt = r.s.nextID(), now, now
	r.s.users[user.ID] = *user
	return user, nil
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByToken(ctx context.Context, token string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Token != nil && *u.Token == token {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) SetToken(ctx context.Context, userID int64, token *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	if token != nil {
		t := *token
		token = &t
	}
	u.Token, u.UpdatedAt = token, time.Now()
	r.s.users[userID] = u
	return nil
}

func (r memUsers) Update(ctx context.Context, userID int64, upd users.Update) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now()
	r.s.users[userID] = u
	return &u, nil
}

type memContacts struct{ s *memStore }

func (r memContacts) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	c.ID, c.CreatedAt, c.UpdatedAt = r.s.nextID(), now, now
	r.s.contacts[c.ID] = *c
	return c, nil
}

func (r memContacts) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := []*models.Contact{}
	for _, c := range r.s.contacts {
		if c.UserID == ownerID {
			c := c
			res = append(res, &c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r memContacts) Get(ctx context.Context, ownerID, contactID int64) (*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.ownedContact(ownerID, contactID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r memContacts) Update(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.ownedContact(c.UserID, c.ID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.CreatedAt, c.UpdatedAt = old.CreatedAt, time.Now()
	r.s.contacts[c.ID] = *c
	return c, nil
}

func (r memContacts) Delete(ctx context.Context, ownerID, contactID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedContact(ownerID, contactID); !ok {
		return common.ErrorNotFound
	}
	delete(r.s.contacts, contactID)
	for id, a := range r.s.addresses {
		if a.ContactID == contactID {
			delete(r.s.addresses, id)
		}
	}
	return nil
}

// ownedContact must be called with mu held.
func (s *memStore) ownedContact(ownerID, contactID int64) (models.Contact, bool) {
	c, ok := s.contacts[contactID]
	if !ok || c.UserID != ownerID {
		return models.Contact{}, false
	}
	return c, true
}

// ownedAddress must be called with mu held.
func (s *memStore) ownedAddress(ownerID, contactID, addressID int64) (models.Address, bool) {
	a, ok := s.addresses[addressID]
	if !ok || a.ContactID != contactID {
		return models.Address{}, false
	}
	if _, ok := s.ownedContact(ownerID, contactID); !ok {
		return models.Address{}, false
	}
	return a, true
}

type memAddresses struct{ s *memStore }

func (r memAddresses) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	a.ID, a.CreatedAt, a.UpdatedAt = r.s.nextID(), now, now
	r.s.addresses[a.ID] = *a
	return a, nil
}

func (r memAddresses) ListByContact(ctx context.Context, ownerID, contactID int64) ([]*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := []*models.Address{}
	if _, ok := r.s.ownedContact(ownerID, contactID); !ok {
		return res, nil
	}
	for _, a := range r.s.addresses {
		if a.ContactID == contactID {
			a := a
			res = append(res, &a)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r memAddresses) Get(ctx context.Context, ownerID, contactID, addressID int64) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.ownedAddress(ownerID, contactID, addressID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r memAddresses) Update(ctx context.Context, ownerID int64, a *models.Address) (*models.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.ownedAddress(ownerID, a.ContactID, a.ID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	a.CreatedAt, a.UpdatedAt = old.CreatedAt, time.Now()
	r.s.addresses[a.ID] = *a
	return a, nil
}

func (r memAddresses) Delete(ctx context.Context, ownerID, contactID, addressID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ownedAddress(ownerID, contactID, addressID); !ok {
		return common.ErrorNotFound
	}
	delete(r.s.addresses, addressID)
	return nil
}
