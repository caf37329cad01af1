package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_CRUD(t *testing.T) {
	s := newTestServices(t)
	alice := register(t, s.users, "alice", "secret")
	c := context.Background()

	list, err := s.contacts.List(c, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	created, err := s.contacts.Create(c, alice.ID, ContactInput{FirstName: "Bob", Email: strPtr("bob@example.com"), Phone: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Nil(t, created.Phone)

	got, err := s.contacts.Get(c, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.FirstName)

	updated, err := s.contacts.Update(c, alice.ID, created.ID, ContactInput{FirstName: "Robert"})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.FirstName)
	assert.Nil(t, updated.Email)

	list, err = s.contacts.List(c, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.contacts.Delete(c, alice.ID, created.ID))
	_, err = s.contacts.Get(c, alice.ID, created.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestContactService_OwnershipIsolation(t *testing.T) {
	s := newTestServices(t)
	alice := register(t, s.users, "alice", "secret")
	mallory := register(t, s.users, "mallory", "secret")
	c := context.Background()

	contact, err := s.contacts.Create(c, alice.ID, ContactInput{FirstName: "Bob"})
	require.NoError(t, err)

	list, err := s.contacts.List(c, mallory.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, foreign := s.contacts.Get(c, mallory.ID, contact.ID)
	_, missing := s.contacts.Get(c, mallory.ID, contact.ID+1000)
	require.ErrorIs(t, foreign, common.ErrorNotFound)
	require.ErrorIs(t, missing, common.ErrorNotFound)
	assert.Equal(t, missing.Error(), foreign.Error())

	_, err = s.contacts.Update(c, mallory.ID, contact.ID, ContactInput{FirstName: "Hacked"})
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.contacts.Delete(c, mallory.ID, contact.ID), common.ErrorNotFound)

	got, err := s.contacts.Get(c, alice.ID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.FirstName)
}

func TestContactService_Invalid(t *testing.T) {
	s := newTestServices(t)

	_, err := s.contacts.Create(context.Background(), 1, ContactInput{Email: strPtr("bad")})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "first_name")
	assert.Contains(t, ve.Fields, "email")
}
