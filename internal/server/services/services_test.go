package services

import (
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

// newTestDB returns an empty sqlite database. The in-memory repositories
// ignore it; it only provides transactions for dbx.WithTx.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type testServices struct {
	users     *UserService
	contacts  *ContactService
	addresses *AddressService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	db := newTestDB(t)
	rm := repomanager.NewInMemoryRepositoryManager()
	us, err := NewUserService(db, rm, bcrypt.MinCost)
	require.NoError(t, err)
	return testServices{
		users:     us,
		contacts:  NewContactService(db, rm),
		addresses: NewAddressService(db, rm),
	}
}

func strPtr(s string) *string { return &s }
