package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "password", "name", "token", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*password,\s*name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`
	mock.ExpectQuery(q).
		WithArgs("alice", "hash", "Alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	got, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "hash", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.Token)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", "Alice").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_unique"})

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "hash", Name: "Alice"})
	require.ErrorIs(t, err, common.ErrorUsernameTaken)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByUsername(t *testing.T) {
	q := `(?s)^SELECT\s+id,\s*username,\s*password,\s*name,\s*token,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(1), "alice", "hash", "Alice", nil, now, now))

		got, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.Nil(t, got.Token)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByUsername(context.Background(), "ghost")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("alice").WillReturnError(errors.New("db err"))

		_, err := repo.GetByUsername(context.Background(), "alice")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestGetByToken(t *testing.T) {
	q := `(?s)^SELECT\s+.+\s+FROM\s+users\s+WHERE\s+token\s*=\s*\$1$`
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("tok").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(3), "bob", "hash", "Bob", "tok", now, now))

		got, err := repo.GetByToken(context.Background(), "tok")
		require.NoError(t, err)
		require.NotNil(t, got.Token)
		assert.Equal(t, "tok", *got.Token)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("stale").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByToken(context.Background(), "stale")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestSetToken(t *testing.T) {
	q := `(?s)^UPDATE\s+users\s+SET\s+token\s*=\s*\$1,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$2$`

	t.Run("set", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("tok", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetToken(context.Background(), 1, strPtr("tok")))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs(nil, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetToken(context.Background(), 1, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WithArgs("tok", int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.SetToken(context.Background(), 9, strPtr("tok")), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnError(errors.New("db err"))

		err := repo.SetToken(context.Background(), 1, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}

func TestUpdate(t *testing.T) {
	now := time.Now()

	t.Run("name only", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		q := `(?s)^UPDATE users SET updated_at = now\(\), name = \$1 WHERE id = \$2 RETURNING id, username, password, name, token, created_at, updated_at$`
		mock.ExpectQuery(q).WithArgs("New Name", int64(5)).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(5), "alice", "hash", "New Name", "tok", now, now))

		got, err := repo.Update(context.Background(), 5, Update{Name: strPtr("New Name")})
		require.NoError(t, err)
		assert.Equal(t, "New Name", got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name and password", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		q := `(?s)^UPDATE users SET updated_at = now\(\), name = \$1, password = \$2 WHERE id = \$3 RETURNING .+$`
		mock.ExpectQuery(q).WithArgs("N", "newhash", int64(5)).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(5), "alice", "newhash", "N", nil, now, now))

		got, err := repo.Update(context.Background(), 5, Update{Name: strPtr("N"), PasswordHash: strPtr("newhash")})
		require.NoError(t, err)
		assert.Equal(t, "newhash", got.PasswordHash)
	})

	t.Run("nothing to change still returns row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		q := `(?s)^UPDATE users SET updated_at = now\(\) WHERE id = \$1 RETURNING .+$`
		mock.ExpectQuery(q).WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(5), "alice", "hash", "Alice", nil, now, now))

		got, err := repo.Update(context.Background(), 5, Update{})
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), 5, Update{})
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}
