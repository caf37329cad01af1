package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

const userColumns = `id, username, password, name, token, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
	qb sq.StatementBuilderType
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Token, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, password, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Name).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorUsernameTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE token = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) SetToken(ctx context.Context, userID int64, token *string) error {
	query := `UPDATE users SET token = $1, updated_at = now() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

// Update builds the SET list from the non-nil fields; updated_at is always
// touched so the statement is never empty.
func (r *PostgresRepository) Update(ctx context.Context, userID int64, u Update) (*models.User, error) {
	b := r.qb.Update("users").
		Set("updated_at", sq.Expr("now()"))

	if u.Name != nil {
		b = b.Set("name", *u.Name)
	}
	if u.PasswordHash != nil {
		b = b.Set("password", *u.PasswordHash)
	}

	query, args, err := b.
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanUser(r.db.QueryRowContext(ctx, query, args...))
}
