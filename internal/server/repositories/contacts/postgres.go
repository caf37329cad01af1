package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

const contactColumns = `id, user_id, first_name, last_name, email, phone, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (*models.Contact, error) {
	c := &models.Contact{}
	if err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	query :=
		`INSERT INTO contacts (user_id, first_name, last_name, email, phone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select contacts: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, contactID int64) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, contactID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	query :=
		`UPDATE contacts
		 SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = now()
		 WHERE id = $5 AND user_id = $6
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.ID, c.UserID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, contactID int64) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
