package addresses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

const addressColumns = `a.id, a.contact_id, a.street, a.city, a.province, a.country, a.postal_code, a.created_at, a.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAddress(row scanner) (*models.Address, error) {
	a := &models.Address{}
	err := row.Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Address) (*models.Address, error) {
	query :=
		`INSERT INTO addresses (contact_id, street, city, province, country, postal_code)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByContact(ctx context.Context, ownerID, contactID int64) ([]*models.Address, error) {
	query :=
		`SELECT ` + addressColumns + `
		 FROM addresses a
		 JOIN contacts c ON c.id = a.contact_id
		 WHERE a.contact_id = $1 AND c.user_id = $2
		 ORDER BY a.id`

	rows, err := r.db.QueryContext(ctx, query, contactID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select addresses: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, contactID, addressID int64) (*models.Address, error) {
	query :=
		`SELECT ` + addressColumns + `
		 FROM addresses a
		 JOIN contacts c ON c.id = a.contact_id
		 WHERE a.id = $1 AND a.contact_id = $2 AND c.user_id = $3`

	a, err := scanAddress(r.db.QueryRowContext(ctx, query, addressID, contactID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID int64, a *models.Address) (*models.Address, error) {
	query :=
		`UPDATE addresses a
		 SET street = $1, city = $2, province = $3, country = $4, postal_code = $5, updated_at = now()
		 FROM contacts c
		 WHERE a.id = $6 AND a.contact_id = $7 AND c.id = a.contact_id AND c.user_id = $8
		 RETURNING a.created_at, a.updated_at`

	err := r.db.QueryRowContext(ctx, query,
		a.Street, a.City, a.Province, a.Country, a.PostalCode, a.ID, a.ContactID, ownerID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, contactID, addressID int64) error {
	query :=
		`DELETE FROM addresses a
		 USING contacts c
		 WHERE a.id = $1 AND a.contact_id = $2 AND c.id = a.contact_id AND c.user_id = $3`

	res, err := r.db.ExecContext(ctx, query, addressID, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
