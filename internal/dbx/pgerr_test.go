package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation)}))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: pq.ErrorCode(pgerrcode.NotNullViolation)}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
