package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
	assert.ErrorIs(t, MapDBError(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, MapDBError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})), ErrConflict)
	assert.ErrorIs(t, MapDBError(errors.New("constraint failed: UNIQUE constraint failed: categories.slug (2067)")), ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, MapDBError(other))
}

func TestConflictKeepsOtherErrors(t *testing.T) {
	err := Conflict(ErrConflict, "Slug kategori sudah digunakan")
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Slug kategori sudah digunakan")

	boom := errors.New("boom")
	assert.Equal(t, boom, Conflict(boom, "ignored"))
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("product", int64(7))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "product 7 not found")

	custom := &NotFoundError{Resource: "order", Message: "Order tidak ditemukan"}
	assert.EqualError(t, fmt.Errorf("wrapped: %w", custom), "wrapped: Order tidak ditemukan")
}

func TestUnavailableError(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &UnavailableError{Message: "Sedang maintenance"})
	assert.ErrorIs(t, err, ErrUnavailable)

	var ue *UnavailableError
	assert.True(t, errors.As(err, &ue))
	assert.Equal(t, "Sedang maintenance", ue.Message)
}
