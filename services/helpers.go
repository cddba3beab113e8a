package services

import (
	"context"
	"fmt"

	"digistore_server/database"
	"digistore_server/lib"

	"github.com/uptrace/bun"
)

// findByID loads a row by primary key and turns a miss into a NotFoundError.
func findByID[T any](ctx context.Context, db bun.IDB, resource string, id int64) (*T, error) {
	row, err := database.FindByID[T](db, ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}
	if row == nil {
		return nil, lib.NotFound(resource, id)
	}
	return row, nil
}

// deleteByID removes a row by primary key. Zero affected rows is a NotFoundError.
func deleteByID[T any](ctx context.Context, db bun.IDB, resource string, id int64) error {
	n, err := database.DeleteByID[T](db, ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", resource, err)
	}
	if n == 0 {
		return lib.NotFound(resource, id)
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
