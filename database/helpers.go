package database

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Pagination represents pagination parameters
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// PaginationResult wraps paginated data with metadata
type PaginationResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Paginate applies pagination to a query builder and returns results with metadata
func Paginate[T any](q *QueryBuilder[T], ctx context.Context, page, pageSize int) (*PaginationResult[T], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100 // Max page size
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	data, err := q.Limit(pageSize).Offset((page - 1) * pageSize).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &PaginationResult[T]{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: (total + pageSize - 1) / pageSize,
		},
	}, nil
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db bun.IDB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Create is a helper to insert a single record
func Create[T any](db bun.IDB, ctx context.Context, data *T) (*T, error) {
	return Query[T](db).Insert(ctx, data)
}

// UpdateByID is a helper to update a record by ID
func UpdateByID[T any](db bun.IDB, ctx context.Context, id any, data map[string]any) (int, error) {
	return Query[T](db).Where("id", id).Update(ctx, data)
}

// DeleteByID is a helper to delete a record by ID
func DeleteByID[T any](db bun.IDB, ctx context.Context, id any) (int, error) {
	return Query[T](db).Where("id", id).Delete(ctx)
}

// SoftDelete deactivates a record and stamps deleted_at
func SoftDelete[T any](db bun.IDB, ctx context.Context, id any) (int, error) {
	now := time.Now().UTC()
	return Query[T](db).
		Where("id", id).
		WhereNull("deleted_at").
		Update(ctx, map[string]any{
			"deleted_at": now,
			"is_active":  false,
			"updated_at": now,
		})
}

// Restore reactivates a soft-deleted record
func Restore[T any](db bun.IDB, ctx context.Context, id any) (int, error) {
	return Query[T](db).
		Where("id", id).
		WhereNotNull("deleted_at").
		Update(ctx, map[string]any{
			"deleted_at": nil,
			"is_active":  true,
			"updated_at": time.Now().UTC(),
		})
}

// ExcludeSoftDeleted adds a WHERE clause to exclude soft-deleted records
func ExcludeSoftDeleted[T any](q *QueryBuilder[T]) *QueryBuilder[T] {
	return q.WhereNull("deleted_at")
}

// Upsert inserts the row or overwrites the given columns when the conflict column already exists
func Upsert[T any](db bun.IDB, ctx context.Context, data *T, conflictColumn string, updateColumns ...string) (*T, error) {
	query := db.NewInsert().Model(data).On("CONFLICT (?) DO UPDATE", bun.Ident(conflictColumn))
	for _, col := range updateColumns {
		query = query.Set("? = EXCLUDED.?", bun.Ident(col), bun.Ident(col))
	}

	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to upsert: %w", err)
	}
	return data, nil
}

// InsertIgnore inserts the rows, skipping any that violate a unique constraint.
// It returns the number of rows actually written.
func InsertIgnore[T any](db bun.IDB, ctx context.Context, data []T) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	res, err := db.NewInsert().Model(&data).Ignore().Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

// Transaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func Transaction(ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, nil, fn)
}

// TransactionWithResult is Transaction for functions that produce a value
func TransactionWithResult[T any](ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	return result, err
}
