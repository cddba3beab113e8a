package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var data []T
	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record, or nil when there is none
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	data := new(T)
	err := WithRetry(ctx, func() error {
		return q.buildSelect(data).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var count int
	err := WithRetry(ctx, func() error {
		query := applyWheres(q.db.NewSelect().Model((*T)(nil)), q.wheres)
		var err error
		count, err = query.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it with its generated id.
// Writes are not retried: a lost acknowledgement would duplicate the row.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	if _, err := q.db.NewInsert().Model(data).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w", err)
	}
	return data, nil
}

// InsertMany inserts multiple records in one statement
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	if _, err := q.db.NewInsert().Model(&data).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w", err)
	}
	return data, nil
}

// Update applies either a column map or a full struct to the matching rows
func (q *QueryBuilder[T]) Update(ctx context.Context, data any) (int, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	var query *bun.UpdateQuery
	switch v := data.(type) {
	case map[string]any:
		if len(v) == 0 {
			return 0, nil
		}
		query = q.db.NewUpdate().Model((*T)(nil))
		for key, value := range v {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
	case *T:
		query = q.db.NewUpdate().Model(v).ExcludeColumn("id")
	default:
		return 0, fmt.Errorf("unsupported data type for update: %T", data)
	}

	query = applyWheres(query, q.wheres)

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

// Delete removes the matching rows
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	ctx, cancel := q.withTimeout(ctx)
	defer cancel()

	query := applyWheres(q.db.NewDelete().Model((*T)(nil)), q.wheres)

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w", err)
	}
	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func toLowerLike(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
