package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("already exists")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// ErrUnavailable is returned while the store is not accepting orders.
var ErrUnavailable = errors.New("unavailable")

// RuleError is a business rule rejection that the client can act on.
type RuleError struct {
	Code    string
	Message string
	Data    map[string]any
}

func (e *RuleError) Error() string {
	return e.Message
}

func NewRuleError(code, message string) *RuleError {
	return &RuleError{Code: code, Message: message}
}

// NotFoundError names the missing resource while still matching ErrNotFound.
type NotFoundError struct {
	Resource string
	Key      any
	Message  string // shown instead of the generated text when set
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Key == nil {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %v not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(resource string, key any) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// ConflictError is a unique-key violation with a message for the client.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict replaces a unique-key violation in err with message. Other errors pass through.
func Conflict(err error, message string) error {
	if errors.Is(err, ErrConflict) {
		return &ConflictError{Message: message}
	}
	return err
}

// UnavailableError carries the message shown while the store is closed.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// MapDBError translates driver errors into the package sentinels.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapSQLState(pgErr.Code, err)
	}

	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		return mapSQLState(drvErr.Field('C'), err)
	}

	// SQLite reports constraint failures only through the message
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}

	return err
}

func mapSQLState(code string, err error) error {
	switch code {
	case "23505": // unique_violation
		return ErrConflict
	case "P0002": // no_data_found
		return ErrNotFound
	}
	return err
}
