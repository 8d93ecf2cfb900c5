// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"
	"strings"

	"harnect/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (and mocked drivers) surface the violation as text only.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// isTransientError checks if a DB error is a retryable transaction abort:
// serialization failure (40001), deadlock (40P01), or a lock/statement timeout.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03", "57014":
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40p01") ||
		strings.Contains(msg, "serialization failure") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "database is locked")
}

// storageError maps a raw gorm error onto the application taxonomy. Callers
// handle not-found and unique-violation cases before reaching for this.
func storageError(err error) error {
	if isTransientError(err) {
		return models.NewTransientStorageError(err)
	}
	return models.NewInternalError(err)
}
