package persistence

import (
	"errors"
	"strings"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// isUniqueViolation recognizes duplicate-key errors from every driver the store runs on
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE "+uniqueViolationCode) ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// translateError maps driver errors onto domain errors.
// resource names the entity for not-found messages, field and value describe the unique key.
func translateError(err error, resource, field string, value any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NotFound(resource)
	case isUniqueViolation(err):
		return shared.Duplicate(field, value)
	default:
		return err
	}
}

// notFound maps gorm.ErrRecordNotFound to shared.NotFound(resource)
func notFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource)
	}
	return err
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
