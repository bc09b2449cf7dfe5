package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field is set for uniqueness violations so the HTTP layer can report it.
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by every bounded context.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidID     = "INVALID_ID"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInvalidState  = "INVALID_STATE"
	CodeBusinessRule  = "BUSINESS_RULE"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "You are not authorized!")
	ErrForbidden     = NewDomainError(CodeForbidden, "You do not have permission to access this resource")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NotFound returns a not-found error naming the missing resource, e.g. "Order not found".
func NotFound(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// Duplicate returns a uniqueness violation for field.
func Duplicate(field string, value any) *DomainError {
	return &DomainError{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("%s already exists", field),
		Field:   field,
		Value:   value,
	}
}

// Validation returns a schema-level validation failure.
func Validation(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// InvalidID reports an identifier that could not be parsed.
func InvalidID(path, value string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidID,
		Message: "Invalid ID format",
		Field:   path,
		Value:   value,
	}
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err carries the ALREADY_EXISTS code.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// BusinessRule reports a request that is well-formed but violates a domain rule.
func BusinessRule(message string) *DomainError {
	return NewDomainError(CodeBusinessRule, message)
}

// Forbidden returns a FORBIDDEN error with a specific message.
func Forbidden(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// Unauthorized returns an UNAUTHORIZED error with a specific message.
func Unauthorized(message string) *DomainError {
	return NewDomainError(CodeUnauthorized, message)
}
