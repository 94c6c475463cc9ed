// Package apperr defines the closed error taxonomy surfaced by the
// marketplace core: validation, not-found, permission, conflict and cascade
// failures. Handlers translate these into HTTP status codes; everything else
// is a 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// PermissionError reports a caller lacking the role required for an
// operation.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string { return e.Msg }

// Permissionf builds a PermissionError.
func Permissionf(format string, args ...interface{}) error {
	return &PermissionError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation such as a duplicate profile
// per user per variant.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflictf builds a ConflictError.
func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// CascadeFailure reports that dependent-record cleanup could not run to
// completion. Completed lists the deletions that succeeded before the
// failure, so partial failure is distinguishable from total failure.
type CascadeFailure struct {
	UserID    uint
	Completed []string
	Failed    string
	Err       error
}

func (e *CascadeFailure) Error() string {
	return fmt.Sprintf("cascade delete for user %d failed at %s (completed: %d): %v",
		e.UserID, e.Failed, len(e.Completed), e.Err)
}

func (e *CascadeFailure) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPermission reports whether err is a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// HTTPStatus maps a taxonomy error to its HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsPermission(err):
		return http.StatusForbidden
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
