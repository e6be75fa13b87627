// Package errs holds the error kinds shared by every domain package.
//
// Domain packages declare their own sentinels wrapping one of these kinds, so
// callers can branch either on the precise condition (account.ErrAccountNotFound)
// or on the kind (errs.ErrNotFound).
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyLinked      = errors.New("already linked")
	ErrNameMismatch       = errors.New("last names do not match")
	ErrDuplicateRequest   = errors.New("duplicate request")
	ErrAlreadyProcessed   = errors.New("already processed")
	ErrInvalidDecision    = errors.New("invalid decision")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidParty       = errors.New("invalid party")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreFailure       = errors.New("store failure")
)

// Validation builds a ValidationError carrying a caller-facing message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Store marks err as a StoreFailure. Errors that already carry a kind are
// returned unchanged.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}

// Classified reports whether err belongs to one of the known kinds.
func Classified(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

var kinds = []error{
	ErrNotFound,
	ErrAlreadyLinked,
	ErrNameMismatch,
	ErrDuplicateRequest,
	ErrAlreadyProcessed,
	ErrInvalidDecision,
	ErrInvalidAmount,
	ErrInvalidParty,
	ErrValidation,
	ErrInvalidCredentials,
	ErrStoreFailure,
}
