package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies a failure for the HTTP error mapper.
type Kind int

const (
	KindDatabase Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	default:
		return "database"
	}
}

const (
	DefaultValidationMessage = "Data validation error has occurred"
	DefaultNotFoundMessage   = "Resource not found"
	DefaultDuplicateMessage  = "Resource already exists"
	DefaultDatabaseMessage   = "Database error has occurred"
)

// Error is a labeled application failure. Message is safe to show to clients;
// Err holds the underlying cause, which is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Kind: kind, Message: message}
}

// Validation reports malformed, missing or out-of-range client data.
func Validation(message string) *Error {
	return newError(KindValidation, message, DefaultValidationMessage)
}

// ValidationField is Validation with the offending field attached.
func ValidationField(field, message string) *Error {
	e := Validation(message)
	e.Field = field
	return e
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return newError(KindNotFound, message, DefaultNotFoundMessage)
}

// Duplicate reports a unique-key collision.
func Duplicate(message string) *Error {
	return newError(KindDuplicate, message, DefaultDuplicateMessage)
}

// Database wraps a store failure. The cause is kept for logs only.
func Database(err error) *Error {
	e := newError(KindDatabase, "", DefaultDatabaseMessage)
	e.Err = err
	return e
}

// KindOf returns the kind of the first *Error in err's chain.
// Errors outside the taxonomy are reported as KindDatabase.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDatabase
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// FromStore translates a gorm error into the taxonomy. notFound is used as
// the message when the record does not exist. A nil error stays nil and
// errors already in the taxonomy pass through untouched.
func FromStore(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		e := NotFound(notFound)
		e.Err = err
		return e
	case errors.Is(err, gorm.ErrDuplicatedKey):
		e := Duplicate("")
		e.Err = err
		return e
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		e := Validation("Resource is referenced by other records or references a missing record")
		e.Err = err
		return e
	default:
		return Database(err)
	}
}
