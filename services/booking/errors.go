package booking

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the expected failure modes of the booking core.
type ErrorKind string

const (
	// KindValidation covers user-correctable input problems (bad phone,
	// unknown service, unknown slot). Surfaced as a conversational retry.
	KindValidation ErrorKind = "validation"
	// KindStorageUnavailable covers transient read failures against the
	// appointment store.
	KindStorageUnavailable ErrorKind = "storage_unavailable"
	// KindPersistenceFailure covers write failures during commit. The booking
	// is not made and the draft stays intact for retry.
	KindPersistenceFailure ErrorKind = "persistence_failure"
	// KindStateViolation covers operations invoked out of sequence, e.g.
	// booking before the summary was confirmed.
	KindStateViolation ErrorKind = "state_violation"
)

// BookingError is a typed expected-condition error.
type BookingError struct {
	Kind    ErrorKind
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(msg string) error {
	return &BookingError{Kind: KindValidation, Message: msg}
}

func NewStorageUnavailableError(msg string) error {
	return &BookingError{Kind: KindStorageUnavailable, Message: msg}
}

func NewPersistenceFailure(msg string) error {
	return &BookingError{Kind: KindPersistenceFailure, Message: msg}
}

func NewStateViolation(msg string) error {
	return &BookingError{Kind: KindStateViolation, Message: msg}
}

// IsKind reports whether err is a BookingError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BookingError
	return errors.As(err, &be) && be.Kind == kind
}
