package rental

import (
	"errors"
	"fmt"
)

// Sentinel outcomes of the booking flow.  Exhausted fleet capacity is a
// recognized business state, not a fault; handlers route it to the
// "fully booked" page rather than a 5xx.
var (
	ErrNoCarsAvailable    = errors.New("no cars of the requested type available")
	ErrNoDriversAvailable = errors.New("no drivers available")
	ErrBookingContextLost = errors.New("booking context lost")
	ErrDuplicatePayment   = errors.New("booking already paid")
	ErrMasterPassword     = errors.New("incorrect master password")
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	Err    error
}

func (e NotFoundError) Error() string {
	if e.Entity == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// IncompleteRecordError is returned by the invoice assembler when one of
// the joined records is missing.
type IncompleteRecordError struct {
	Entity string
}

func (e IncompleteRecordError) Error() string {
	return fmt.Sprintf("incomplete record: missing %s", e.Entity)
}

// ValidationError carries the full list of field-level messages produced
// by a form validator so callers can surface all of them at once.
type ValidationError struct {
	Messages []string
}

func (e ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return "validation failed"
	}
	return e.Messages[0]
}

// ConflictError reports a uniqueness violation on create.
type ConflictError struct {
	Resource string
	Msg      string
}

func (e ConflictError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource != "" {
		return fmt.Sprintf("%s already exists", e.Resource)
	}
	return "conflict"
}

func IsNotFound(err error) bool {
	var t NotFoundError
	return errors.As(err, &t)
}

func IsValidation(err error) bool {
	var t ValidationError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t ConflictError
	return errors.As(err, &t)
}
