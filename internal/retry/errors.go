package retry

import (
	"errors"

	"romcurator/internal/catalog"
)

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }

func (e *transientError) Unwrap() error { return e.err }

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Transient marks err as safe to retry.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// Permanent marks err as not retryable even when an inner layer tagged it
// transient.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsTransient reports whether err should be retried. Permanent markers win
// over transient ones; store contention errors count as transient without
// explicit marking.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var perm *permanentError
	if errors.As(err, &perm) {
		return false
	}
	var tr *transientError
	if errors.As(err, &tr) {
		return true
	}
	return errors.Is(err, catalog.ErrTransient)
}
