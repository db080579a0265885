package app

import (
	"errors"
	"fmt"

	"github.com/hylla/fraga/internal/domain"
)

// ErrNotFound and related errors describe validation and runtime failures.
var (
	ErrNotFound           = errors.New("not found")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrSubmissionCanceled = errors.New("submission canceled")
	ErrAnswerFailed       = errors.New("answer service failed")
)

// ValidationError carries the full error set of a failed validation pass so
// callers can surface per-field messages.
type ValidationError struct {
	Errors domain.FormErrors
}

// Error summarizes the failed pass.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("form validation failed (%d url errors)", len(e.Errors.URLErrors))
}

// AsValidationError unwraps a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
