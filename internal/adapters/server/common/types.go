// Package common provides transport-agnostic server contracts used by HTTP and MCP adapters.
package common

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidAnswerRequest reports malformed answer input.
var ErrInvalidAnswerRequest = errors.New("invalid answer request")

// ErrAnswerFailed reports an answer-service failure for a well-formed request.
var ErrAnswerFailed = errors.New("answer request failed")

// ErrBusy reports that a submission is already in flight.
var ErrBusy = errors.New("a submission is already in flight")

// ErrNotFound reports missing transport-visible resources.
var ErrNotFound = errors.New("not found")

// ErrHistoryUnavailable reports missing history backing support.
var ErrHistoryUnavailable = errors.New("history surface unavailable")

// AnswerRequest carries one answer submission across a transport boundary.
type AnswerRequest struct {
	URLs     []string `json:"urls"`
	Question string   `json:"question"`
}

// FieldErrors mirrors form validation results in a transport-friendly shape.
// URLErrors is keyed by the zero-based index into the submitted URL list.
type FieldErrors struct {
	URLErrors     map[int]string `json:"url_errors,omitempty"`
	QuestionError string         `json:"question_error,omitempty"`
	GeneralError  string         `json:"general_error,omitempty"`
}

// SubmissionRecord is the transport view of one completed submission.
type SubmissionRecord struct {
	ID        string    `json:"id"`
	URLs      []string  `json:"urls"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AnswerService is the app-facing surface the transports depend on.
type AnswerService interface {
	AnswerQuestion(ctx context.Context, req AnswerRequest) (SubmissionRecord, error)
	ListHistory(ctx context.Context, limit int) ([]SubmissionRecord, error)
	GetSubmission(ctx context.Context, id string) (SubmissionRecord, error)
}

// ValidationFailure wraps field-level validation errors so transports can
// surface them alongside ErrInvalidAnswerRequest.
type ValidationFailure struct {
	Fields FieldErrors
}

// Error implements error.
func (v *ValidationFailure) Error() string {
	return ErrInvalidAnswerRequest.Error()
}

// Unwrap lets errors.Is match ErrInvalidAnswerRequest.
func (v *ValidationFailure) Unwrap() error {
	return ErrInvalidAnswerRequest
}

// AsValidationFailure extracts a ValidationFailure from an error chain.
func AsValidationFailure(err error) (*ValidationFailure, bool) {
	var v *ValidationFailure
	ok := errors.As(err, &v)
	return v, ok
}
