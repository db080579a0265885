package domain

import "errors"

var (
	ErrEntryIndex      = errors.New("entry index out of range")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrInvalidStatus   = errors.New("invalid submission status")
	ErrNoURLs          = errors.New("at least one url is required")
)
