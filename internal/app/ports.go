package app

import (
	"context"

	"github.com/hylla/fraga/internal/domain"
)

// Answerer is the external answer-producing service. The service is only
// ever called with a non-empty list of valid absolute http/https URLs and a
// non-empty trimmed question; it may assume those preconditions hold.
type Answerer interface {
	Answer(ctx context.Context, urls []string, question string) (string, error)
}

// Repository persists submission history.
type Repository interface {
	SaveSubmission(context.Context, domain.Submission) error
	ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error)
	GetSubmission(ctx context.Context, id string) (domain.Submission, error)
}
