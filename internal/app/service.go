package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hylla/fraga/internal/domain"
)

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Logger is the minimal logging surface the service needs.
type Logger interface {
	Warn(msg string, keyvals ...any)
}

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	HistoryEnabled bool
	HistoryLimit   int
}

// Service orchestrates one submission: re-validate, snapshot the inputs,
// call the answer service, and record the outcome. It owns the defensive
// at-most-one-in-flight guarantee; the UI additionally disables the submit
// control while a request is loading.
type Service struct {
	answerer Answerer
	repo     Repository
	idGen    IDGenerator
	clock    Clock
	log      Logger

	historyEnabled bool
	historyLimit   int

	mu       sync.Mutex
	inFlight bool
}

// NewService constructs a new value for this package.
func NewService(answerer Answerer, repo Repository, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return &Service{
		answerer:       answerer,
		repo:           repo,
		idGen:          idGen,
		clock:          clock,
		historyEnabled: cfg.HistoryEnabled && repo != nil,
		historyLimit:   cfg.HistoryLimit,
	}
}

// SetLogger attaches an optional warning sink for non-fatal side effects.
func (s *Service) SetLogger(log Logger) {
	s.log = log
}

// Submit runs the full submission flow against a snapshot of the form.
//
// Invalid input returns a *ValidationError and never reaches the answer
// service. A second Submit while one is in flight returns
// ErrSubmissionInFlight. Context cancellation surfaces as
// ErrSubmissionCanceled so callers can return to idle without reporting a
// failure. Any other answer-service error is wrapped in ErrAnswerFailed;
// the resolved submission record (including the failed one) is written to
// history when configured.
func (s *Service) Submit(ctx context.Context, form domain.Form) (domain.Submission, error) {
	if ok, errs := domain.ValidateForm(form); !ok {
		return domain.Submission{}, &ValidationError{Errors: errs}
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.Submission{}, ErrSubmissionInFlight
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// The request input is fixed here; later edits to the form cannot
	// affect the in-flight call.
	urls := form.ValidURLs()
	question := form.TrimmedQuestion()

	answer, err := s.answerer.Answer(ctx, urls, question)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			return domain.Submission{}, ErrSubmissionCanceled
		}
		failed, buildErr := domain.NewSubmission(domain.SubmissionInput{
			ID:            s.idGen(),
			URLs:          urls,
			Question:      question,
			Status:        domain.SubmissionFailed,
			FailureReason: err.Error(),
		}, s.clock())
		if buildErr == nil {
			s.recordHistory(ctx, failed)
		}
		return failed, errors.Join(ErrAnswerFailed, err)
	}

	sub, err := domain.NewSubmission(domain.SubmissionInput{
		ID:       s.idGen(),
		URLs:     urls,
		Question: question,
		Answer:   answer,
		Status:   domain.SubmissionSucceeded,
	}, s.clock())
	if err != nil {
		return domain.Submission{}, err
	}
	s.recordHistory(ctx, sub)
	return sub, nil
}

// History returns the most recent submissions, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.Submission, error) {
	if !s.historyEnabled {
		return nil, nil
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.repo.ListSubmissions(ctx, limit)
}

// GetSubmission returns one stored submission by id.
func (s *Service) GetSubmission(ctx context.Context, id string) (domain.Submission, error) {
	if !s.historyEnabled {
		return domain.Submission{}, ErrNotFound
	}
	return s.repo.GetSubmission(ctx, id)
}

// recordHistory persists one resolved submission. History writes never turn
// a resolved submission into a failure; they only log.
func (s *Service) recordHistory(ctx context.Context, sub domain.Submission) {
	if !s.historyEnabled {
		return
	}
	if err := s.repo.SaveSubmission(ctx, sub); err != nil && s.log != nil {
		s.log.Warn("history write failed", "submission_id", sub.ID, "err", err)
	}
}
