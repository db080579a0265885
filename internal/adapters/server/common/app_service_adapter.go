package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/hylla/fraga/internal/app"
	"github.com/hylla/fraga/internal/domain"
)

// AppServiceAdapter maps transport contracts onto the app.Service submission APIs.
type AppServiceAdapter struct {
	service *app.Service
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

// AnswerQuestion validates and submits one request through the app service.
func (a *AppServiceAdapter) AnswerQuestion(ctx context.Context, req AnswerRequest) (SubmissionRecord, error) {
	if a == nil || a.service == nil {
		return SubmissionRecord{}, fmt.Errorf("app service adapter is not configured: %w", ErrInvalidAnswerRequest)
	}

	form, err := formFromRequest(req)
	if err != nil {
		return SubmissionRecord{}, err
	}

	sub, err := a.service.Submit(ctx, form)
	if err != nil {
		return SubmissionRecord{}, mapAppError("answer question", err)
	}
	return recordFromSubmission(sub), nil
}

// ListHistory lists recent submissions, newest first.
func (a *AppServiceAdapter) ListHistory(ctx context.Context, limit int) ([]SubmissionRecord, error) {
	if a == nil || a.service == nil {
		return nil, fmt.Errorf("app service adapter is not configured: %w", ErrHistoryUnavailable)
	}
	subs, err := a.service.History(ctx, limit)
	if err != nil {
		return nil, mapAppError("list history", err)
	}
	records := make([]SubmissionRecord, 0, len(subs))
	for _, sub := range subs {
		records = append(records, recordFromSubmission(sub))
	}
	return records, nil
}

// GetSubmission returns one submission by ID.
func (a *AppServiceAdapter) GetSubmission(ctx context.Context, id string) (SubmissionRecord, error) {
	if a == nil || a.service == nil {
		return SubmissionRecord{}, fmt.Errorf("app service adapter is not configured: %w", ErrHistoryUnavailable)
	}
	sub, err := a.service.GetSubmission(ctx, id)
	if err != nil {
		return SubmissionRecord{}, mapAppError("get submission", err)
	}
	return recordFromSubmission(sub), nil
}

// formFromRequest reconstructs the form the submission flow validates. Each
// request URL becomes one entry, so validation indices line up with the
// request's url list.
func formFromRequest(req AnswerRequest) (domain.Form, error) {
	form := domain.NewForm()
	for i, raw := range req.URLs {
		if i > 0 {
			form = form.WithEntryAdded()
		}
		updated, err := form.WithEntryUpdated(i, raw)
		if err != nil {
			return domain.Form{}, fmt.Errorf("build form entry %d: %w", i, errors.Join(ErrInvalidAnswerRequest, err))
		}
		form = updated
	}
	return form.WithQuestion(req.Question), nil
}

func recordFromSubmission(sub domain.Submission) SubmissionRecord {
	return SubmissionRecord{
		ID:        sub.ID,
		URLs:      sub.URLs,
		Question:  sub.Question,
		Answer:    sub.Answer,
		Status:    string(sub.Status),
		CreatedAt: sub.CreatedAt,
	}
}

// mapAppError translates app-level errors into transport sentinels.
func mapAppError(op string, err error) error {
	if vErr, ok := app.AsValidationError(err); ok {
		return &ValidationFailure{Fields: FieldErrors{
			URLErrors:     vErr.Errors.URLErrors,
			QuestionError: vErr.Errors.QuestionError,
			GeneralError:  vErr.Errors.GeneralError,
		}}
	}
	switch {
	case errors.Is(err, app.ErrSubmissionInFlight):
		return fmt.Errorf("%s: %w", op, ErrBusy)
	case errors.Is(err, app.ErrAnswerFailed):
		return fmt.Errorf("%s: %w", op, errors.Join(ErrAnswerFailed, err))
	case errors.Is(err, app.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
