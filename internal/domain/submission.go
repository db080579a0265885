package domain

import (
	"strings"
	"time"
)

// Phase is the submission lifecycle state. Exactly one phase is current at
// any time; transitions happen only through the submission flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

// String returns the phase label used in status output.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmissionStatus records how one submission resolved.
type SubmissionStatus string

const (
	SubmissionSucceeded SubmissionStatus = "succeeded"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is one completed ask: the snapshot of inputs taken when the
// request left the form, plus its outcome. FailureReason keeps the answer
// service's opaque detail for the history log; the form itself only ever
// shows the generic submission message.
type Submission struct {
	ID            string
	URLs          []string
	Question      string
	Answer        string
	Status        SubmissionStatus
	FailureReason string
	CreatedAt     time.Time
}

// SubmissionInput carries the fields needed to build one submission record.
type SubmissionInput struct {
	ID            string
	URLs          []string
	Question      string
	Answer        string
	Status        SubmissionStatus
	FailureReason string
}

// NewSubmission validates and builds one submission record.
func NewSubmission(in SubmissionInput, now time.Time) (Submission, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Question = strings.TrimSpace(in.Question)

	if in.ID == "" {
		return Submission{}, ErrInvalidID
	}
	if in.Question == "" {
		return Submission{}, ErrInvalidQuestion
	}
	if len(in.URLs) == 0 {
		return Submission{}, ErrNoURLs
	}
	urls := make([]string, 0, len(in.URLs))
	for _, raw := range in.URLs {
		if err := ValidateURL(raw); err != nil {
			return Submission{}, err
		}
		urls = append(urls, strings.TrimSpace(raw))
	}
	if in.Status == "" {
		in.Status = SubmissionSucceeded
	}
	switch in.Status {
	case SubmissionSucceeded, SubmissionFailed:
	default:
		return Submission{}, ErrInvalidStatus
	}

	return Submission{
		ID:            in.ID,
		URLs:          urls,
		Question:      in.Question,
		Answer:        in.Answer,
		Status:        in.Status,
		FailureReason: strings.TrimSpace(in.FailureReason),
		CreatedAt:     now.UTC(),
	}, nil
}
