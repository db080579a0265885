package domain

import (
	"testing"
	"time"
)

func TestNewSubmission(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sub, err := NewSubmission(SubmissionInput{
		ID:       "s1",
		URLs:     []string{" https://example.com "},
		Question: "  What is this page about?  ",
		Answer:   "A test page.",
		Status:   SubmissionSucceeded,
	}, now)
	if err != nil {
		t.Fatalf("NewSubmission() error = %v", err)
	}
	if sub.URLs[0] != "https://example.com" {
		t.Fatalf("expected trimmed url, got %q", sub.URLs[0])
	}
	if sub.Question != "What is this page about?" {
		t.Fatalf("expected trimmed question, got %q", sub.Question)
	}
	if !sub.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, sub.CreatedAt)
	}
}

func TestNewSubmissionValidation(t *testing.T) {
	now := time.Now()
	if _, err := NewSubmission(SubmissionInput{URLs: []string{"https://a.example"}, Question: "q"}, now); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := NewSubmission(SubmissionInput{ID: "s", URLs: []string{"https://a.example"}, Question: "  "}, now); err != ErrInvalidQuestion {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	if _, err := NewSubmission(SubmissionInput{ID: "s", Question: "q"}, now); err != ErrNoURLs {
		t.Fatalf("expected ErrNoURLs, got %v", err)
	}
	if _, err := NewSubmission(SubmissionInput{ID: "s", URLs: []string{"nope"}, Question: "q"}, now); err != ErrInvalidURL {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if _, err := NewSubmission(SubmissionInput{ID: "s", URLs: []string{"https://a.example"}, Question: "q", Status: "weird"}, now); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		PhaseIdle:      "idle",
		PhaseValidating: "validating",
		PhaseLoading:   "loading",
		PhaseSucceeded: "succeeded",
		PhaseFailed:    "failed",
		Phase(99):      "unknown",
	}
	for phase, want := range cases {
		if phase.String() != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", phase, phase.String(), want)
		}
	}
}
