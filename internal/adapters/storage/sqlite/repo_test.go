package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hylla/fraga/internal/app"
	"github.com/hylla/fraga/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() {
		if _, err := repo.db.ExecContext(context.Background(), `DELETE FROM submissions`); err != nil {
			t.Errorf("cleanup submissions: %v", err)
		}
		if err := repo.Close(); err != nil {
			t.Errorf("close repo: %v", err)
		}
	})
	return repo
}

func sampleSubmission(id string, createdAt time.Time) domain.Submission {
	return domain.Submission{
		ID:        id,
		URLs:      []string{"https://example.com/a", "https://example.com/b"},
		Question:  "What changed?",
		Answer:    "Release notes summary.",
		Status:    domain.SubmissionSucceeded,
		CreatedAt: createdAt,
	}
}

func TestSaveAndGetSubmission(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	want := sampleSubmission("sub-1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if err := repo.SaveSubmission(ctx, want); err != nil {
		t.Fatalf("SaveSubmission: %v", err)
	}

	got, err := repo.GetSubmission(ctx, "sub-1")
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetSubmission = %+v, want %+v", got, want)
	}
}

func TestSaveSubmissionKeepsFailureReason(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	failed := sampleSubmission("sub-failed", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	failed.Answer = ""
	failed.Status = domain.SubmissionFailed
	failed.FailureReason = "dial tcp: connection refused"
	if err := repo.SaveSubmission(ctx, failed); err != nil {
		t.Fatalf("SaveSubmission: %v", err)
	}

	got, err := repo.GetSubmission(ctx, "sub-failed")
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if got.Status != domain.SubmissionFailed || got.FailureReason != failed.FailureReason {
		t.Errorf("got status %q reason %q", got.Status, got.FailureReason)
	}
}

func TestListSubmissionsNewestFirstWithLimit(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"sub-a", "sub-b", "sub-c"} {
		s := sampleSubmission(id, base.Add(time.Duration(i)*time.Minute))
		if err := repo.SaveSubmission(ctx, s); err != nil {
			t.Fatalf("SaveSubmission %s: %v", id, err)
		}
	}

	got, err := repo.ListSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "sub-c" || got[1].ID != "sub-b" {
		t.Errorf("order = [%s %s], want [sub-c sub-b]", got[0].ID, got[1].ID)
	}
}

func TestGetSubmissionNotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetSubmission(context.Background(), "missing")
	if !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("err = %v, want app.ErrNotFound", err)
	}
}
