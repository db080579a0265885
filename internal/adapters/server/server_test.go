package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hylla/fraga/internal/adapters/server/common"
)

type stubAnswerService struct{}

func (stubAnswerService) AnswerQuestion(context.Context, common.AnswerRequest) (common.SubmissionRecord, error) {
	return common.SubmissionRecord{ID: "sub-1", Status: "succeeded"}, nil
}

func (stubAnswerService) ListHistory(context.Context, int) ([]common.SubmissionRecord, error) {
	return nil, nil
}

func (stubAnswerService) GetSubmission(context.Context, string) (common.SubmissionRecord, error) {
	return common.SubmissionRecord{}, common.ErrNotFound
}

func TestNewHandlerRoutesHealthAndAPI(t *testing.T) {
	handler, cfg, err := NewHandler(Config{}, Dependencies{Answers: stubAnswerService{}})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if cfg.APIEndpoint != "/api/v1" || cfg.MCPEndpoint != "/mcp" {
		t.Fatalf("unexpected normalized endpoints %+v", cfg)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"urls":["https://example.com"],"question":"q"}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/answers", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("answers = %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewHandlerRequiresAnswerService(t *testing.T) {
	if _, _, err := NewHandler(Config{}, Dependencies{}); err == nil {
		t.Fatal("expected missing-dependency error")
	}
}

func TestNormalizeConfigRejectsEndpointCollision(t *testing.T) {
	if _, err := normalizeConfig(Config{APIEndpoint: "/same", MCPEndpoint: "same/"}); err == nil {
		t.Fatal("expected collision error")
	}
}

func TestNormalizeEndpointDefaultsAndTrims(t *testing.T) {
	cases := []struct {
		in       string
		fallback string
		want     string
	}{
		{"", "/api/v1", "/api/v1"},
		{"api/v2", "/api/v1", "/api/v2"},
		{"/mcp/", "/mcp", "/mcp"},
		{"/", "/mcp", "/mcp"},
	}
	for _, tc := range cases {
		if got := normalizeEndpoint(tc.in, tc.fallback); got != tc.want {
			t.Errorf("normalizeEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
