// Package sqlite persists submission history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hylla/fraga/internal/app"
	"github.com/hylla/fraga/internal/domain"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Repository stores submissions in SQLite and satisfies app.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (and migrates) the database file at path, creating parent
// directories as needed.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			id TEXT PRIMARY KEY,
			urls_json TEXT NOT NULL DEFAULT '[]',
			question TEXT NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			failure_reason TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC, id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// SaveSubmission inserts one submission record.
func (r *Repository) SaveSubmission(ctx context.Context, s domain.Submission) error {
	urlsJSON, err := json.Marshal(s.URLs)
	if err != nil {
		return fmt.Errorf("encode submission urls: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO submissions(id, urls_json, question, answer, status, failure_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, string(urlsJSON), s.Question, s.Answer, string(s.Status), s.FailureReason, ts(s.CreatedAt))
	return err
}

// ListSubmissions returns the most recent submissions, newest first.
// limit <= 0 means no limit.
func (r *Repository) ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	query := `
		SELECT id, urls_json, question, answer, status, failure_reason, created_at
		FROM submissions
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSubmission returns one submission by ID.
func (r *Repository) GetSubmission(ctx context.Context, id string) (domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, urls_json, question, answer, status, failure_reason, created_at
		FROM submissions
		WHERE id = ?
	`, id)
	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Submission{}, app.ErrNotFound
	}
	return s, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (domain.Submission, error) {
	var (
		s         domain.Submission
		urlsJSON  string
		status    string
		createdAt string
	)
	if err := row.Scan(&s.ID, &urlsJSON, &s.Question, &s.Answer, &status, &s.FailureReason, &createdAt); err != nil {
		return domain.Submission{}, err
	}
	if err := json.Unmarshal([]byte(urlsJSON), &s.URLs); err != nil {
		return domain.Submission{}, fmt.Errorf("decode submission urls: %w", err)
	}
	s.Status = domain.SubmissionStatus(status)
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("parse submission created_at: %w", err)
	}
	s.CreatedAt = t
	return s, nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
