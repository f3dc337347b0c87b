package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_job_store.go -package=mocks doclab/internal/storage JobStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// JobStore defines the interface for job storage operations.
type JobStore interface {
	// Create inserts a new job. The job.ID must be set (UUID) before calling.
	Create(ctx context.Context, job *JobRecord) error
	// GetByID gets a job by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*JobRecord, error)
	// SetStatus updates a job's status.
	SetStatus(ctx context.Context, id string, status JobStatus) error
	// UpdateProgress records a progress milestone with its message.
	UpdateProgress(ctx context.Context, id string, progress int, message string) error
	// MarkCompleted sets status completed, progress 100, final counts, and clears the message.
	MarkCompleted(ctx context.Context, id string, processedPages, totalChunks int) error
	// MarkFailed sets status failed with the error message.
	MarkFailed(ctx context.Context, id string, errorMessage string) error
}

// JobRepo provides methods for job operations.
// It implements the JobStore interface.
type JobRepo struct {
	db DBTX
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db DBTX) *JobRepo {
	return &JobRepo{db: db}
}

// Create inserts a new job. The job.ID must be set (UUID) before calling.
func (r *JobRepo) Create(ctx context.Context, job *JobRecord) error {
	if job.Status == "" {
		job.Status = JobQueued
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO jobs (id, status, file_name, progress, message) VALUES (?, ?, ?, ?, ?)",
		job.ID, string(job.Status), job.FileName, job.Progress, job.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetByID gets a job by its ID. Returns ErrNotFound if not found.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*JobRecord, error) {
	var job JobRecord
	var status string
	var message sql.NullString
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, status, file_name, progress, message, processed_pages, total_chunks, created_at, updated_at
		 FROM jobs WHERE id = ?`,
		id,
	).Scan(&job.ID, &status, &job.FileName, &job.Progress, &message,
		&job.ProcessedPages, &job.TotalChunks, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}

	job.Status = JobStatus(status)
	job.Message = message.String
	job.CreatedAt = parseSQLiteTime(createdAt)
	job.UpdatedAt = parseSQLiteTime(updatedAt)
	return &job, nil
}

// SetStatus updates a job's status.
func (r *JobRepo) SetStatus(ctx context.Context, id string, status JobStatus) error {
	return r.update(ctx,
		"UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(status), id)
}

// UpdateProgress records a progress milestone with its message.
func (r *JobRepo) UpdateProgress(ctx context.Context, id string, progress int, message string) error {
	return r.update(ctx,
		"UPDATE jobs SET progress = ?, message = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		progress, message, id)
}

// MarkCompleted sets status completed, progress 100, final counts, and clears the message.
func (r *JobRepo) MarkCompleted(ctx context.Context, id string, processedPages, totalChunks int) error {
	return r.update(ctx,
		`UPDATE jobs SET status = ?, progress = 100, processed_pages = ?, total_chunks = ?,
		 message = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(JobCompleted), processedPages, totalChunks, id)
}

// MarkFailed sets status failed with the error message.
func (r *JobRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	return r.update(ctx,
		"UPDATE jobs SET status = ?, message = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(JobFailed), errorMessage, id)
}

func (r *JobRepo) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// parseSQLiteTime parses the DATETIME strings SQLite hands back.
func parseSQLiteTime(s string) time.Time {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
