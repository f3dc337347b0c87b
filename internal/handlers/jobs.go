package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"doclab/internal/contextutil"
	"doclab/internal/storage"
)

// JobHandler serves job status lookups.
type JobHandler struct {
	jobs storage.JobStore
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs storage.JobStore) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// JobResponse represents the status of one job.
type JobResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	FileName       string `json:"file_name"`
	Progress       int    `json:"progress"`
	Message        string `json:"message,omitempty"`
	ProcessedPages int    `json:"processed_pages"`
	TotalChunks    int    `json:"total_chunks"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ServeHTTP handles GET /api/jobs/{id}.
func (h *JobHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	jobID := chi.URLParam(r, "id")
	job, err := h.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load job")
		return
	}

	writeJSON(w, http.StatusOK, JobResponse{
		JobID:          job.ID,
		Status:         string(job.Status),
		FileName:       job.FileName,
		Progress:       job.Progress,
		Message:        job.Message,
		ProcessedPages: job.ProcessedPages,
		TotalChunks:    job.TotalChunks,
		CreatedAt:      job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      job.UpdatedAt.UTC().Format(time.RFC3339),
	})
}
