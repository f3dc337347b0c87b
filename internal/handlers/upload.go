package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"doclab/internal/contextutil"
	"doclab/internal/storage"
	"doclab/internal/worker"
)

// Enqueuer hands accepted uploads to the background workers.
type Enqueuer interface {
	Enqueue(task worker.Task) error
}

// UploadHandler accepts a PDF upload, creates a queued job, and hands the
// file to the worker pool.
type UploadHandler struct {
	jobs        storage.JobStore
	queue       Enqueuer
	uploadDir   string
	maxFileSize int64 // bytes
}

// NewUploadHandler creates a new UploadHandler. maxFileSizeMB bounds the
// whole request body.
func NewUploadHandler(jobs storage.JobStore, queue Enqueuer, uploadDir string, maxFileSizeMB int) *UploadHandler {
	return &UploadHandler{
		jobs:        jobs,
		queue:       queue,
		uploadDir:   uploadDir,
		maxFileSize: int64(maxFileSizeMB) << 20,
	}
}

// UploadResponse represents the response for an accepted upload.
type UploadResponse struct {
	JobID     string   `json:"job_id"`
	Status    string   `json:"status"`
	StatusURL string   `json:"status_url"`
	Files     []string `json:"files"`
}

// ServeHTTP handles POST multipart uploads on /api/datalab/upload.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WarnContext(ctx, "rejected oversized upload", "limit_bytes", h.maxFileSize)
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File exceeds the %dMB size limit", h.maxFileSize>>20))
			return
		}
		logger.WarnContext(ctx, "invalid upload request", "error", err)
		writeError(w, http.StatusBadRequest, "Missing or invalid 'file' form field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		logger.WarnContext(ctx, "rejected non-PDF upload",
			"filename", header.Filename, "content_type", header.Header.Get("Content-Type"))
		writeError(w, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}

	jobID := uuid.New().String()
	fileName := filepath.Base(header.Filename)
	tempPath := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", jobID, fileName))

	if err := saveUpload(file, tempPath); err != nil {
		logger.ErrorContext(ctx, "failed to save upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	job := &storage.JobRecord{
		ID:       jobID,
		Status:   storage.JobQueued,
		FileName: fileName,
	}
	if err := h.jobs.Create(ctx, job); err != nil {
		logger.ErrorContext(ctx, "failed to create job", "error", err)
		_ = os.Remove(tempPath)
		writeError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	if err := h.queue.Enqueue(worker.Task{JobID: jobID, FilePath: tempPath}); err != nil {
		logger.ErrorContext(ctx, "failed to enqueue job", "job_id", jobID, "error", err)
		_ = os.Remove(tempPath)
		if markErr := h.jobs.MarkFailed(ctx, jobID, "job queue is full"); markErr != nil {
			logger.ErrorContext(ctx, "failed to mark job failed", "job_id", jobID, "error", markErr)
		}
		writeError(w, http.StatusServiceUnavailable, "Job queue is full, try again later")
		return
	}

	logger.InfoContext(ctx, "upload accepted", "job_id", jobID, "filename", fileName)
	writeJSON(w, http.StatusAccepted, UploadResponse{
		JobID:     jobID,
		Status:    string(storage.JobQueued),
		StatusURL: fmt.Sprintf("/api/jobs/%s", jobID),
		Files:     []string{fileName},
	})
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return contentType == "application/pdf"
}

func saveUpload(src io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
