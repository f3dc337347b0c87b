package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"doclab/internal/storage"
	storage_mocks "doclab/internal/storage/mocks"
)

func jobRouter(handler *JobHandler) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/jobs/{id}", handler)
	return r
}

func TestJobHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := storage_mocks.NewMockJobStore(ctrl)
	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(&storage.JobRecord{
		ID:             "job-1",
		Status:         storage.JobCompleted,
		FileName:       "report.pdf",
		Progress:       100,
		ProcessedPages: 3,
		TotalChunks:    17,
		CreatedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, 6, 1, 12, 3, 0, 0, time.UTC),
	}, nil)

	router := jobRouter(NewJobHandler(jobs))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp JobResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID != "job-1" || resp.Status != "completed" {
		t.Errorf("response = %+v", resp)
	}
	if resp.ProcessedPages != 3 || resp.TotalChunks != 17 {
		t.Errorf("counts = %d/%d, want 3/17", resp.ProcessedPages, resp.TotalChunks)
	}
}

func TestJobHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jobs := storage_mocks.NewMockJobStore(ctrl)
	jobs.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	router := jobRouter(NewJobHandler(jobs))
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
