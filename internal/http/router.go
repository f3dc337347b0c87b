package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"doclab/internal/handlers"
	"doclab/internal/llm"
	"doclab/internal/storage"
	"doclab/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Jobs       storage.JobStore
	Documents  storage.DocumentStore
	Pages      storage.PageStore
	Blocks     storage.BlockStore
	Embedder   llm.Embedder
	Index      vectorstore.VectorStore
	Checker    handlers.CollectionChecker
	Queue      handlers.Enqueuer
	Collection string

	UploadDir     string
	MaxFileSizeMB int
}

// NewRouter creates the HTTP router wiring all API endpoints.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	uploadHandler := handlers.NewUploadHandler(deps.Jobs, deps.Queue, deps.UploadDir, deps.MaxFileSizeMB)
	jobHandler := handlers.NewJobHandler(deps.Jobs)
	documentHandler := handlers.NewDocumentHandler(deps.Documents, deps.Pages, deps.Blocks)
	searchHandler := handlers.NewSearchHandler(deps.Embedder, deps.Index, deps.Blocks, deps.Collection)
	healthHandler := handlers.NewHealthHandler(deps.Checker, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/jobs/{id}", jobHandler)

		r.Route("/datalab", func(r chi.Router) {
			r.Method(http.MethodPost, "/upload", uploadHandler)
			r.Method(http.MethodGet, "/search", searchHandler)
			r.Get("/pdfs", documentHandler.List)
			r.Get("/pdfs/{id}", documentHandler.Get)
			r.Get("/pdfs/{id}/pages/{page_num}", documentHandler.GetPage)
			r.Get("/chunks/{id}", documentHandler.GetChunk)
		})
	})

	return r
}
