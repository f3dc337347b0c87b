package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"doclab/internal/contextutil"
	"doclab/internal/storage"
)

// DocumentHandler serves read access to processed documents, their pages,
// and their chunks.
type DocumentHandler struct {
	docs   storage.DocumentStore
	pages  storage.PageStore
	blocks storage.BlockStore
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docs storage.DocumentStore, pages storage.PageStore, blocks storage.BlockStore) *DocumentHandler {
	return &DocumentHandler{docs: docs, pages: pages, blocks: blocks}
}

// DocumentResponse represents one processed document.
type DocumentResponse struct {
	ID             string  `json:"id"`
	JobID          string  `json:"job_id"`
	Name           string  `json:"name"`
	Title          string  `json:"title,omitempty"`
	FileHash       string  `json:"file_hash,omitempty"`
	NumPages       int     `json:"num_pages"`
	RuntimeSeconds float64 `json:"runtime_seconds,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// PageResponse represents one page and its chunks.
type PageResponse struct {
	ID         string          `json:"id"`
	DocumentID string          `json:"pdf_id"`
	PageNum    int             `json:"page_num"`
	Markdown   string          `json:"markdown"`
	HTML       string          `json:"html"`
	NumBlocks  int             `json:"num_blocks"`
	Chunks     []ChunkResponse `json:"chunks"`
}

// ChunkResponse represents one semantic block of a page.
type ChunkResponse struct {
	ID               string            `json:"id"`
	DocumentID       string            `json:"pdf_id"`
	PageID           string            `json:"page_id"`
	BlockID          string            `json:"block_id"`
	BlockType        string            `json:"block_type"`
	Text             string            `json:"text"`
	HTML             string            `json:"html"`
	Images           map[string]string `json:"images,omitempty"`
	BBox             []float64         `json:"bbox,omitempty"`
	Polygon          [][]float64       `json:"polygon,omitempty"`
	SectionHierarchy map[string]string `json:"section_hierarchy,omitempty"`
}

// List handles GET /api/datalab/pdfs.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	docs, err := h.docs.List(ctx, limit, offset)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toDocumentResponse(doc))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/datalab/pdfs/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	doc, err := h.docs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load document", "document_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load document")
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// GetPage handles GET /api/datalab/pdfs/{id}/pages/{page_num}.
func (h *DocumentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	pageNum, err := strconv.Atoi(chi.URLParam(r, "page_num"))
	if err != nil || pageNum < 0 {
		writeError(w, http.StatusBadRequest, "Invalid page number")
		return
	}

	page, err := h.pages.GetByDocumentAndNum(ctx, id, pageNum)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Page not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load page",
			"document_id", id, "page_num", pageNum, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load page")
		return
	}

	blocks, err := h.blocks.ListByPage(ctx, page.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load page blocks", "page_id", page.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load page blocks")
		return
	}

	resp := PageResponse{
		ID:         page.ID,
		DocumentID: page.DocumentID,
		PageNum:    page.PageNum,
		Markdown:   page.Markdown,
		HTML:       page.HTML,
		NumBlocks:  page.NumBlocks,
		Chunks:     make([]ChunkResponse, 0, len(blocks)),
	}
	for _, block := range blocks {
		resp.Chunks = append(resp.Chunks, toChunkResponse(block))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetChunk handles GET /api/datalab/chunks/{id}.
func (h *DocumentHandler) GetChunk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	block, err := h.blocks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Chunk not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load chunk", "chunk_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load chunk")
		return
	}
	writeJSON(w, http.StatusOK, toChunkResponse(block))
}

func toDocumentResponse(doc *storage.DocumentRecord) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID,
		JobID:          doc.JobID,
		Name:           doc.Name,
		Title:          doc.Title,
		FileHash:       doc.FileHash,
		NumPages:       doc.NumPages,
		RuntimeSeconds: doc.RuntimeSeconds,
		CreatedAt:      doc.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toChunkResponse(block *storage.BlockRecord) ChunkResponse {
	return ChunkResponse{
		ID:               block.ID,
		DocumentID:       block.DocumentID,
		PageID:           block.PageID,
		BlockID:          block.BlockID,
		BlockType:        block.BlockType,
		Text:             block.Text,
		HTML:             block.HTML,
		Images:           block.Images,
		BBox:             block.BBox,
		Polygon:          block.Polygon,
		SectionHierarchy: block.SectionHierarchy,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
