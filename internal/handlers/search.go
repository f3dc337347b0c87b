package handlers

import (
	"net/http"
	"strings"

	"doclab/internal/contextutil"
	"doclab/internal/llm"
	"doclab/internal/storage"
	"doclab/internal/vectorstore"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// SearchHandler embeds a query and runs similarity search over the indexed
// chunks, joining the hits back to their database rows.
type SearchHandler struct {
	embedder   llm.Embedder
	index      vectorstore.VectorStore
	blocks     storage.BlockStore
	collection string
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(embedder llm.Embedder, index vectorstore.VectorStore, blocks storage.BlockStore, collection string) *SearchHandler {
	return &SearchHandler{
		embedder:   embedder,
		index:      index,
		blocks:     blocks,
		collection: collection,
	}
}

// SearchHit represents one search result.
type SearchHit struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"pdf_id"`
	PageID     string  `json:"page_id,omitempty"`
	PageNum    int     `json:"page_num"`
	BlockType  string  `json:"block_type"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
}

// SearchResponse represents the response for a search query.
type SearchResponse struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}

// ServeHTTP handles GET /api/datalab/search?q=...&limit=...
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Missing 'q' query parameter")
		return
	}
	limit := queryInt(r, "limit", defaultSearchLimit)
	if limit == 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	// Optional filters narrowing the search scope.
	filters := make(map[string]any)
	if docID := r.URL.Query().Get("pdf_id"); docID != "" {
		filters["document_id"] = docID
	}
	if blockType := r.URL.Query().Get("block_type"); blockType != "" {
		filters["block_type"] = blockType
	}

	embeddings, err := h.embedder.EmbedTexts(ctx, []string{query})
	if err != nil || len(embeddings) != 1 {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to embed query")
		return
	}

	hits, err := h.index.Search(ctx, h.collection, embeddings[0], limit, filters)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	results := h.joinHits(r, hits)
	logger.InfoContext(ctx, "search completed", "query", query, "hits", len(results))
	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

// joinHits resolves index payloads against the blocks table. Hits whose
// block row has disappeared fall back to the payload copy of the text.
func (h *SearchHandler) joinHits(r *http.Request, hits []vectorstore.SearchResult) []SearchHit {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		if id, ok := hit.Meta["chunk_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	rows, err := h.blocks.ListByIDs(ctx, ids)
	if err != nil {
		logger.WarnContext(ctx, "failed to join search hits to blocks", "error", err)
		rows = nil
	}

	results := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		out := SearchHit{
			ChunkID:    metaString(hit.Meta, "chunk_id"),
			DocumentID: metaString(hit.Meta, "pdf_id"),
			PageID:     metaString(hit.Meta, "page_id"),
			PageNum:    metaInt(hit.Meta, "page_num"),
			BlockType:  metaString(hit.Meta, "block_type"),
			Text:       metaString(hit.Meta, "text"),
			Score:      hit.Score,
		}
		if row, ok := rows[out.ChunkID]; ok {
			out.Text = row.Text
			out.BlockType = row.BlockType
		}
		results = append(results, out)
	}
	return results
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
