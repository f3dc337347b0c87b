package pipeline

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stages.go -package=mocks -source=pipeline.go

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"doclab/internal/contextutil"
	"doclab/internal/llm"
	"doclab/internal/ocr"
	"doclab/internal/storage"
	"doclab/internal/vectorstore"
)

// Blocks whose trimmed text is at most this long are persisted but never
// embedded or indexed.
const minIndexableTextLen = 10

// URLAcquirer converts a file into a provider polling URL via the
// automated browser session.
type URLAcquirer interface {
	AcquirePollingURL(ctx context.Context, filePath string, progress ocr.ProgressFunc) (string, error)
}

// ResultPoller converts a polling URL into a terminal provider payload.
type ResultPoller interface {
	Poll(ctx context.Context, url string, progress ocr.ProgressFunc) (*ocr.RawResult, error)
}

// Pipeline runs one OCR job end to end: acquire the polling URL, poll for
// the result, normalize it, persist the document graph, embed the eligible
// blocks, and upsert them into the vector index. Stages are strictly
// sequential; progress lands on the job row at fixed milestones.
type Pipeline struct {
	browser    URLAcquirer
	poller     ResultPoller
	normalizer *ocr.Normalizer
	jobs       storage.JobStore
	ingester   storage.Ingester
	embedder   llm.Embedder
	index      vectorstore.VectorStore
	collection string

	permanentDir string
}

// New creates a Pipeline.
func New(
	browser URLAcquirer,
	poller ResultPoller,
	normalizer *ocr.Normalizer,
	jobs storage.JobStore,
	ingester storage.Ingester,
	embedder llm.Embedder,
	index vectorstore.VectorStore,
	collection string,
	permanentDir string,
) *Pipeline {
	return &Pipeline{
		browser:      browser,
		poller:       poller,
		normalizer:   normalizer,
		jobs:         jobs,
		ingester:     ingester,
		embedder:     embedder,
		index:        index,
		collection:   collection,
		permanentDir: permanentDir,
	}
}

// Process runs the job and records the outcome on the job row. A failure
// anywhere marks the job failed with the error text; rows committed by
// earlier stages of the same run are left in place.
func (p *Pipeline) Process(ctx context.Context, jobID, filePath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := p.run(ctx, jobID, filePath); err != nil {
		logger.ErrorContext(ctx, "job failed", "job_id", jobID, "error", err)
		if markErr := p.jobs.MarkFailed(ctx, jobID, err.Error()); markErr != nil {
			logger.ErrorContext(ctx, "failed to mark job failed", "job_id", jobID, "error", markErr)
		}
		return err
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, jobID, filePath string) error {
	logger := contextutil.LoggerFromContext(ctx)

	job, err := p.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}
	fileName := job.FileName
	if fileName == "" {
		fileName = filepath.Base(filePath)
	}

	if err := p.jobs.SetStatus(ctx, jobID, storage.JobProcessing); err != nil {
		return fmt.Errorf("failed to set job processing: %w", err)
	}

	progress := func(pct int, message string) {
		logger.InfoContext(ctx, "job progress", "job_id", jobID, "progress", pct, "message", message)
		if err := p.jobs.UpdateProgress(ctx, jobID, pct, message); err != nil {
			logger.WarnContext(ctx, "failed to record progress", "job_id", jobID, "error", err)
		}
	}
	progress(5, "Starting browser")

	fileHash, err := hashFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to hash file: %w", err)
	}
	permanentPath := filepath.Join(p.permanentDir, fmt.Sprintf("%s_%s", fileHash, fileName))
	if err := copyFile(filePath, permanentPath); err != nil {
		return fmt.Errorf("failed to copy file to permanent storage: %w", err)
	}
	logger.InfoContext(ctx, "copied file to permanent storage", "path", permanentPath)

	pollingURL, err := p.browser.AcquirePollingURL(ctx, filePath, progress)
	if err != nil {
		return err
	}

	progress(50, "Polling for results")
	raw, err := p.poller.Poll(ctx, pollingURL, progress)
	if err != nil {
		return err
	}

	progress(70, "Results received, parsing response")
	result, err := p.normalizer.Normalize(ctx, raw, jobID)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("provider processing failed: %s", result.Status)
	}

	progress(85, "Storing pages and chunks")
	graph, toIndex := buildGraph(jobID, fileName, fileHash, permanentPath, result)
	if err := p.ingester.SaveDocument(ctx, graph); err != nil {
		return err
	}
	logger.InfoContext(ctx, "stored document graph",
		"job_id", jobID, "document_id", graph.Document.ID, "pages", len(graph.Pages), "indexable_chunks", len(toIndex))

	if len(toIndex) > 0 {
		progress(95, "Generating embeddings")
		if err := p.indexChunks(ctx, toIndex); err != nil {
			return err
		}
	}

	if err := p.jobs.MarkCompleted(ctx, jobID, result.PageCount, len(toIndex)); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	logger.InfoContext(ctx, "job completed",
		"job_id", jobID, "pages", result.PageCount, "chunks", len(toIndex))

	// The temporary upload is only removed on success; failed jobs keep it
	// around for inspection and manual replay.
	if err := os.Remove(filePath); err != nil {
		logger.WarnContext(ctx, "failed to remove temporary file", "path", filePath, "error", err)
	}
	return nil
}

// indexEntry pairs a persisted block with the fields its index payload needs.
type indexEntry struct {
	blockRowID string
	documentID string
	pageID     string
	pageNum    int
	blockType  string
	text       string
}

// buildGraph converts a normalized result into storage records, generating
// entity IDs up front, and collects the blocks eligible for indexing.
func buildGraph(jobID, fileName, fileHash, permanentPath string, result *ocr.Result) (*storage.DocumentGraph, []indexEntry) {
	doc := &storage.DocumentRecord{
		ID:             uuid.New().String(),
		JobID:          jobID,
		Name:           fileName,
		Title:          ocr.ExtractTitle([]byte(result.Markdown), fileName),
		FileHash:       fileHash,
		FilePath:       permanentPath,
		NumPages:       result.PageCount,
		Markdown:       result.Markdown,
		HTML:           result.HTML,
		RuntimeSeconds: result.RuntimeSeconds,
	}

	graph := &storage.DocumentGraph{Document: doc}
	var toIndex []indexEntry

	for _, page := range result.Pages {
		pageRecord := &storage.PageRecord{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			PageNum:    page.PageNum,
			Markdown:   page.Markdown,
			HTML:       page.HTML,
			NumBlocks:  page.NumBlocks,
		}

		pg := &storage.PageGraph{Page: pageRecord}
		for _, block := range page.Blocks {
			blockRecord := &storage.BlockRecord{
				ID:               uuid.New().String(),
				DocumentID:       doc.ID,
				PageID:           pageRecord.ID,
				BlockID:          block.BlockID,
				BlockType:        block.BlockType,
				Text:             block.Text,
				HTML:             block.HTML,
				Images:           block.Images,
				BBox:             block.BBox,
				Polygon:          block.Polygon,
				SectionHierarchy: block.SectionHierarchy,
			}
			pg.Blocks = append(pg.Blocks, blockRecord)

			if len(strings.TrimSpace(block.Text)) > minIndexableTextLen {
				toIndex = append(toIndex, indexEntry{
					blockRowID: blockRecord.ID,
					documentID: doc.ID,
					pageID:     pageRecord.ID,
					pageNum:    page.PageNum,
					blockType:  block.BlockType,
					text:       block.Text,
				})
			}
		}
		graph.Pages = append(graph.Pages, pg)
	}

	return graph, toIndex
}

// indexChunks embeds the eligible blocks in one batched call, records one
// vector row per block, and upserts the points. Order is positional: index
// i in texts, embeddings, vector rows, and points is the same chunk. Vector
// rows commit before the upsert; an upsert failure afterwards fails the job
// and leaves those rows referencing absent index points.
func (p *Pipeline) indexChunks(ctx context.Context, entries []indexEntry) error {
	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(entries) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(entries), len(embeddings))
	}

	vectors := make([]*storage.VectorRecord, len(entries))
	points := make([]vectorstore.Point, len(entries))
	for i, entry := range entries {
		pointID := uuid.New().String()
		vectors[i] = &storage.VectorRecord{
			ID:         uuid.New().String(),
			BlockID:    entry.blockRowID,
			DocumentID: entry.documentID,
			PageID:     entry.pageID,
			PointID:    pointID,
		}
		points[i] = vectorstore.Point{
			ID:  pointID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"chunk_id":   entry.blockRowID,
				"pdf_id":     entry.documentID,
				"page_id":    entry.pageID,
				"text":       entry.text,
				"block_type": entry.blockType,
				"page_num":   entry.pageNum,
			},
		}
	}

	if err := p.ingester.SaveVectors(ctx, vectors); err != nil {
		return err
	}
	if err := p.index.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// hashFile computes the SHA-256 of a file's content, streamed in 4KiB blocks.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, 4096)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
