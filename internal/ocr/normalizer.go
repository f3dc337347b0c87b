package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doclab/internal/contextutil"
)

// Normalizer turns a raw provider payload into the document/page/block
// graph. Decoded images are written under a job-scoped directory as a side
// effect; everything else is a pure transformation of the payload.
type Normalizer struct {
	storageDir string
}

// NewNormalizer creates a Normalizer that saves images under storageDir.
func NewNormalizer(storageDir string) *Normalizer {
	return &Normalizer{storageDir: storageDir}
}

// Normalize converts the raw payload for one job. Single-image decode
// failures are logged and skipped; the only hard error is failing to create
// the job's image directory.
func (n *Normalizer) Normalize(ctx context.Context, raw *RawResult, jobID string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	imagesDir := filepath.Join(n.storageDir, jobID, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	// Decode and save the top-level images first; block images reuse these
	// paths by name.
	savedImages := make(map[string]string)
	for name, payload := range raw.Images {
		if payload == "" {
			continue
		}
		path := filepath.Join(imagesDir, name)
		if err := saveBase64Image(path, payload); err != nil {
			logger.WarnContext(ctx, "failed to save image", "name", name, "error", err)
			continue
		}
		savedImages[name] = path
	}

	statsByPage := make(map[int]int, len(raw.Metadata.PageStats))
	for _, stat := range raw.Metadata.PageStats {
		statsByPage[stat.PageID] = stat.NumBlocks
	}

	// Group blocks by page, dropping any block whose page index falls
	// outside 0..page_count-1.
	blocksByPage := make(map[int][]Block)
	for _, rawBlock := range raw.Chunks.Blocks {
		if rawBlock.Page < 0 || rawBlock.Page >= raw.PageCount {
			logger.WarnContext(ctx, "dropping block with out-of-range page",
				"block_id", rawBlock.ID, "page", rawBlock.Page, "page_count", raw.PageCount)
			continue
		}

		block := Block{
			BlockID:          rawBlock.ID,
			BlockType:        rawBlock.BlockType,
			Page:             rawBlock.Page,
			HTML:             rawBlock.HTML,
			Text:             ExtractText(rawBlock.HTML),
			BBox:             rawBlock.BBox,
			Polygon:          rawBlock.Polygon,
			SectionHierarchy: rawBlock.SectionHierarchy,
			Images:           n.saveBlockImages(ctx, imagesDir, rawBlock, savedImages),
		}
		blocksByPage[rawBlock.Page] = append(blocksByPage[rawBlock.Page], block)
	}

	// Materialize every page in 0..page_count-1, including pages that
	// received no blocks.
	pages := make([]Page, 0, raw.PageCount)
	for pageNum := 0; pageNum < raw.PageCount; pageNum++ {
		pageBlocks := blocksByPage[pageNum]

		numBlocks, ok := statsByPage[pageNum]
		if !ok {
			numBlocks = len(pageBlocks)
		}

		var texts, htmls []string
		for _, b := range pageBlocks {
			if b.Text != "" {
				texts = append(texts, b.Text)
			}
			if b.HTML != "" {
				htmls = append(htmls, b.HTML)
			}
		}

		pages = append(pages, Page{
			PageNum:   pageNum,
			NumBlocks: numBlocks,
			Markdown:  strings.Join(texts, "\n\n"),
			HTML:      strings.Join(htmls, "\n"),
			Blocks:    pageBlocks,
		})
	}

	return &Result{
		Status:         raw.Status,
		Success:        raw.Success,
		PageCount:      raw.PageCount,
		Markdown:       raw.Markdown,
		HTML:           raw.HTML,
		RuntimeSeconds: raw.Runtime,
		Pages:          pages,
		Images:         savedImages,
	}, nil
}

// saveBlockImages resolves a block's image map to saved file paths. A name
// matching a top-level image reuses its path; anything else is decoded and
// saved under a block-scoped file name. Decode failures skip that image.
func (n *Normalizer) saveBlockImages(ctx context.Context, imagesDir string, rawBlock RawBlock, savedImages map[string]string) map[string]string {
	if len(rawBlock.Images) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	resolved := make(map[string]string)
	for name, payload := range rawBlock.Images {
		if path, ok := savedImages[name]; ok {
			resolved[name] = path
			continue
		}
		if payload == "" {
			continue
		}
		blockTag := strings.ReplaceAll(rawBlock.ID, "/", "_")
		path := filepath.Join(imagesDir, fmt.Sprintf("block_%s_%s", blockTag, name))
		if err := saveBase64Image(path, payload); err != nil {
			logger.WarnContext(ctx, "failed to save block image",
				"block_id", rawBlock.ID, "name", name, "error", err)
			continue
		}
		resolved[name] = path
	}
	return resolved
}

func saveBase64Image(path, payload string) error {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}
