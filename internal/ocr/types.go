package ocr

import "encoding/json"

// RawResult is the provider's terminal polling payload, as delivered.
// Only the fields the pipeline consumes are mapped; Error is populated on
// provider-reported failures.
type RawResult struct {
	Status    string            `json:"status"`
	Success   bool              `json:"success"`
	Error     string            `json:"error"`
	PageCount int               `json:"page_count"`
	Markdown  string            `json:"markdown"`
	HTML      string            `json:"html"`
	Runtime   float64           `json:"runtime"`
	Images    map[string]string `json:"images"` // image name -> base64 payload
	Chunks    RawChunks         `json:"chunks"`
	Metadata  RawMetadata       `json:"metadata"`
}

// RawChunks carries the flat block list plus provider page info. page_info
// is carried opaquely: the provider's shape for it has changed before and
// nothing downstream reads it.
type RawChunks struct {
	Blocks   []RawBlock      `json:"blocks"`
	PageInfo json.RawMessage `json:"page_info"`
}

// RawBlock is one provider-identified semantic unit of a page.
type RawBlock struct {
	ID               string            `json:"id"`
	BlockType        string            `json:"block_type"`
	Page             int               `json:"page"`
	HTML             string            `json:"html"`
	Images           map[string]string `json:"images"` // name -> base64 or reused name
	BBox             []float64         `json:"bbox"`
	Polygon          [][]float64       `json:"polygon"`
	SectionHierarchy map[string]string `json:"section_hierarchy"`
}

// RawMetadata holds provider-side statistics about the parsed document.
type RawMetadata struct {
	PageStats []RawPageStat `json:"page_stats"`
}

// RawPageStat is the provider's per-page block count.
type RawPageStat struct {
	PageID    int `json:"page_id"`
	NumBlocks int `json:"num_blocks"`
}

// Result is the normalized form of a RawResult: the document/page/block
// graph plus the map of saved top-level images.
type Result struct {
	Status         string
	Success        bool
	PageCount      int
	Markdown       string
	HTML           string
	RuntimeSeconds float64
	Pages          []Page
	Images         map[string]string // image name -> saved file path
}

// Page groups the blocks of one 0-indexed page. Pages that received no
// blocks are still present, with empty content.
type Page struct {
	PageNum   int
	NumBlocks int
	Markdown  string
	HTML      string
	Blocks    []Block
}

// Block is a normalized provider block. Text is derived from HTML with tags
// stripped and whitespace collapsed; Images maps names to saved file paths.
type Block struct {
	BlockID          string
	BlockType        string
	Page             int
	HTML             string
	Text             string
	BBox             []float64
	Polygon          [][]float64
	SectionHierarchy map[string]string
	Images           map[string]string
}
