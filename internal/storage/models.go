package storage

import "time"

// JobStatus enumerates the lifecycle states of a processing job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// JobRecord represents one OCR processing job in the database.
// Progress runs 0-100 and only moves forward within a run; Message carries
// either the current progress message or, for failed jobs, the error text.
type JobRecord struct {
	ID             string
	Status         JobStatus
	FileName       string
	Progress       int
	Message        string
	ProcessedPages int
	TotalChunks    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentRecord represents a processed PDF. One per successfully OCRed file.
type DocumentRecord struct {
	ID             string // UUID
	JobID          string // Foreign key to jobs.id
	Name           string // Original filename
	Title          string // Display title extracted from the OCR markdown
	FileHash       string // SHA-256 hex of file content
	FilePath       string // Permanent storage path
	NumPages       int
	Markdown       string // Full-document markdown from the provider
	HTML           string // Full-document HTML from the provider
	RuntimeSeconds float64
	CreatedAt      time.Time
}

// PageRecord represents one page of a document, keyed by a 0-indexed page
// number unique within the document.
type PageRecord struct {
	ID         string // UUID
	DocumentID string // Foreign key to documents.id
	PageNum    int
	Markdown   string
	HTML       string
	NumBlocks  int
}

// BlockRecord represents one provider-identified semantic block of a page.
// Text is derived from HTML (tags stripped, whitespace collapsed).
type BlockRecord struct {
	ID               string // UUID
	DocumentID       string // Foreign key to documents.id
	PageID           string // Foreign key to pages.id
	BlockID          string // Provider block id, e.g. "/page/0/Text/1"
	BlockType        string // SectionHeader, Text, Picture, Table, ...
	Text             string
	HTML             string
	Images           map[string]string // image name -> saved file path
	BBox             []float64
	Polygon          [][]float64
	SectionHierarchy map[string]string
}

// VectorRecord links a block to its point in the external vector index.
// At most one per block (unique constraint on block_id).
type VectorRecord struct {
	ID         string // UUID
	BlockID    string // Foreign key to blocks.id, unique
	DocumentID string
	PageID     string
	PointID    string // Qdrant point id
}
