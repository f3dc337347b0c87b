package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks doclab/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a document. The doc.ID must be set (UUID) before calling.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// List returns documents ordered by created_at descending.
	List(ctx context.Context, limit, offset int) ([]*DocumentRecord, error)
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db DBTX
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db DBTX) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a document. The doc.ID must be set (UUID) before calling.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, job_id, name, title, file_hash, file_path, num_pages, markdown, html, runtime_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.JobID, doc.Name, doc.Title, doc.FileHash, doc.FilePath,
		doc.NumPages, doc.Markdown, doc.HTML, doc.RuntimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// GetByID gets a document by its ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, job_id, name, title, file_hash, file_path, num_pages, markdown, html, runtime_seconds, created_at
		 FROM documents WHERE id = ?`,
		id,
	)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return doc, nil
}

// List returns documents ordered by created_at descending.
func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, name, title, file_hash, file_path, num_pages, markdown, html, runtime_seconds, created_at
		 FROM documents ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	var title, fileHash, filePath, markdown, html sql.NullString
	var runtime sql.NullFloat64
	var createdAt string

	err := row.Scan(&doc.ID, &doc.JobID, &doc.Name, &title, &fileHash, &filePath,
		&doc.NumPages, &markdown, &html, &runtime, &createdAt)
	if err != nil {
		return nil, err
	}

	doc.Title = title.String
	doc.FileHash = fileHash.String
	doc.FilePath = filePath.String
	doc.Markdown = markdown.String
	doc.HTML = html.String
	doc.RuntimeSeconds = runtime.Float64
	doc.CreatedAt = parseSQLiteTime(createdAt)
	return &doc, nil
}
