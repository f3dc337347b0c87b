package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_store.go -package=mocks doclab/internal/storage PageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// PageStore defines the interface for page storage operations.
type PageStore interface {
	// Insert inserts a page. The page.ID must be set (UUID) before calling.
	Insert(ctx context.Context, page *PageRecord) error
	// ListByDocument returns all pages of a document ordered by page_num.
	ListByDocument(ctx context.Context, documentID string) ([]*PageRecord, error)
	// GetByDocumentAndNum gets one page by document and 0-indexed page number.
	// Returns ErrNotFound if not found.
	GetByDocumentAndNum(ctx context.Context, documentID string, pageNum int) (*PageRecord, error)
}

// PageRepo provides methods for page operations.
// It implements the PageStore interface.
type PageRepo struct {
	db DBTX
}

// NewPageRepo creates a new PageRepo.
func NewPageRepo(db DBTX) *PageRepo {
	return &PageRepo{db: db}
}

// Insert inserts a page. The page.ID must be set (UUID) before calling.
// The UNIQUE (document_id, page_num) constraint rejects duplicate page numbers.
func (r *PageRepo) Insert(ctx context.Context, page *PageRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO pages (id, document_id, page_num, markdown, html, num_blocks) VALUES (?, ?, ?, ?, ?, ?)",
		page.ID, page.DocumentID, page.PageNum, page.Markdown, page.HTML, page.NumBlocks,
	)
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}
	return nil
}

// ListByDocument returns all pages of a document ordered by page_num.
func (r *PageRepo) ListByDocument(ctx context.Context, documentID string) ([]*PageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, document_id, page_num, markdown, html, num_blocks FROM pages WHERE document_id = ? ORDER BY page_num",
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var pages []*PageRecord
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return pages, nil
}

// GetByDocumentAndNum gets one page by document and 0-indexed page number.
// Returns ErrNotFound if not found.
func (r *PageRepo) GetByDocumentAndNum(ctx context.Context, documentID string, pageNum int) (*PageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, document_id, page_num, markdown, html, num_blocks FROM pages WHERE document_id = ? AND page_num = ?",
		documentID, pageNum,
	)
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}
	return page, nil
}

func scanPage(row rowScanner) (*PageRecord, error) {
	var page PageRecord
	var markdown, html sql.NullString

	err := row.Scan(&page.ID, &page.DocumentID, &page.PageNum, &markdown, &html, &page.NumBlocks)
	if err != nil {
		return nil, err
	}

	page.Markdown = markdown.String
	page.HTML = html.String
	return &page, nil
}
