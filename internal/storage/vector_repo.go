package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks doclab/internal/storage VectorStore

import (
	"context"
	"database/sql"
	"fmt"
)

// VectorStore defines the interface for vector-record storage operations.
// These rows link blocks to their points in the external vector index.
type VectorStore interface {
	// Insert inserts a vector record. Rejected if the block already has one.
	Insert(ctx context.Context, vector *VectorRecord) error
	// GetByBlockID gets the vector record for a block. Returns ErrNotFound if absent.
	GetByBlockID(ctx context.Context, blockID string) (*VectorRecord, error)
	// CountByDocument returns the number of vector records for a document.
	CountByDocument(ctx context.Context, documentID string) (int, error)
}

// VectorRepo provides methods for vector-record operations.
// It implements the VectorStore interface.
type VectorRepo struct {
	db DBTX
}

// NewVectorRepo creates a new VectorRepo.
func NewVectorRepo(db DBTX) *VectorRepo {
	return &VectorRepo{db: db}
}

// Insert inserts a vector record. The UNIQUE constraint on block_id rejects
// a second vector for the same block.
func (r *VectorRepo) Insert(ctx context.Context, vector *VectorRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO vectors (id, block_id, document_id, page_id, point_id) VALUES (?, ?, ?, ?, ?)",
		vector.ID, vector.BlockID, vector.DocumentID, vector.PageID, vector.PointID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vector: %w", err)
	}
	return nil
}

// GetByBlockID gets the vector record for a block. Returns ErrNotFound if absent.
func (r *VectorRepo) GetByBlockID(ctx context.Context, blockID string) (*VectorRecord, error) {
	var vector VectorRecord
	var pointID sql.NullString

	err := r.db.QueryRowContext(ctx,
		"SELECT id, block_id, document_id, page_id, point_id FROM vectors WHERE block_id = ?",
		blockID,
	).Scan(&vector.ID, &vector.BlockID, &vector.DocumentID, &vector.PageID, &pointID)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vector: %w", err)
	}

	vector.PointID = pointID.String
	return &vector, nil
}

// CountByDocument returns the number of vector records for a document.
func (r *VectorRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vectors WHERE document_id = ?", documentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vectors: %w", err)
	}
	return count, nil
}
