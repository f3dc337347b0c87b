package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_block_store.go -package=mocks doclab/internal/storage BlockStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// BlockStore defines the interface for block storage operations.
type BlockStore interface {
	// Insert inserts a block. The block.ID must be set (UUID) before calling.
	Insert(ctx context.Context, block *BlockRecord) error
	// GetByID gets a block by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*BlockRecord, error)
	// ListByPage returns all blocks of a page in insertion order.
	ListByPage(ctx context.Context, pageID string) ([]*BlockRecord, error)
	// ListByIDs returns the blocks whose IDs are in the given set, keyed by ID.
	ListByIDs(ctx context.Context, ids []string) (map[string]*BlockRecord, error)
}

// BlockRepo provides methods for block operations.
// It implements the BlockStore interface.
type BlockRepo struct {
	db DBTX
}

// NewBlockRepo creates a new BlockRepo.
func NewBlockRepo(db DBTX) *BlockRepo {
	return &BlockRepo{db: db}
}

const blockColumns = "id, document_id, page_id, block_id, block_type, text, html, images, bbox, polygon, section_hierarchy"

// Insert inserts a block. The block.ID must be set (UUID) before calling.
// Map and slice fields are stored as JSON text; empty ones are stored as NULL.
func (r *BlockRepo) Insert(ctx context.Context, block *BlockRecord) error {
	images, err := encodeJSON(block.Images, len(block.Images) == 0)
	if err != nil {
		return fmt.Errorf("failed to encode block images: %w", err)
	}
	bbox, err := encodeJSON(block.BBox, len(block.BBox) == 0)
	if err != nil {
		return fmt.Errorf("failed to encode block bbox: %w", err)
	}
	polygon, err := encodeJSON(block.Polygon, len(block.Polygon) == 0)
	if err != nil {
		return fmt.Errorf("failed to encode block polygon: %w", err)
	}
	hierarchy, err := encodeJSON(block.SectionHierarchy, len(block.SectionHierarchy) == 0)
	if err != nil {
		return fmt.Errorf("failed to encode block section hierarchy: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO blocks ("+blockColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		block.ID, block.DocumentID, block.PageID, block.BlockID, block.BlockType,
		block.Text, block.HTML, images, bbox, polygon, hierarchy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert block: %w", err)
	}
	return nil
}

// GetByID gets a block by its ID. Returns ErrNotFound if not found.
func (r *BlockRepo) GetByID(ctx context.Context, id string) (*BlockRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE id = ?", id)
	block, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query block: %w", err)
	}
	return block, nil
}

// ListByPage returns all blocks of a page in insertion order.
func (r *BlockRepo) ListByPage(ctx context.Context, pageID string) ([]*BlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE page_id = ? ORDER BY rowid", pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	return collectBlocks(rows)
}

// ListByIDs returns the blocks whose IDs are in the given set, keyed by ID.
// Used by the search handler to join qdrant hits back to stored blocks.
func (r *BlockRepo) ListByIDs(ctx context.Context, ids []string) (map[string]*BlockRecord, error) {
	if len(ids) == 0 {
		return map[string]*BlockRecord{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+blockColumns+" FROM blocks WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	blocks, err := collectBlocks(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*BlockRecord, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	return byID, nil
}

func collectBlocks(rows *sql.Rows) ([]*BlockRecord, error) {
	defer func() {
		_ = rows.Close()
	}()

	var blocks []*BlockRecord
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return blocks, nil
}

func scanBlock(row rowScanner) (*BlockRecord, error) {
	var block BlockRecord
	var blockID, blockType, text, html sql.NullString
	var images, bbox, polygon, hierarchy sql.NullString

	err := row.Scan(&block.ID, &block.DocumentID, &block.PageID, &blockID, &blockType,
		&text, &html, &images, &bbox, &polygon, &hierarchy)
	if err != nil {
		return nil, err
	}

	block.BlockID = blockID.String
	block.BlockType = blockType.String
	block.Text = text.String
	block.HTML = html.String

	if err := decodeJSON(images, &block.Images); err != nil {
		return nil, fmt.Errorf("failed to decode block images: %w", err)
	}
	if err := decodeJSON(bbox, &block.BBox); err != nil {
		return nil, fmt.Errorf("failed to decode block bbox: %w", err)
	}
	if err := decodeJSON(polygon, &block.Polygon); err != nil {
		return nil, fmt.Errorf("failed to decode block polygon: %w", err)
	}
	if err := decodeJSON(hierarchy, &block.SectionHierarchy); err != nil {
		return nil, fmt.Errorf("failed to decode block section hierarchy: %w", err)
	}
	return &block, nil
}

// encodeJSON marshals v to a nullable TEXT value; empty collections become NULL.
func encodeJSON(v any, empty bool) (sql.NullString, error) {
	if empty {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeJSON(s sql.NullString, dest any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), dest)
}
