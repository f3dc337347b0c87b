package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingester.go -package=mocks doclab/internal/storage Ingester

import (
	"context"
	"database/sql"
	"fmt"
)

// PageGraph is a page together with its blocks, in provider order.
type PageGraph struct {
	Page   *PageRecord
	Blocks []*BlockRecord
}

// DocumentGraph is the full entity graph produced by one OCR run.
type DocumentGraph struct {
	Document *DocumentRecord
	Pages    []*PageGraph
}

// Ingester persists pipeline output. SaveDocument and SaveVectors each run
// in their own transaction; the structural graph and the vector rows commit
// independently, so a later indexing failure leaves the graph in place.
type Ingester interface {
	// SaveDocument writes the document, its pages, and their blocks atomically.
	SaveDocument(ctx context.Context, graph *DocumentGraph) error
	// SaveVectors writes the vector rows atomically.
	SaveVectors(ctx context.Context, vectors []*VectorRecord) error
}

// SQLIngester implements Ingester over a SQLite connection pool.
type SQLIngester struct {
	db *sql.DB
}

// NewSQLIngester creates a new SQLIngester.
func NewSQLIngester(db *sql.DB) *SQLIngester {
	return &SQLIngester{db: db}
}

// SaveDocument writes the document, its pages, and their blocks in one
// transaction. Pages are inserted in slice order, blocks in provider order
// within each page.
func (i *SQLIngester) SaveDocument(ctx context.Context, graph *DocumentGraph) error {
	return i.inTx(ctx, func(tx *sql.Tx) error {
		if err := NewDocumentRepo(tx).Insert(ctx, graph.Document); err != nil {
			return err
		}
		pageRepo := NewPageRepo(tx)
		blockRepo := NewBlockRepo(tx)
		for _, pg := range graph.Pages {
			if err := pageRepo.Insert(ctx, pg.Page); err != nil {
				return err
			}
			for _, block := range pg.Blocks {
				if err := blockRepo.Insert(ctx, block); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SaveVectors writes the vector rows in one transaction.
func (i *SQLIngester) SaveVectors(ctx context.Context, vectors []*VectorRecord) error {
	if len(vectors) == 0 {
		return nil
	}
	return i.inTx(ctx, func(tx *sql.Tx) error {
		repo := NewVectorRepo(tx)
		for _, v := range vectors {
			if err := repo.Insert(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (i *SQLIngester) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
