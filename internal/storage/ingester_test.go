package storage

import (
	"context"
	"testing"
)

func TestSQLIngester_SaveDocument(t *testing.T) {
	db := newTestDB(t)
	seedJob(t, db, "job-1")
	ingester := NewSQLIngester(db)
	ctx := context.Background()

	graph := &DocumentGraph{
		Document: &DocumentRecord{
			ID:       "doc-1",
			JobID:    "job-1",
			Name:     "report.pdf",
			NumPages: 2,
		},
		Pages: []*PageGraph{
			{
				Page: &PageRecord{ID: "page-0", DocumentID: "doc-1", PageNum: 0, NumBlocks: 2},
				Blocks: []*BlockRecord{
					{ID: "block-1", DocumentID: "doc-1", PageID: "page-0", Text: "first"},
					{ID: "block-2", DocumentID: "doc-1", PageID: "page-0", Text: "second"},
				},
			},
			{
				Page: &PageRecord{ID: "page-1", DocumentID: "doc-1", PageNum: 1},
			},
		},
	}

	if err := ingester.SaveDocument(ctx, graph); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	doc, err := NewDocumentRepo(db).GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Name != "report.pdf" {
		t.Errorf("document name = %q, want report.pdf", doc.Name)
	}

	pages, err := NewPageRepo(db).ListByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("stored %d pages, want 2", len(pages))
	}

	blocks, err := NewBlockRepo(db).ListByPage(ctx, "page-0")
	if err != nil {
		t.Fatalf("ListByPage() error = %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("stored %d blocks, want 2", len(blocks))
	}
}

func TestSQLIngester_SaveDocument_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedJob(t, db, "job-1")
	ingester := NewSQLIngester(db)
	ctx := context.Background()

	// Second page duplicates the first page's page_num, so the whole
	// graph must roll back.
	graph := &DocumentGraph{
		Document: &DocumentRecord{ID: "doc-1", JobID: "job-1", Name: "doc.pdf"},
		Pages: []*PageGraph{
			{Page: &PageRecord{ID: "page-a", DocumentID: "doc-1", PageNum: 0}},
			{Page: &PageRecord{ID: "page-b", DocumentID: "doc-1", PageNum: 0}},
		},
	}

	if err := ingester.SaveDocument(ctx, graph); err == nil {
		t.Fatal("SaveDocument() with duplicate page_num should fail")
	}

	if _, err := NewDocumentRepo(db).GetByID(ctx, "doc-1"); err != ErrNotFound {
		t.Errorf("document should have been rolled back, got err = %v", err)
	}
}

func TestSQLIngester_SaveVectors(t *testing.T) {
	db := newTestDB(t)
	seedDocument(t, db, "job-1", "doc-1")
	seedPage(t, db, "doc-1", "page-1", 0)
	seedBlock(t, db, "doc-1", "page-1", "block-1")
	seedBlock(t, db, "doc-1", "page-1", "block-2")
	ingester := NewSQLIngester(db)
	ctx := context.Background()

	vectors := []*VectorRecord{
		{ID: "vec-1", BlockID: "block-1", DocumentID: "doc-1", PageID: "page-1", PointID: "p1"},
		{ID: "vec-2", BlockID: "block-2", DocumentID: "doc-1", PageID: "page-1", PointID: "p2"},
	}
	if err := ingester.SaveVectors(ctx, vectors); err != nil {
		t.Fatalf("SaveVectors() error = %v", err)
	}

	count, err := NewVectorRepo(db).CountByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("CountByDocument() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountByDocument() = %d, want 2", count)
	}
}

func TestSQLIngester_SaveVectors_RollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedDocument(t, db, "job-1", "doc-1")
	seedPage(t, db, "doc-1", "page-1", 0)
	seedBlock(t, db, "doc-1", "page-1", "block-1")
	ingester := NewSQLIngester(db)
	ctx := context.Background()

	// Second record references a missing block, so neither row may land.
	vectors := []*VectorRecord{
		{ID: "vec-1", BlockID: "block-1", DocumentID: "doc-1", PageID: "page-1", PointID: "p1"},
		{ID: "vec-2", BlockID: "missing", DocumentID: "doc-1", PageID: "page-1", PointID: "p2"},
	}
	if err := ingester.SaveVectors(ctx, vectors); err == nil {
		t.Fatal("SaveVectors() with missing block should fail")
	}

	count, err := NewVectorRepo(db).CountByDocument(ctx, "doc-1")
	if err != nil {
		t.Fatalf("CountByDocument() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountByDocument() = %d, want 0 after rollback", count)
	}
}
